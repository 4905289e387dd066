package enums

// ViewerKey is a navigation key routed to an open viewer session.
type ViewerKey string

const (
	ViewerKeyArrowRight ViewerKey = "ArrowRight"
	ViewerKeyArrowDown  ViewerKey = "ArrowDown"
	ViewerKeyArrowLeft  ViewerKey = "ArrowLeft"
	ViewerKeyArrowUp    ViewerKey = "ArrowUp"
)

// Direction maps the key to a navigation step: +1 next, -1 prev, 0 unhandled.
func (k ViewerKey) Direction() int {
	switch k {
	case ViewerKeyArrowRight, ViewerKeyArrowDown:
		return 1
	case ViewerKeyArrowLeft, ViewerKeyArrowUp:
		return -1
	default:
		return 0
	}
}

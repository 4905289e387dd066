package viewer

// Rect is an axis-aligned bounding box in viewport coordinates, matching the
// shape clients read from their layout engine.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// Contains reports whether all four edges of target sit within r.
func (r Rect) Contains(target Rect) bool {
	return target.Top >= r.Top &&
		target.Left >= r.Left &&
		target.Bottom <= r.Bottom &&
		target.Right <= r.Right
}

// ScrollPlan instructs the client to bring a thumbnail into view.
type ScrollPlan struct {
	Behavior string `json:"behavior"`
	Block    string `json:"block"`
	Inline   string `json:"inline"`
}

// PlanScroll returns a smooth scroll plan when the target thumbnail is not
// fully visible inside the container, and nil when it already is.
func PlanScroll(container, target Rect) *ScrollPlan {
	if container.Contains(target) {
		return nil
	}
	return &ScrollPlan{Behavior: "smooth", Block: "nearest", Inline: "center"}
}

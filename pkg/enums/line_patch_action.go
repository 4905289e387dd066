package enums

import "fmt"

// LinePatchAction is the intent carried by an optimistic line patch.
type LinePatchAction string

const (
	LinePatchActionUpdate LinePatchAction = "update"
	LinePatchActionRemove LinePatchAction = "remove"
)

var validLinePatchActions = []LinePatchAction{
	LinePatchActionUpdate,
	LinePatchActionRemove,
}

func (a LinePatchAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known LinePatchAction.
func (a LinePatchAction) IsValid() bool {
	for _, candidate := range validLinePatchActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseLinePatchAction converts raw input into a LinePatchAction.
func ParseLinePatchAction(value string) (LinePatchAction, error) {
	for _, candidate := range validLinePatchActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line patch action %q", value)
}

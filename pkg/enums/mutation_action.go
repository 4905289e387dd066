package enums

import "fmt"

// MutationAction routes a cart mutation submission to its handler.
type MutationAction string

const (
	MutationActionLinesAdd            MutationAction = "lines-add"
	MutationActionLinesUpdate         MutationAction = "lines-update"
	MutationActionLinesRemove         MutationAction = "lines-remove"
	MutationActionDiscountCodesUpdate MutationAction = "discount-codes-update"
)

var validMutationActions = []MutationAction{
	MutationActionLinesAdd,
	MutationActionLinesUpdate,
	MutationActionLinesRemove,
	MutationActionDiscountCodesUpdate,
}

func (a MutationAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a routable MutationAction.
func (a MutationAction) IsValid() bool {
	for _, candidate := range validMutationActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseMutationAction converts raw input into a MutationAction.
func ParseMutationAction(value string) (MutationAction, error) {
	for _, candidate := range validMutationActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid mutation action %q", value)
}

package enums

import "fmt"

// PriceType selects which amount a cart line exposes in the view payload.
type PriceType string

const (
	PriceTypeTotal                = PriceType("total")
	PriceTypeCompareAtPerQuantity = PriceType("compare_at_per_quantity")
)

var validPriceTypes = []PriceType{
	PriceTypeTotal,
	PriceTypeCompareAtPerQuantity,
}

func (p PriceType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceType.
func (p PriceType) IsValid() bool {
	for _, candidate := range validPriceTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceType converts raw input into a PriceType, defaulting to total.
func ParsePriceType(value string) (PriceType, error) {
	if value == "" {
		return PriceTypeTotal, nil
	}
	for _, candidate := range validPriceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price type %q", value)
}

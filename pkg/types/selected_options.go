package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SelectedOption is a single variant axis chosen for a merchandise, e.g. Size=M.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SelectedOptions is a slice marshaled as JSONB.
type SelectedOptions []SelectedOption

// Value serializes the options to JSON.
func (s SelectedOptions) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan decodes JSONB into the option slice.
func (s *SelectedOptions) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded SelectedOptions
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*s = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSONB scan type %T", value)
	}
}

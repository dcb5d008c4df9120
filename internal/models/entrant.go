package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entrant holds the identity a visitor submits with a spin.
type Entrant struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`
}

// UnmarshalJSON accepts any JSON scalar for each field. Numbers and true keep their literal text;
// false, null and zero decode to "" so they count as missing. Objects and arrays are rejected.
func (e *Entrant) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  json.RawMessage `json:"name"`
		Email json.RawMessage `json:"email"`
		Phone json.RawMessage `json:"phone"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if e.Name, err = scalarString("name", raw.Name); err != nil {
		return err
	}
	if e.Email, err = scalarString("email", raw.Email); err != nil {
		return err
	}
	e.Phone, err = scalarString("phone", raw.Phone)
	return err
}

func scalarString(field string, raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("%s must be a scalar value", field)
	case 'n', 'f':
		return "", nil
	case 't':
		return "true", nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		if f, err := n.Float64(); err == nil && f == 0 {
			return "", nil
		}
		return n.String(), nil
	}
}

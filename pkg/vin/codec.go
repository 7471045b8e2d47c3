package vin

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MarshalText encodes the content verbatim.
func (v VIN) MarshalText() ([]byte, error) {
	return []byte(v.content), nil
}

// UnmarshalText accepts any content without validation.
func (v *VIN) UnmarshalText(data []byte) error {
	v.content = string(data)
	return nil
}

// MarshalJSON encodes the VIN as a JSON string.
func (v VIN) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.content)
}

// UnmarshalJSON decodes a JSON string. null leaves the VIN unchanged.
func (v *VIN) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode vin: %w", err)
	}
	v.content = s
	return nil
}

// Value implements driver.Valuer so a VIN can be stored in a text column.
func (v VIN) Value() (driver.Value, error) {
	return v.content, nil
}

// Scan implements sql.Scanner.
func (v *VIN) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		v.content = ""
	case string:
		v.content = s
	case []byte:
		v.content = string(s)
	default:
		return fmt.Errorf("scan vin: unsupported type %T", src)
	}
	return nil
}

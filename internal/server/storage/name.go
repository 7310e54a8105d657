package storage

import (
	"database/sql/driver"
	"fmt"

	"github.com/dmitrijs2005/bookshelf/internal/server/validated"
)

var nameRule = validated.NewRule[string]("name", "min=3,max=255")

// Name is a storage display name of 3 to 255 characters. The zero value is
// not a valid name; obtain one through NewName or by scanning a stored row.
type Name struct {
	value string
}

// NewName validates raw and returns a validated.Error when it is shorter than
// 3 or longer than 255 characters.
func NewName(raw string) (Name, error) {
	if err := nameRule.Check(raw); err != nil {
		return Name{}, err
	}
	return Name{value: raw}, nil
}

// String returns the raw name.
func (n Name) String() string {
	return n.value
}

// MarshalText encodes a Name as a plain JSON string.
func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// UnmarshalText validates like NewName.
func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := NewName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Scan hydrates a Name from a column that only ever receives validated names.
func (n *Name) Scan(src any) error {
	switch v := src.(type) {
	case string:
		n.value = v
	case []byte:
		n.value = string(v)
	default:
		return fmt.Errorf("storage name: unsupported column type %T", src)
	}
	return nil
}

// Value stores a Name as text.
func (n Name) Value() (driver.Value, error) {
	return n.value, nil
}

// Package pagination implements keyset pagination primitives: the opaque
// continuation Cursor, its token codec and the Page envelope.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// Limit is the fixed number of rows a repository returns per page.
const Limit = 25

// ErrInvalidCursor is returned for any token Decode cannot read back.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points at the row after which the next page starts.
// A nil LastID means "start from the beginning".
type Cursor struct {
	LastID *uuid.UUID
}

// After returns a cursor continuing strictly after id.
func After(id uuid.UUID) Cursor {
	return Cursor{LastID: &id}
}

// cursorWire is the private shape hidden inside a token.
type cursorWire struct {
	LastID *uuid.UUID `json:"last_id"`
}

// Encode serializes c to JSON and wraps it in URL-safe base64, so the token
// can travel in a query string without escaping.
func Encode(c Cursor) string {
	// Marshalling a struct of a single *uuid.UUID cannot fail.
	raw, _ := json.Marshal(cursorWire{LastID: c.LastID})
	return base64.URLEncoding.EncodeToString(raw)
}

// Decode reverses Encode. Only tokens Encode can produce are accepted:
// malformed base64, malformed JSON, a bare null, unknown or differently cased
// keys and a missing last_id all yield ErrInvalidCursor.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, ErrInvalidCursor
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Cursor{}, ErrInvalidCursor
	}
	lastID, ok := fields["last_id"]
	if !ok || len(fields) != 1 {
		return Cursor{}, ErrInvalidCursor
	}

	var id *uuid.UUID
	if err := json.Unmarshal(lastID, &id); err != nil {
		return Cursor{}, ErrInvalidCursor
	}

	c := Cursor{LastID: id}
	if Encode(c) != token {
		return Cursor{}, ErrInvalidCursor
	}
	return c, nil
}

// String returns the opaque token.
func (c Cursor) String() string {
	return Encode(c)
}

// MarshalText makes a Cursor appear as its token in JSON and other text encodings.
func (c Cursor) MarshalText() ([]byte, error) {
	return []byte(Encode(c)), nil
}

// UnmarshalText accepts a token produced by MarshalText.
func (c *Cursor) UnmarshalText(text []byte) error {
	decoded, err := Decode(string(text))
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

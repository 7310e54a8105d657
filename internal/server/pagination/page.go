package pagination

import "github.com/google/uuid"

// Page is one slice of a listing plus the token for the next one.
// Cursor is nil once the listing is exhausted.
type Page[T any] struct {
	Data   []T     `json:"data"`
	Cursor *Cursor `json:"cursor"`
}

// NewPage wraps rows fetched with a LIMIT of Limit. A cursor is emitted
// only when the page is full; its LastID is the id of the last row. When the
// total row count is a multiple of Limit the caller sees one extra empty page.
func NewPage[T any](rows []T, idOf func(T) uuid.UUID) Page[T] {
	if rows == nil {
		rows = []T{}
	}

	p := Page[T]{Data: rows}
	if len(rows) == Limit {
		c := After(idOf(rows[len(rows)-1]))
		p.Cursor = &c
	}

	return p
}

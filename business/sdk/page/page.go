// Package page provides support for keyset (cursor) paging.
package page

import (
	"fmt"
	"strconv"
)

// Limits applied to every page request.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Page represents the requested page size and the cursor to continue from.
// An empty cursor starts at the first row.
type Page struct {
	limit  int
	cursor string
}

// Parse parses the strings and validates the values are in reason.
func Parse(limit string, cursor string) (Page, error) {
	number := DefaultLimit
	if limit != "" {
		var err error
		number, err = strconv.Atoi(limit)
		if err != nil {
			return Page{}, fmt.Errorf("limit conversion: %w", err)
		}
	}

	return New(number, cursor)
}

// New constructs a page value after checking the limit bounds.
func New(limit int, cursor string) (Page, error) {
	if limit < 1 || limit > MaxLimit {
		return Page{}, fmt.Errorf("limit value out of range [1, %d]: %d", MaxLimit, limit)
	}

	return Page{
		limit:  limit,
		cursor: cursor,
	}, nil
}

// MustParse creates a paging value for testing.
func MustParse(limit string, cursor string) Page {
	pg, err := Parse(limit, cursor)
	if err != nil {
		panic(err)
	}

	return pg
}

// String implements the stringer interface.
func (p Page) String() string {
	return fmt.Sprintf("limit: %d cursor: %q", p.limit, p.cursor)
}

// Limit returns the number of rows to return.
func (p Page) Limit() int {
	return p.limit
}

// Cursor returns the identifier of the last row already seen.
func (p Page) Cursor() string {
	return p.cursor
}

// Probe returns the number of rows a store should fetch: one more than the
// limit so the existence of a following page is known without a count.
func (p Page) Probe() int {
	return p.limit + 1
}

// =============================================================================

// Result is one page of rows and the cursor to request the following page.
// NextCursor is empty on the final page.
type Result[T any] struct {
	Items      []T
	NextCursor string
}

// Trim cuts a probed row set down to the page limit. When the probe row is
// present the cursor for the next page is the identifier of the last row
// returned in this page.
func Trim[T any](p Page, rows []T, id func(T) string) Result[T] {
	if len(rows) <= p.limit {
		return Result[T]{Items: rows}
	}

	rows = rows[:p.limit]

	return Result[T]{
		Items:      rows,
		NextCursor: id(rows[len(rows)-1]),
	}
}

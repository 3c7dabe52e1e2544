// Package query provides support for query paging.
package query

import (
	"encoding/json"

	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/page"
)

// Result is the data model used when returning a cursor paged query.
type Result[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// NewResult converts a business page into the app result. Items is never
// null in the encoded document.
func NewResult[B any, T any](res page.Result[B], toApp func(B) T) Result[T] {
	items := make([]T, len(res.Items))
	for i, b := range res.Items {
		items[i] = toApp(b)
	}

	return Result[T]{
		Items:      items,
		NextCursor: res.NextCursor,
	}
}

// Encode implements the encoder interface.
func (r Result[T]) Encode() ([]byte, string, error) {
	data, err := json.Marshal(r)
	return data, "application/json", err
}

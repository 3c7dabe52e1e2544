package query_test

import (
	"strconv"
	"testing"

	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/query"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tt := []struct {
		name string
		res  page.Result[int]
		want string
	}{
		{"empty", page.Result[int]{}, `{"items":[]}`},
		{"last", page.Result[int]{Items: []int{1, 2}}, `{"items":["1","2"]}`},
		{"more", page.Result[int]{Items: []int{3}, NextCursor: "c3"}, `{"items":["3"],"nextCursor":"c3"}`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			data, contentType, err := query.NewResult(tc.res, strconv.Itoa).Encode()
			require.NoError(t, err)

			assert.Equal(t, "application/json", contentType)
			assert.JSONEq(t, tc.want, string(data))
		})
	}
}

package invoicestatus_test

import (
	"testing"

	"github.com/jcpaschoal/wertvoll-dispo/business/types/invoicestatus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverdueEligible(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"OPEN", true},
		{"OVERDUE_1", true},
		{"OVERDUE_2", true},
		{"OVERDUE_3", true},
		{"PAID", false},
		{"CANCELLED", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			s, err := invoicestatus.Parse(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.OverdueEligible())
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := invoicestatus.Parse("LOST")
	assert.Error(t, err)
}

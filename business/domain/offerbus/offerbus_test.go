package offerbus_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	rows []offerbus.Offer
}

func (m *memStore) NewWithTx(sqldb.CommitRollbacker) (offerbus.Storer, error) { return m, nil }

func (m *memStore) Create(_ context.Context, off offerbus.Offer) error {
	m.rows = append(m.rows, off)
	return nil
}

func (m *memStore) QueryByCustomerID(_ context.Context, _ uuid.UUID, customerID uuid.UUID) ([]offerbus.Offer, error) {
	var out []offerbus.Offer
	for _, o := range m.rows {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memStore) CountByStatus(context.Context, uuid.UUID) (map[offerstatus.Status]int, error) {
	counts := make(map[offerstatus.Status]int)
	for _, o := range m.rows {
		counts[o.Status]++
	}
	return counts, nil
}

func TestCreateDefaults(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
	store := &memStore{}
	core := offerbus.NewCore(log, store)

	before := time.Now().UTC()

	off, err := core.Create(context.Background(), offerbus.NewOffer{CustomerID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, offerstatus.Draft, off.Status)
	assert.False(t, off.TotalPrice.Valid)
	assert.WithinDuration(t, before.Add(offerbus.DefaultValidity), off.ValidUntil, 5*time.Second)
	require.Len(t, store.rows, 1)
}

func TestCreateKeepsZeroPrice(t *testing.T) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
	core := offerbus.NewCore(log, &memStore{})

	off, err := core.Create(context.Background(), offerbus.NewOffer{
		CustomerID: uuid.New(),
		TotalPrice: decimal.NewNullDecimal(decimal.Zero),
	})
	require.NoError(t, err)

	assert.True(t, off.TotalPrice.Valid)
	assert.True(t, off.TotalPrice.Decimal.IsZero())
}

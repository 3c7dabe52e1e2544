package customerbus_test

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/page"
	"github.com/jcpaschoal/wertvoll-dispo/business/sdk/sqldb"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore keeps customers in memory and mirrors the ordering rules of the
// SQL store.
type memStore struct {
	rows   []customerbus.Customer
	offers map[uuid.UUID]int
}

func (m *memStore) NewWithTx(sqldb.CommitRollbacker) (customerbus.Storer, error) {
	return m, nil
}

func (m *memStore) Create(_ context.Context, cus customerbus.Customer) error {
	if cus.Name == "" {
		return customerbus.ErrInvalid
	}
	m.rows = append(m.rows, cus)
	return nil
}

func (m *memStore) Update(_ context.Context, cus customerbus.Customer) error {
	for i := range m.rows {
		if m.rows[i].ID == cus.ID {
			m.rows[i] = cus
			return nil
		}
	}
	return customerbus.ErrNotFound
}

func (m *memStore) Delete(_ context.Context, cus customerbus.Customer) error {
	for i := range m.rows {
		if m.rows[i].ID == cus.ID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) QueryByID(_ context.Context, tenantID uuid.UUID, customerID uuid.UUID) (customerbus.Customer, error) {
	for _, c := range m.rows {
		if c.ID == customerID && c.TenantID == tenantID {
			return c, nil
		}
	}
	return customerbus.Customer{}, customerbus.ErrNotFound
}

func (m *memStore) QueryByNameFragment(_ context.Context, tenantID uuid.UUID, fragment string) ([]customerbus.Customer, error) {
	var out []customerbus.Customer
	for _, c := range m.rows {
		if c.TenantID == tenantID && strings.Contains(strings.ToLower(c.Name), strings.ToLower(fragment)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) CountLeads(_ context.Context, tenantID uuid.UUID) (int, error) {
	var n int
	for _, c := range m.rows {
		if c.TenantID == tenantID && m.offers[c.ID] == 0 {
			n++
		}
	}
	return n, nil
}

func (m *memStore) QueryPage(_ context.Context, tenantID uuid.UUID, after *customerbus.Anchor, limit int) ([]customerbus.Summary, error) {
	var rows []customerbus.Customer
	for _, c := range m.rows {
		if c.TenantID == tenantID {
			rows = append(rows, c)
		}
	}

	less := func(a, b customerbus.Anchor) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	}

	sort.Slice(rows, func(i, j int) bool {
		return less(customerbus.Anchor{CreatedAt: rows[j].CreatedAt, ID: rows[j].ID}, customerbus.Anchor{CreatedAt: rows[i].CreatedAt, ID: rows[i].ID})
	})

	var out []customerbus.Summary
	for _, c := range rows {
		if after != nil && !less(customerbus.Anchor{CreatedAt: c.CreatedAt, ID: c.ID}, *after) {
			continue
		}
		out = append(out, customerbus.Summary{Customer: c, OfferCount: m.offers[c.ID]})
		if len(out) == limit {
			break
		}
	}

	return out, nil
}

// =============================================================================

func newLog() *logger.Logger {
	var buf bytes.Buffer
	return logger.New(&buf, logger.LevelInfo, "TEST", func(context.Context) string { return "" })
}

func seed(t *testing.T, store *memStore, tenantID uuid.UUID, n int) {
	t.Helper()

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := range n {
		// Every third customer shares a timestamp with its predecessor to
		// exercise the ID tie-break.
		offset := time.Duration(i-i/3) * time.Minute
		store.rows = append(store.rows, customerbus.Customer{
			ID:        uuid.New(),
			TenantID:  tenantID,
			Name:      fmt.Sprintf("Kunde %02d", i),
			Type:      customertype.Private,
			CreatedAt: base.Add(offset),
		})
	}
}

func TestQueryPageVisitsEveryRowOnce(t *testing.T) {
	tenantID := uuid.New()

	store := &memStore{offers: map[uuid.UUID]int{}}
	seed(t, store, tenantID, 23)
	seed(t, store, uuid.New(), 5)

	core := customerbus.NewCore(newLog(), store)
	ctx := context.Background()

	for _, limit := range []int{1, 2, 5, 7, 22, 23, 24, 100} {
		t.Run(fmt.Sprintf("limit-%d", limit), func(t *testing.T) {
			seen := make(map[uuid.UUID]bool)
			var prev *customerbus.Summary
			cursor := ""

			for pages := 0; ; pages++ {
				require.Less(t, pages, 100, "pagination did not terminate")

				res, err := core.QueryPage(ctx, tenantID, page.MustParse(fmt.Sprint(limit), cursor))
				require.NoError(t, err)
				require.LessOrEqual(t, len(res.Items), limit)

				for i := range res.Items {
					item := res.Items[i]
					assert.False(t, seen[item.ID], "customer %s returned twice", item.Name)
					seen[item.ID] = true

					if prev != nil {
						assert.False(t, item.CreatedAt.After(prev.CreatedAt), "order is not descending")
					}
					prev = &item
				}

				if res.NextCursor == "" {
					break
				}
				cursor = res.NextCursor
			}

			assert.Len(t, seen, 23)
		})
	}
}

func TestQueryPageBadCursor(t *testing.T) {
	store := &memStore{offers: map[uuid.UUID]int{}}
	core := customerbus.NewCore(newLog(), store)

	_, err := core.QueryPage(context.Background(), uuid.New(), page.MustParse("10", "not-a-uuid"))
	assert.ErrorIs(t, err, customerbus.ErrInvalidCursor)

	_, err = core.QueryPage(context.Background(), uuid.New(), page.MustParse("10", uuid.NewString()))
	assert.ErrorIs(t, err, customerbus.ErrInvalidCursor)
}

func TestCreateDefaultsType(t *testing.T) {
	store := &memStore{offers: map[uuid.UUID]int{}}
	core := customerbus.NewCore(newLog(), store)

	cus, err := core.Create(context.Background(), customerbus.NewCustomer{
		TenantID: uuid.New(),
		Name:     "  Firma ABC GmbH ",
		Email:    "info@abc.de",
		Address:  "Industriestr. 5",
	})
	require.NoError(t, err)

	assert.Equal(t, customertype.Private, cus.Type)
	assert.Equal(t, "Firma ABC GmbH", cus.Name)
}

func TestQueryByNameFragment(t *testing.T) {
	tenantID := uuid.New()
	store := &memStore{offers: map[uuid.UUID]int{}}
	core := customerbus.NewCore(newLog(), store)
	ctx := context.Background()

	_, err := core.Create(ctx, customerbus.NewCustomer{TenantID: tenantID, Name: "Firma ABC GmbH", Email: "info@abc.de", Address: "Industriestr. 5"})
	require.NoError(t, err)

	got, err := core.QueryByNameFragment(ctx, tenantID, "abc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Firma ABC GmbH", got[0].Name)

	got, err = core.QueryByNameFragment(ctx, tenantID, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = core.QueryByNameFragment(ctx, uuid.New(), "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdatePartial(t *testing.T) {
	tenantID := uuid.New()
	store := &memStore{offers: map[uuid.UUID]int{}}
	core := customerbus.NewCore(newLog(), store)
	ctx := context.Background()

	cus, err := core.Create(ctx, customerbus.NewCustomer{TenantID: tenantID, Name: "Meier", Email: "a@b.de", Address: "Ringstr. 2"})
	require.NoError(t, err)

	name := "Meier & Co"
	biz := customertype.Business
	upd, err := core.Update(ctx, cus, customerbus.UpdateCustomer{Name: &name, Type: &biz})
	require.NoError(t, err)

	assert.Equal(t, "Meier & Co", upd.Name)
	assert.Equal(t, "a@b.de", upd.Email)
	assert.Equal(t, customertype.Business, upd.Type)
}

func TestRequiredFields(t *testing.T) {
	tenantID := uuid.New()
	store := &memStore{offers: map[uuid.UUID]int{}}
	core := customerbus.NewCore(newLog(), store)
	ctx := context.Background()

	tests := []struct {
		name string
		nc   customerbus.NewCustomer
	}{
		{"name", customerbus.NewCustomer{TenantID: tenantID, Name: "  ", Email: "a@b.de", Address: "Ringstr. 2"}},
		{"email", customerbus.NewCustomer{TenantID: tenantID, Name: "Max", Address: "Ringstr. 2"}},
		{"address", customerbus.NewCustomer{TenantID: tenantID, Name: "Max", Email: "a@b.de", Address: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Create(ctx, tt.nc)
			assert.ErrorIs(t, err, customerbus.ErrInvalid)
		})
	}

	assert.Empty(t, store.rows)

	cus, err := core.Create(ctx, customerbus.NewCustomer{TenantID: tenantID, Name: "Max", Email: "a@b.de", Address: "Ringstr. 2"})
	require.NoError(t, err)

	blank := ""
	_, err = core.Update(ctx, cus, customerbus.UpdateCustomer{Email: &blank})
	assert.ErrorIs(t, err, customerbus.ErrInvalid)
	assert.Equal(t, "a@b.de", store.rows[0].Email)
}

package customerapp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/wertvoll-dispo/app/sdk/errs"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/customerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/domain/offerbus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/customertype"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/offerstatus"
	"github.com/jcpaschoal/wertvoll-dispo/business/types/phone"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewCustomerValidate(t *testing.T) {
	valid := NewCustomer{
		Name:    "Firma ABC GmbH",
		Email:   "info@abc.de",
		Address: "Hauptstraße 1, 10115 Berlin",
	}

	tt := []struct {
		name   string
		mutate func(*NewCustomer)
		field  string
	}{
		{"name", func(n *NewCustomer) { n.Name = "" }, "name"},
		{"email", func(n *NewCustomer) { n.Email = "abc" }, "email"},
		{"address", func(n *NewCustomer) { n.Address = "" }, "address"},
		{"sqm", func(n *NewCustomer) { n.Sqm = ptr(0.0) }, "sqm"},
		{"cbm", func(n *NewCustomer) { n.Cbm = ptr(-3.0) }, "cbm"},
		{"type", func(n *NewCustomer) { n.Type = "VIP" }, "type"},
	}

	require.NoError(t, valid.Validate())

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			nc := valid
			tc.mutate(&nc)

			err := nc.Validate()
			require.Error(t, err)

			appErr := errs.GetError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errs.InvalidArgument, appErr.Code)
			assert.Contains(t, appErr.Message, `"field":"`+tc.field+`"`)
		})
	}
}

func TestToBusNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	nc, err := toBusNewCustomer(tenantID, NewCustomer{
		Name:    "Anna Schmidt",
		Email:   "anna@example.de",
		Address: "Ringstraße 5",
		Phone:   "+49 (0) 30 123456",
		Sqm:     ptr(85.5),
	})
	require.NoError(t, err)

	assert.Equal(t, tenantID, nc.TenantID)
	assert.Equal(t, customertype.CustomerType{}, nc.Type, "zero type is defaulted by the business layer")
	assert.Equal(t, "+4930123456", nc.Phone.String())
	assert.True(t, nc.Sqm.Valid)
	assert.Equal(t, "85.5", nc.Sqm.Decimal.String())
	assert.False(t, nc.Cbm.Valid)

	nc, err = toBusNewCustomer(tenantID, NewCustomer{Name: "B", Type: "BUSINESS"})
	require.NoError(t, err)
	assert.Equal(t, customertype.Business, nc.Type)
	assert.False(t, nc.Phone.Valid())

	_, err = toBusNewCustomer(tenantID, NewCustomer{Name: "C", Phone: "call me"})
	assert.Error(t, err)
}

func TestToBusUpdateCustomer(t *testing.T) {
	uc, err := toBusUpdateCustomer(UpdateCustomer{
		Phone: ptr(""),
		Type:  ptr("BUSINESS"),
		Cbm:   ptr(30.0),
	})
	require.NoError(t, err)

	assert.Nil(t, uc.Name)
	require.NotNil(t, uc.Phone)
	assert.False(t, uc.Phone.Valid(), "an empty phone clears the number")
	require.NotNil(t, uc.Type)
	assert.Equal(t, customertype.Business, *uc.Type)
	require.NotNil(t, uc.Cbm)
	assert.Equal(t, "30", uc.Cbm.Decimal.String())
	assert.Nil(t, uc.Sqm)
}

func TestDetailEncode(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	cus := customerbus.Customer{
		ID:        uuid.New(),
		Name:      "Firma ABC GmbH",
		Email:     "info@abc.de",
		Address:   "Hauptstraße 1",
		Phone:     phone.MustParseNull("030 123456"),
		Type:      customertype.Business,
		Cbm:       decimal.NewNullDecimal(decimal.RequireFromString("42.5")),
		CreatedAt: created,
		UpdatedAt: created,
	}

	offers := []offerbus.Offer{
		{ID: uuid.New(), Status: offerstatus.Draft, ValidUntil: created.Add(offerbus.DefaultValidity)},
		{ID: uuid.New(), Status: offerstatus.Sent, TotalPrice: decimal.NewNullDecimal(decimal.NewFromInt(1500)), ValidUntil: created},
	}

	data, _, err := Detail{Customer: toAppCustomer(cus), Offers: toAppOffers(offers)}.Encode()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "BUSINESS", got["type"])
	assert.Equal(t, 42.5, got["cbm"])
	assert.NotContains(t, got, "sqm")
	assert.Equal(t, "2025-03-01T09:00:00Z", got["dateCreated"])

	list := got["offers"].([]any)
	require.Len(t, list, 2)
	assert.NotContains(t, list[0].(map[string]any), "totalPrice")
	assert.Equal(t, "1500.00", list[1].(map[string]any)["totalPrice"])
}

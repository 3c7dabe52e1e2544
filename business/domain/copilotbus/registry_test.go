package copilotbus

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMatchesHandlers(t *testing.T) {
	handlers := reflect.TypeOf((*handler)(nil)).Elem()
	require.Equal(t, handlers.NumMethod(), len(registry), "every tool needs exactly one handler method")

	names := make(map[string]bool)
	types := make(map[reflect.Type]bool)

	for _, tl := range registry {
		assert.False(t, names[tl.Name], "duplicate tool name %q", tl.Name)
		names[tl.Name] = true

		action, _ := tl.decode(arguments{})
		require.NotNil(t, action)
		assert.Equal(t, tl.Name, action.ToolName())

		typ := reflect.TypeOf(action)
		assert.False(t, types[typ], "tool %q reuses variant %s", tl.Name, typ)
		types[typ] = true

		got, exists := lookup(tl.Name)
		require.True(t, exists)
		assert.Equal(t, tl.Name, got.Name)
	}
}

func TestToolSchemas(t *testing.T) {
	tests := []struct {
		tool     string
		required []string
		props    []string
	}{
		{"create_customer", []string{"name", "email", "address"}, []string{"name", "email", "address", "phone", "type"}},
		{"create_offer", []string{"customerName"}, []string{"customerName", "totalPrice", "note"}},
		{"get_open_leads", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			tl, exists := lookup(tt.tool)
			require.True(t, exists)

			data, err := json.Marshal(tl.Parameters)
			require.NoError(t, err)

			var schema struct {
				Type                 string                    `json:"type"`
				Required             []string                  `json:"required"`
				Properties           map[string]map[string]any `json:"properties"`
				AdditionalProperties *bool                     `json:"additionalProperties"`
				Schema               string                    `json:"$schema"`
			}
			require.NoError(t, json.Unmarshal(data, &schema))

			assert.Equal(t, "object", schema.Type)
			assert.Empty(t, schema.Schema)
			assert.ElementsMatch(t, tt.required, schema.Required)

			for _, p := range tt.props {
				assert.Contains(t, schema.Properties, p)
			}
			assert.Len(t, schema.Properties, len(tt.props))
		})
	}
}

func TestCustomerTypeEnum(t *testing.T) {
	tl, _ := lookup("create_customer")

	data, err := json.Marshal(tl.Parameters)
	require.NoError(t, err)

	var schema struct {
		Properties map[string]struct {
			Type string   `json:"type"`
			Enum []string `json:"enum"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, []string{"PRIVATE", "BUSINESS"}, schema.Properties["type"].Enum)
}

func TestOfferPriceIsNumber(t *testing.T) {
	tl, _ := lookup("create_offer")

	price, exists := tl.Parameters.Properties.Get("totalPrice")
	require.True(t, exists)
	assert.Equal(t, "number", price.Type)
}

func TestToolsHandsOutCopies(t *testing.T) {
	first := Tools()
	first[0].Parameters.Required = nil
	first[0].Parameters.Properties.Delete("email")

	second := Tools()
	assert.NotSame(t, first[0].Parameters, second[0].Parameters)
	assert.ElementsMatch(t, []string{"name", "email", "address"}, second[0].Parameters.Required)

	_, exists := second[0].Parameters.Properties.Get("email")
	assert.True(t, exists)

	tl, _ := lookup("create_customer")
	assert.Len(t, tl.Parameters.Required, 3)
}

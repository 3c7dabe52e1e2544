package copilotbus

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
)

// variant ties an action struct to the decoding its pointer provides.
type variant[T any] interface {
	*T
	Action
	fromArguments(args arguments) []string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// tool builds the registry entry for an action variant. The parameter schema
// is reflected from the variant's struct tags.
func tool[T any, P variant[T]](description string) Tool {
	var zero T

	return Tool{
		Name:        P(&zero).ToolName(),
		Description: description,
		Parameters:  reflectSchema[T](),
		schema:      reflectSchema[T],
		decode: func(args arguments) (Action, []string) {
			v := new(T)
			short := P(v).fromArguments(args)
			short = append(short, shortfalls(v)...)
			return P(v), short
		},
	}
}

// shortfalls lists the fields of v that break their declared contract.
func shortfalls(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}

	return out
}

// registry is the fixed tool set offered to the recognizer on every turn.
var registry = []Tool{
	tool[CreateCustomer]("Einen neuen Kunden anlegen"),
	tool[CreateOffer]("Ein neues Angebot für einen Kunden erstellen"),
	tool[CountOpenLeads]("Anzahl der offenen Leads abrufen"),
}

var registryIndex = func() map[string]Tool {
	m := make(map[string]Tool, len(registry))
	for _, t := range registry {
		if _, exists := m[t.Name]; exists {
			panic(fmt.Sprintf("duplicate tool %q", t.Name))
		}
		m[t.Name] = t
	}
	return m
}()

// reflectSchema builds the parameter schema of T from its struct tags.
func reflectSchema[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(new(T))
	schema.Version = ""

	return schema
}

// Tools returns the registry in declaration order. Each call gets its own
// schemas, so callers may change them freely.
func Tools() []Tool {
	out := make([]Tool, len(registry))
	for i, t := range registry {
		t.Parameters = t.schema()
		out[i] = t
	}
	return out
}

// lookup returns the tool registered under name.
func lookup(name string) (Tool, bool) {
	t, exists := registryIndex[name]
	return t, exists
}

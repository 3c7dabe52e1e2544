package copilotbus

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// arguments is the decoded, still untyped payload of a tool call.
type arguments map[string]any

// parseArguments decodes the raw JSON object of a call. Empty input is an
// empty object.
func parseArguments(raw string) (arguments, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return arguments{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var args arguments
	if err := dec.Decode(&args); err != nil {
		return arguments{}, fmt.Errorf("decode arguments: %w", err)
	}

	if args == nil {
		args = arguments{}
	}

	return args, nil
}

// text returns the value under key as trimmed text. Numbers and booleans are
// rendered; anything else is reported as a shortfall.
func (a arguments) text(key string, short *[]string) string {
	v, exists := a[key]
	if !exists || v == nil {
		return ""
	}

	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}

	*short = append(*short, fmt.Sprintf("%s: expected text, got %T", key, v))
	return ""
}

// number returns the value under key as a number, or nil when the key is
// absent. Numeric strings are accepted with either decimal separator.
func (a arguments) number(key string, short *[]string) *float64 {
	v, exists := a[key]
	if !exists || v == nil {
		return nil
	}

	var s string
	switch v := v.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "€"))
		if s == "" {
			return nil
		}
		if !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
	default:
		*short = append(*short, fmt.Sprintf("%s: expected number, got %T", key, v))
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*short = append(*short, fmt.Sprintf("%s: %q is not a number", key, s))
		return nil
	}

	return &f
}

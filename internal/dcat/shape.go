package dcat

import (
	"encoding/json"
	"strconv"
)

// Shape classifies the runtime form a decoded JSON field takes. The catalog
// emits the same logical field as a scalar, a list or an object depending on
// the item, so every extractor switches on the shape first.
type Shape int

const (
	Missing Shape = iota // absent or null
	Scalar               // string, number or bool
	List                 // JSON array
	Object               // JSON object
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Object:
		return "object"
	default:
		return "missing"
	}
}

// Classify reports the shape of a value produced by encoding/json.
// Types encoding/json never produces are reported as Missing.
func Classify(v any) Shape {
	switch v.(type) {
	case string, float64, bool, json.Number:
		return Scalar
	case []any:
		return List
	case map[string]any:
		return Object
	default:
		return Missing
	}
}

// ScalarString renders a scalar as a string. ok is false for non-scalars.
func ScalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}

// Strings collects the non-empty scalars of a scalar-or-list field.
func Strings(v any) []string {
	switch Classify(v) {
	case Scalar:
		if s, _ := ScalarString(v); s != "" {
			return []string{s}
		}
	case List:
		var out []string
		for _, e := range v.([]any) {
			if s, ok := ScalarString(e); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// FormatValue extracts a media type or format name from a distribution's
// "format" field: either a bare scalar or an object carrying "value" or
// "_about".
func FormatValue(v any) string {
	switch Classify(v) {
	case Scalar:
		s, _ := ScalarString(v)
		return s
	case Object:
		obj := v.(map[string]any)
		for _, key := range []string{"value", "_value", "_about"} {
			if s, ok := ScalarString(obj[key]); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

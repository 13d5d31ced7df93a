package naming

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToWireKey converts a snake_case identifier into the lowerCamelCase form used on the wire.
// Example: "wallet_address" => "walletAddress". Input without underscores is returned unchanged.
func ToWireKey(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}

	segments := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(segments[0])
	for _, segment := range segments[1:] {
		b.WriteString(capitalize(segment))
	}
	return b.String()
}

func capitalize(segment string) string {
	if segment == "" {
		return segment
	}
	r, size := utf8.DecodeRuneInString(segment)
	return string(unicode.ToUpper(r)) + segment[size:]
}

// ToWireKeys returns a new map with ToWireKey applied to every key.
// Nested maps keyed by strings are converted recursively; every other value,
// slices included, is carried over as is. The input is never modified.
func ToWireKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[ToWireKey(k)] = convertValue(v)
	}
	return out
}

func convertValue(v any) any {
	switch typed := v.(type) {
	case nil:
		return nil
	case map[string]any:
		return ToWireKeys(typed)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return v
	}

	// Named map types (picket.Params) and typed maps like map[string]string.
	nested := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		nested[iter.Key().String()] = iter.Value().Interface()
	}
	return ToWireKeys(nested)
}

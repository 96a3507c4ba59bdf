// Package casing rewrites snake_case object keys in decoded JSON into camelCase.
//
// Values are the generic trees produced by encoding/json when decoding into any:
// map[string]any, []any, string, float64, json.Number, bool and nil.
package casing

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SnakeToCamel converts a snake_case key into camelCase.
//
// Keys without an underscore are returned unchanged. Empty segments (leading, trailing or doubled
// underscores) are dropped; a key made only of underscores is returned unchanged.
// No acronym handling: "ID_VALUE" becomes "iDVALUE".
func SnakeToCamel(key string) string {
	if !strings.Contains(key, "_") {
		return key
	}

	var b strings.Builder
	b.Grow(len(key))

	first := true
	for segment := range strings.SplitSeq(key, "_") {
		if segment == "" {
			continue
		}

		r, size := utf8.DecodeRuneInString(segment)
		if first {
			b.WriteRune(unicode.ToLower(r))
			first = false
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(segment[size:])
	}

	if first {
		return key
	}
	return b.String()
}

// Normalize returns a copy of v with every object key passed through [SnakeToCamel], recursing into
// nested objects and arrays. Scalars and nil are returned as-is and the input is never modified.
//
// When a snake_case key collides with a key already spelled that way ("track_id" and "trackId"),
// the already camelCase key keeps its value. Between snake_case keys that collide, the lexically smallest wins.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if SnakeToCamel(k) == k {
				out[k] = Normalize(child)
			}
		}
		for _, k := range slices.Sorted(maps.Keys(val)) {
			camel := SnakeToCamel(k)
			if camel == k {
				continue
			}
			if _, taken := out[camel]; !taken {
				out[camel] = Normalize(val[k])
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Normalize(child)
		}
		return out
	default:
		return v
	}
}

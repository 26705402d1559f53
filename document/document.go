package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Document is a decoded OpenAPI or Swagger document.
type Document = map[string]any

// Map returns v as an object, or nil and false if it is not one.
func Map(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Slice returns v as an array, or nil and false if it is not one.
func Slice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// String returns v as a string, or "" and false if it is not one.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool returns v as a bool, or false and false if it is not one.
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// StringSlice returns the string elements of an array value.
// Non-string elements are skipped; a missing or non-array value yields nil.
func StringSlice(v any) []string {
	items, ok := Slice(v)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// EnsureMap returns parent[key] as an object, creating it when it is absent
// or not an object.
func EnsureMap(parent map[string]any, key string) map[string]any {
	if m, ok := Map(parent[key]); ok {
		return m
	}
	m := make(map[string]any)
	parent[key] = m
	return m
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsExtension reports whether key is a specification extension ("x-" prefix).
func IsExtension(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// CopyExtensions copies every "x-" key of src into dst.
func CopyExtensions(dst, src map[string]any) {
	for k, v := range src {
		if IsExtension(k) {
			dst[k] = v
		}
	}
}

// DeepCopy returns a copy of v in which every object and array is fresh.
// Scalars are shared.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[k] = DeepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = DeepCopy(child)
		}
		return out
	default:
		return v
	}
}

// CopyDocument deep copies a document.
func CopyDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	return DeepCopy(doc).(map[string]any)
}

// Normalize converts decoder output into the canonical tree shape: every
// object becomes map[string]any. YAML mappings with non-string keys, such as
// unquoted response codes, decode as map[any]any; their keys are
// stringified here. JSON numbers become int, uint64 or float64.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		return normalizeNumber(t)
	case map[string]any:
		for k, child := range t {
			t[k] = Normalize(child)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[fmt.Sprint(k)] = Normalize(child)
		}
		return out
	case []any:
		for i, child := range t {
			t[i] = Normalize(child)
		}
		return t
	default:
		return v
	}
}

func normalizeNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		if int64(int(i)) == i {
			return int(i)
		}
		return i
	}
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return u
		}
		// Integers wider than 64 bits keep their literal text.
		return n
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n
}

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessors(t *testing.T) {
	doc := Document{
		"name":     "pets",
		"enabled":  true,
		"tags":     []any{"a", 1, "b"},
		"info":     map[string]any{"title": "x"},
		"x-custom": 42,
	}

	m, ok := Map(doc["info"])
	require.True(t, ok)
	assert.Equal(t, "x", m["title"])

	_, ok = Map(doc["name"])
	assert.False(t, ok)

	s, ok := String(doc["name"])
	assert.True(t, ok)
	assert.Equal(t, "pets", s)

	b, ok := Bool(doc["enabled"])
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, []string{"a", "b"}, StringSlice(doc["tags"]))
	assert.Nil(t, StringSlice(doc["missing"]))

	assert.Equal(t, []string{"enabled", "info", "name", "tags", "x-custom"}, SortedKeys(doc))
}

func TestEnsureMap(t *testing.T) {
	parent := map[string]any{"existing": map[string]any{"a": 1}, "scalar": "s"}

	existing := EnsureMap(parent, "existing")
	assert.Equal(t, 1, existing["a"])

	created := EnsureMap(parent, "created")
	created["b"] = 2
	assert.Equal(t, map[string]any{"b": 2}, parent["created"])

	replaced := EnsureMap(parent, "scalar")
	assert.Empty(t, replaced)
	assert.IsType(t, map[string]any{}, parent["scalar"])
}

func TestExtensions(t *testing.T) {
	assert.True(t, IsExtension("x-internal"))
	assert.False(t, IsExtension("description"))

	dst := map[string]any{}
	CopyExtensions(dst, map[string]any{"x-a": 1, "b": 2, "x-c": "c"})
	assert.Equal(t, map[string]any{"x-a": 1, "x-c": "c"}, dst)
}

func TestDeepCopy(t *testing.T) {
	src := Document{
		"paths": map[string]any{
			"/pets": map[string]any{"tags": []any{"pets"}},
		},
	}

	cp := CopyDocument(src)
	cp["paths"].(map[string]any)["/pets"].(map[string]any)["tags"].([]any)[0] = "changed"

	assert.Equal(t, "pets", src["paths"].(map[string]any)["/pets"].(map[string]any)["tags"].([]any)[0])
	assert.Nil(t, CopyDocument(nil))
}

func TestNormalize(t *testing.T) {
	raw := map[string]any{
		"responses": map[any]any{
			200:       map[any]any{"description": "ok"},
			"default": map[string]any{"description": "error"},
		},
		"list": []any{map[any]any{true: "yes"}},
	}

	got := Normalize(raw).(map[string]any)

	responses, ok := got["responses"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, responses, "200")
	assert.Equal(t, map[string]any{"description": "ok"}, responses["200"])
	assert.Equal(t, map[string]any{"true": "yes"}, got["list"].([]any)[0])
}

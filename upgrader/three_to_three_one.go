package upgrader

import (
	"reflect"
	"strings"

	"github.com/erraggy/oasupgrade/document"
)

// FromThreeToThreeOne upgrades an OpenAPI 3.0 document to 3.1 in place and
// returns it together with the issues found along the way. Documents that
// are not 3.0.x are returned unchanged with no issues.
func FromThreeToThreeOne(doc document.Document) (document.Document, []Issue) {
	if doc == nil {
		return doc, nil
	}
	if v, _ := document.DetectVersion(doc); v != document.VersionOpenAPI30 {
		return doc, nil
	}

	u := &threeToThreeOne{doc: doc, tr: &tracker{}}
	u.run()
	return doc, u.tr.issues
}

type threeToThreeOne struct {
	doc document.Document
	tr  *tracker
}

func (u *threeToThreeOne) run() {
	u.doc["openapi"] = document.OpenAPI31Latest
	u.moveWebhooks()

	w := &docWalker{
		schema:    u.fixSchema,
		mediaType: u.fixMediaType,
		tr:        u.tr,
	}
	w.walkDocument(u.doc)
}

// moveWebhooks promotes the x-webhooks extension to the 3.1 webhooks field.
func (u *threeToThreeOne) moveWebhooks() {
	hooks, ok := u.doc["x-webhooks"]
	if !ok {
		return
	}
	if _, exists := u.doc["webhooks"]; exists {
		u.tr.add("x-webhooks", "Both webhooks and x-webhooks are present; x-webhooks left unchanged", SeverityWarning)
		return
	}
	u.doc["webhooks"] = hooks
	delete(u.doc, "x-webhooks")
}

// fixMediaType drops the schema of raw binary payloads, which 3.1 describes
// by the media type alone.
func (u *threeToThreeOne) fixMediaType(contentType string, mt map[string]any, path string) {
	if !isBinaryMediaType(contentType) {
		return
	}
	schema, ok := document.Map(mt["schema"])
	if !ok || len(schema) != 2 {
		return
	}
	t, _ := document.String(schema["type"])
	f, _ := document.String(schema["format"])
	if t != "string" || f != "binary" {
		return
	}
	delete(mt, "schema")
	u.tr.add(childPath(path, "schema"), "Binary string schema removed; the media type already describes the raw payload", SeverityInfo)
}

// isBinaryMediaType reports whether a content type carries raw bytes rather
// than JSON, form or multipart data.
func isBinaryMediaType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch {
	case ct == "", ct == "*/*":
		return false
	case strings.Contains(ct, "json"):
		return false
	case ct == mediaTypeFormURLEncoded, strings.HasPrefix(ct, "multipart/"):
		return false
	}
	return true
}

// fixSchema applies the 3.0 -> 3.1 keyword changes to one schema.
func (u *threeToThreeOne) fixSchema(schema map[string]any, path string) {
	u.fixFormat(schema)
	u.fixNullable(schema, path)
	u.fixExclusiveBounds(schema, path)
	u.fixExample(schema)
}

func (u *threeToThreeOne) fixFormat(schema map[string]any) {
	if !typeIncludes(schema, "string") {
		return
	}
	format, _ := document.String(schema["format"])
	switch format {
	case "base64", "byte":
		schema["contentEncoding"] = "base64"
		delete(schema, "format")
	case "binary":
		schema["contentMediaType"] = "application/octet-stream"
		delete(schema, "format")
	}
}

func (u *threeToThreeOne) fixNullable(schema map[string]any, path string) {
	v, ok := schema["nullable"]
	if !ok {
		return
	}
	delete(schema, "nullable")
	if b, _ := document.Bool(v); !b {
		return
	}

	if enum, ok := document.Slice(schema["enum"]); ok && !containsValue(enum, nil) {
		schema["enum"] = append(enum, nil)
	}

	switch t := schema["type"].(type) {
	case string:
		if t != "null" {
			schema["type"] = []any{t, "null"}
		}
		return
	case []any:
		if !containsValue(t, "null") {
			schema["type"] = append(t, "null")
		}
		return
	}

	nullSchema := map[string]any{"type": "null"}
	for _, key := range []string{"oneOf", "anyOf"} {
		if list, ok := document.Slice(schema[key]); ok {
			if !containsValue(list, nullSchema) {
				schema[key] = append(list, nullSchema)
			}
			return
		}
	}
	u.tr.add(childPath(path, "nullable"), "nullable without type, oneOf or anyOf cannot be expressed in 3.1; removed", SeverityInfo)
}

// exclusiveBounds pairs each boolean exclusive flag with its bound.
var exclusiveBounds = [][2]string{
	{"exclusiveMinimum", "minimum"},
	{"exclusiveMaximum", "maximum"},
}

func (u *threeToThreeOne) fixExclusiveBounds(schema map[string]any, path string) {
	for _, pair := range exclusiveBounds {
		flag, bound := pair[0], pair[1]
		b, ok := document.Bool(schema[flag])
		if !ok {
			continue
		}
		delete(schema, flag)
		if !b {
			continue
		}
		value, ok := schema[bound]
		if !ok {
			u.tr.addf(childPath(path, flag), SeverityWarning, "%s is true but %s is not set; removed", flag, bound)
			continue
		}
		schema[flag] = value
		delete(schema, bound)
	}
}

func (u *threeToThreeOne) fixExample(schema map[string]any) {
	example, ok := schema["example"]
	if !ok {
		return
	}

	existing, ok := schema["examples"]
	if !ok {
		schema["examples"] = []any{example}
		delete(schema, "example")
		return
	}
	list, ok := document.Slice(existing)
	if !ok {
		return
	}
	if !containsValue(list, example) {
		schema["examples"] = append(list, example)
	}
	delete(schema, "example")
}

// typeIncludes reports whether the schema type is name, or lists it, or is
// absent.
func typeIncludes(schema map[string]any, name string) bool {
	switch t := schema["type"].(type) {
	case nil:
		return true
	case string:
		return t == name
	case []any:
		return containsValue(t, name)
	}
	return false
}

func containsValue(list []any, v any) bool {
	for _, item := range list {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

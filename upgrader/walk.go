// This file implements traversal of every schema and media type position
// in an OpenAPI 3.x document tree.

package upgrader

import (
	"fmt"

	"github.com/erraggy/oasupgrade/document"
)

// maxSchemaDepth bounds schema recursion for pathologically nested schemas.
// Documents must be acyclic; ref rewriting and deep copies do not check.
const maxSchemaDepth = 256

// operationMethods are the HTTP methods of an OpenAPI 3.x path item.
var operationMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// swaggerMethods are the HTTP methods of a Swagger 2.0 path item.
var swaggerMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// schemaVisitor is called once per schema object, before its subschemas.
type schemaVisitor func(schema map[string]any, path string)

// mediaTypeVisitor is called once per media type object.
type mediaTypeVisitor func(contentType string, mediaType map[string]any, path string)

// docWalker visits schema and media type positions of an OpenAPI 3.x document.
// Either visitor may be nil.
type docWalker struct {
	schema    schemaVisitor
	mediaType mediaTypeVisitor
	tr        *tracker
}

// walkDocument visits components, paths, and webhooks.
func (w *docWalker) walkDocument(doc document.Document) {
	if components, ok := document.Map(doc["components"]); ok {
		w.walkComponents(components, "components")
	}
	if paths, ok := document.Map(doc["paths"]); ok {
		for _, p := range document.SortedKeys(paths) {
			if document.IsExtension(p) {
				continue
			}
			w.walkPathItem(paths[p], childPath("paths", p))
		}
	}
	if webhooks, ok := document.Map(doc["webhooks"]); ok {
		for _, name := range document.SortedKeys(webhooks) {
			w.walkPathItem(webhooks[name], childPath("webhooks", name))
		}
	}
}

func (w *docWalker) walkComponents(components map[string]any, path string) {
	if schemas, ok := document.Map(components["schemas"]); ok {
		for _, name := range document.SortedKeys(schemas) {
			w.walkSchema(schemas[name], childPath(childPath(path, "schemas"), name), 0)
		}
	}
	if params, ok := document.Map(components["parameters"]); ok {
		for _, name := range document.SortedKeys(params) {
			w.walkParameter(params[name], childPath(childPath(path, "parameters"), name))
		}
	}
	if headers, ok := document.Map(components["headers"]); ok {
		w.walkHeaders(headers, childPath(path, "headers"))
	}
	if responses, ok := document.Map(components["responses"]); ok {
		for _, name := range document.SortedKeys(responses) {
			w.walkResponse(responses[name], childPath(childPath(path, "responses"), name))
		}
	}
	if bodies, ok := document.Map(components["requestBodies"]); ok {
		for _, name := range document.SortedKeys(bodies) {
			w.walkRequestBody(bodies[name], childPath(childPath(path, "requestBodies"), name))
		}
	}
	if callbacks, ok := document.Map(components["callbacks"]); ok {
		for _, name := range document.SortedKeys(callbacks) {
			w.walkCallback(callbacks[name], childPath(childPath(path, "callbacks"), name))
		}
	}
	if pathItems, ok := document.Map(components["pathItems"]); ok {
		for _, name := range document.SortedKeys(pathItems) {
			w.walkPathItem(pathItems[name], childPath(childPath(path, "pathItems"), name))
		}
	}
}

func (w *docWalker) walkPathItem(v any, path string) {
	item, ok := document.Map(v)
	if !ok {
		return
	}
	w.walkParameterList(item["parameters"], childPath(path, "parameters"))

	for _, method := range operationMethods {
		op, ok := document.Map(item[method])
		if !ok {
			continue
		}
		opPath := childPath(path, method)
		w.walkParameterList(op["parameters"], childPath(opPath, "parameters"))
		w.walkRequestBody(op["requestBody"], childPath(opPath, "requestBody"))
		if responses, ok := document.Map(op["responses"]); ok {
			for _, code := range document.SortedKeys(responses) {
				if document.IsExtension(code) {
					continue
				}
				w.walkResponse(responses[code], childPath(childPath(opPath, "responses"), code))
			}
		}
		if callbacks, ok := document.Map(op["callbacks"]); ok {
			for _, name := range document.SortedKeys(callbacks) {
				w.walkCallback(callbacks[name], childPath(childPath(opPath, "callbacks"), name))
			}
		}
	}
}

func (w *docWalker) walkCallback(v any, path string) {
	callback, ok := document.Map(v)
	if !ok {
		return
	}
	for _, expr := range document.SortedKeys(callback) {
		if document.IsExtension(expr) {
			continue
		}
		w.walkPathItem(callback[expr], childPath(path, expr))
	}
}

func (w *docWalker) walkParameterList(v any, path string) {
	params, ok := document.Slice(v)
	if !ok {
		return
	}
	for i, p := range params {
		w.walkParameter(p, indexPath(path, i))
	}
}

func (w *docWalker) walkParameter(v any, path string) {
	param, ok := document.Map(v)
	if !ok {
		return
	}
	w.walkSchema(param["schema"], childPath(path, "schema"), 0)
	w.walkContent(param["content"], childPath(path, "content"))
}

func (w *docWalker) walkHeaders(headers map[string]any, path string) {
	for _, name := range document.SortedKeys(headers) {
		w.walkParameter(headers[name], childPath(path, name))
	}
}

func (w *docWalker) walkRequestBody(v any, path string) {
	body, ok := document.Map(v)
	if !ok {
		return
	}
	w.walkContent(body["content"], childPath(path, "content"))
}

func (w *docWalker) walkResponse(v any, path string) {
	response, ok := document.Map(v)
	if !ok {
		return
	}
	if headers, ok := document.Map(response["headers"]); ok {
		w.walkHeaders(headers, childPath(path, "headers"))
	}
	w.walkContent(response["content"], childPath(path, "content"))
}

func (w *docWalker) walkContent(v any, path string) {
	content, ok := document.Map(v)
	if !ok {
		return
	}
	for _, contentType := range document.SortedKeys(content) {
		mt, ok := document.Map(content[contentType])
		if !ok {
			continue
		}
		mtPath := childPath(path, contentType)
		if w.mediaType != nil {
			w.mediaType(contentType, mt, mtPath)
		}
		w.walkSchema(mt["schema"], childPath(mtPath, "schema"), 0)
		if encoding, ok := document.Map(mt["encoding"]); ok {
			for _, name := range document.SortedKeys(encoding) {
				if enc, ok := document.Map(encoding[name]); ok {
					if headers, ok := document.Map(enc["headers"]); ok {
						w.walkHeaders(headers, childPath(childPath(childPath(mtPath, "encoding"), name), "headers"))
					}
				}
			}
		}
	}
}

// singleSchemaKeys hold exactly one subschema.
var singleSchemaKeys = []string{
	"not", "contains", "propertyNames", "if", "then", "else", "contentSchema",
	"additionalProperties", "additionalItems", "unevaluatedProperties", "unevaluatedItems",
}

// schemaListKeys hold an array of subschemas.
var schemaListKeys = []string{"allOf", "anyOf", "oneOf", "prefixItems"}

// schemaMapKeys hold a map of named subschemas.
var schemaMapKeys = []string{"properties", "patternProperties", "dependentSchemas", "$defs", "definitions"}

// walkSchema visits a schema and then its subschemas. Boolean schemas and
// anything else that is not an object are skipped.
func (w *docWalker) walkSchema(v any, path string, depth int) {
	schema, ok := document.Map(v)
	if !ok {
		return
	}
	if depth > maxSchemaDepth {
		if w.tr != nil {
			w.tr.addf(path, SeverityWarning, "Schema nesting exceeds %d levels; deeper schemas were left unchanged", maxSchemaDepth)
		}
		return
	}

	if w.schema != nil {
		w.schema(schema, path)
	}

	for _, key := range schemaMapKeys {
		if children, ok := document.Map(schema[key]); ok {
			for _, name := range document.SortedKeys(children) {
				w.walkSchema(children[name], childPath(childPath(path, key), name), depth+1)
			}
		}
	}

	switch items := schema["items"].(type) {
	case map[string]any:
		w.walkSchema(items, childPath(path, "items"), depth+1)
	case []any:
		for i, item := range items {
			w.walkSchema(item, indexPath(childPath(path, "items"), i), depth+1)
		}
	}

	for _, key := range schemaListKeys {
		if list, ok := document.Slice(schema[key]); ok {
			for i, child := range list {
				w.walkSchema(child, fmt.Sprintf("%s.%s[%d]", path, key, i), depth+1)
			}
		}
	}

	for _, key := range singleSchemaKeys {
		w.walkSchema(schema[key], childPath(path, key), depth+1)
	}
}

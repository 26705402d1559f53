package upgrader

import (
	"github.com/erraggy/oasupgrade/document"
)

// convertResponse moves a 2.0 response schema and examples under content
// and converts its headers. References are left for the ref rewriter.
func (u *twoToThree) convertResponse(v any, produces []string, path string) any {
	resp, ok := document.Map(v)
	if !ok {
		return v
	}
	if _, ok := resp["$ref"]; ok {
		return resp
	}

	schema, hasSchema := resp["schema"]
	examples, _ := document.Map(resp["examples"])
	delete(resp, "schema")
	delete(resp, "examples")

	if hasSchema || len(examples) > 0 {
		content := make(map[string]any)
		if hasSchema {
			for _, ct := range produces {
				content[ct] = map[string]any{"schema": document.DeepCopy(schema)}
			}
		}
		for _, mime := range document.SortedKeys(examples) {
			mt, ok := document.Map(content[mime])
			if !ok {
				mt = make(map[string]any)
				if hasSchema {
					mt["schema"] = document.DeepCopy(schema)
				}
				content[mime] = mt
			}
			mt["example"] = examples[mime]
		}
		resp["content"] = content
	}

	if headers, ok := document.Map(resp["headers"]); ok {
		for _, name := range document.SortedKeys(headers) {
			headers[name] = u.convertHeader(headers[name], childPath(childPath(path, "headers"), name))
		}
	}
	return resp
}

// convertHeader moves the type keywords of a 2.0 header into a schema.
func (u *twoToThree) convertHeader(v any, path string) any {
	header, ok := document.Map(v)
	if !ok {
		return v
	}
	if _, ok := header["$ref"]; ok {
		return header
	}

	out := make(map[string]any)
	if d, ok := header["description"]; ok {
		out["description"] = d
	}
	document.CopyExtensions(out, header)
	if schema := u.itemsToSchema(header, path); len(schema) > 0 {
		out["schema"] = schema
	}

	if cf, _ := document.String(header["collectionFormat"]); cf != "" && cf != "csv" {
		u.tr.addf(childPath(path, "collectionFormat"), SeverityWarning,
			"Header collectionFormat %q cannot be expressed in OpenAPI 3.0; headers use the simple style", cf)
	}
	return out
}

package upgrader

import (
	"github.com/erraggy/oasupgrade/document"
)

// parameterFields are copied from a 2.0 parameter to its 3.0 form as is.
var parameterFields = []string{"name", "in", "description", "required", "deprecated", "allowEmptyValue"}

// schemaFields are the 2.0 parameter, header and items keywords that move
// into the 3.0 schema.
var schemaFields = []string{
	"type", "format", "enum", "default",
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minLength", "maxLength", "pattern",
	"minItems", "maxItems", "uniqueItems",
}

// bodyParam is the body parameter chosen for an operation.
type bodyParam struct {
	param   map[string]any // inline body parameter
	refName string         // global body parameter name, when referenced
}

func (b *bodyParam) requestBody(consumes []string) map[string]any {
	if b.refName != "" {
		return map[string]any{"$ref": "#/components/requestBodies/" + refPointerToken(b.refName)}
	}
	return bodyToRequestBody(b.param, consumes)
}

// paramSplit is a 2.0 parameter list separated by what it becomes in 3.0.
type paramSplit struct {
	params []any
	body   *bodyParam
	forms  []map[string]any
}

func (s paramSplit) hasBody() bool {
	return s.body != nil || len(s.forms) > 0
}

// splitParameters converts a 2.0 parameter list. Body and formData
// parameters, inline or referenced, are taken out of the list.
func (u *twoToThree) splitParameters(v any, path string) paramSplit {
	var split paramSplit
	list, ok := document.Slice(v)
	if !ok {
		return split
	}

	for i, item := range list {
		itemPath := indexPath(path, i)
		param, ok := document.Map(item)
		if !ok {
			u.tr.add(itemPath, "Parameter is not an object; dropped", SeverityWarning)
			continue
		}

		if ref, ok := document.String(param["$ref"]); ok {
			if name, ok := localRefName(ref, "#/parameters/"); ok {
				if u.bodyParams[name] {
					u.setBody(&split, &bodyParam{refName: name}, itemPath)
					continue
				}
				if form, ok := u.formParams[name]; ok {
					split.forms = append(split.forms, document.DeepCopy(form).(map[string]any))
					continue
				}
			}
			split.params = append(split.params, param)
			continue
		}

		in, _ := document.String(param["in"])
		switch in {
		case "body":
			u.setBody(&split, &bodyParam{param: param}, itemPath)
		case "formData":
			split.forms = append(split.forms, param)
		default:
			split.params = append(split.params, u.convertParameter(param, itemPath))
		}
	}
	return split
}

func (u *twoToThree) setBody(split *paramSplit, body *bodyParam, path string) {
	if split.body != nil {
		u.tr.addWithContext(path, "Multiple body parameters", "Only the first body parameter was converted to the request body")
		return
	}
	split.body = body
}

// convertParameter converts a non-body 2.0 parameter to its 3.0 form.
func (u *twoToThree) convertParameter(param map[string]any, path string) map[string]any {
	out := make(map[string]any, len(param))
	for _, k := range parameterFields {
		if v, ok := param[k]; ok {
			out[k] = v
		}
	}
	document.CopyExtensions(out, param)

	if schema := u.itemsToSchema(param, path); len(schema) > 0 {
		out["schema"] = schema
	}

	in, _ := document.String(param["in"])
	format, _ := document.String(param["collectionFormat"])
	isArray := false
	if t, _ := document.String(param["type"]); t == "array" {
		isArray = true
	}
	u.applyCollectionFormat(out, in, format, isArray, path)
	return out
}

// applyCollectionFormat maps collectionFormat to style and explode.
func (u *twoToThree) applyCollectionFormat(out map[string]any, in, format string, isArray bool, path string) {
	queryLike := in == "query" || in == "cookie"
	switch format {
	case "":
		// 2.0 arrays default to csv; 3.0 query arrays default to exploded form
		if isArray && queryLike {
			out["style"] = "form"
			out["explode"] = false
		}
	case "csv":
		if queryLike {
			out["style"] = "form"
			out["explode"] = false
		} else {
			out["style"] = "simple"
		}
	case "ssv":
		u.delimitedStyle(out, in, "spaceDelimited", format, path)
	case "pipes":
		u.delimitedStyle(out, in, "pipeDelimited", format, path)
	case "multi":
		if queryLike {
			out["style"] = "form"
			out["explode"] = true
		} else {
			u.tr.addf(childPath(path, "collectionFormat"), SeverityWarning, "collectionFormat multi is only valid for query parameters, not %q; dropped", in)
		}
	case "tsv":
		u.tr.addWithContext(childPath(path, "collectionFormat"),
			"collectionFormat tsv has no OpenAPI 3.0 equivalent",
			"The parameter keeps its default style")
	default:
		u.tr.addf(childPath(path, "collectionFormat"), SeverityWarning, "Unknown collectionFormat %q; dropped", format)
	}
}

func (u *twoToThree) delimitedStyle(out map[string]any, in, style, format, path string) {
	if in != "query" {
		u.tr.addf(childPath(path, "collectionFormat"), SeverityWarning,
			"collectionFormat %s maps to style %s, which only applies to query parameters; dropped", format, style)
		return
	}
	out["style"] = style
}

// itemsToSchema builds a schema from the type keywords of a 2.0 parameter,
// header or items object.
func (u *twoToThree) itemsToSchema(src map[string]any, path string) map[string]any {
	schema := make(map[string]any)
	for _, k := range schemaFields {
		if v, ok := src[k]; ok {
			schema[k] = v
		}
	}

	if items, ok := document.Map(src["items"]); ok {
		itemsPath := childPath(path, "items")
		if _, ok := items["$ref"]; ok {
			schema["items"] = items
		} else {
			converted := u.itemsToSchema(items, itemsPath)
			document.CopyExtensions(converted, items)
			schema["items"] = converted
		}
		if cf, _ := document.String(items["collectionFormat"]); cf != "" && cf != "csv" {
			u.tr.addf(childPath(itemsPath, "collectionFormat"), SeverityWarning,
				"Nested collectionFormat %q cannot be expressed in OpenAPI 3.0; dropped", cf)
		}
	}
	return schema
}

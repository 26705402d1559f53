package upgrader

import (
	"slices"

	"github.com/erraggy/oasupgrade/document"
)

const (
	mediaTypeFormURLEncoded = "application/x-www-form-urlencoded"
	mediaTypeMultipart      = "multipart/form-data"
)

// bodyToRequestBody converts an in: body parameter to a request body with
// one media type per consumed content type.
func bodyToRequestBody(param map[string]any, consumes []string) map[string]any {
	body := make(map[string]any)
	if v, ok := param["description"]; ok {
		body["description"] = v
	}
	if v, ok := param["required"]; ok {
		body["required"] = v
	}
	document.CopyExtensions(body, param)

	schema, hasSchema := param["schema"]
	content := make(map[string]any, len(consumes))
	for _, ct := range consumes {
		mt := make(map[string]any)
		if hasSchema {
			mt["schema"] = document.DeepCopy(schema)
		}
		content[ct] = mt
	}
	body["content"] = content
	return body
}

// formRequestBody folds formData parameters into one object schema.
func (u *twoToThree) formRequestBody(forms []map[string]any, consumes []string, path string) map[string]any {
	properties := make(map[string]any, len(forms))
	encoding := make(map[string]any)
	var required []any
	hasFile := false

	for _, form := range forms {
		name, _ := document.String(form["name"])
		if name == "" {
			u.tr.add(path, "formData parameter without a name; dropped", SeverityWarning)
			continue
		}
		propPath := childPath(childPath(path, "properties"), name)

		var prop map[string]any
		if t, _ := document.String(form["type"]); t == "file" {
			hasFile = true
			prop = map[string]any{"type": "string", "format": "binary"}
		} else {
			prop = u.itemsToSchema(form, propPath)
		}
		if v, ok := form["description"]; ok {
			prop["description"] = v
		}
		document.CopyExtensions(prop, form)
		properties[name] = prop

		if req, _ := document.Bool(form["required"]); req {
			required = append(required, name)
		}

		if cf, _ := document.String(form["collectionFormat"]); cf != "" {
			enc := make(map[string]any)
			u.applyCollectionFormat(enc, "query", cf, true, propPath)
			if len(enc) > 0 {
				encoding[name] = enc
			}
		}
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	types := formContentTypes(consumes)
	if len(types) == 0 {
		ct := mediaTypeFormURLEncoded
		if hasFile {
			ct = mediaTypeMultipart
		}
		types = []string{ct}
		u.tr.addf(path, SeverityInfo, "No form content type in consumes; using %s", ct)
	} else if hasFile && !slices.Contains(types, mediaTypeMultipart) {
		u.tr.addWithContext(path, "File upload declared without multipart/form-data in consumes",
			"The file property was kept as a binary string")
	}

	content := make(map[string]any, len(types))
	for _, ct := range types {
		mt := map[string]any{"schema": document.DeepCopy(schema)}
		if ct == mediaTypeFormURLEncoded && len(encoding) > 0 {
			mt["encoding"] = document.DeepCopy(encoding)
		}
		content[ct] = mt
	}

	body := map[string]any{"content": content}
	if len(required) > 0 {
		body["required"] = true
	}
	return body
}

// formContentTypes returns the form media types among consumes.
func formContentTypes(consumes []string) []string {
	var out []string
	for _, ct := range consumes {
		if ct == mediaTypeFormURLEncoded || ct == mediaTypeMultipart {
			out = append(out, ct)
		}
	}
	return out
}

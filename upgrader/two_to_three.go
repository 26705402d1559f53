package upgrader

import (
	"github.com/erraggy/oasupgrade/document"
)

// defaultMediaType is used when neither the operation nor the document
// declares consumes or produces.
const defaultMediaType = "application/json"

// FromTwoToThree upgrades a Swagger 2.0 document to OpenAPI 3.0 in place and
// returns it together with the issues found along the way. Documents that
// are not Swagger 2.0 are returned unchanged with no issues.
func FromTwoToThree(doc document.Document) (document.Document, []Issue) {
	if doc == nil {
		return doc, nil
	}
	if v, _ := document.DetectVersion(doc); v != document.VersionSwagger20 {
		return doc, nil
	}

	u := &twoToThree{
		doc:        doc,
		tr:         &tracker{},
		consumes:   document.StringSlice(doc["consumes"]),
		produces:   document.StringSlice(doc["produces"]),
		bodyParams: make(map[string]bool),
		formParams: make(map[string]map[string]any),
	}
	u.run()
	return doc, u.tr.issues
}

// twoToThree holds the document-wide state of a 2.0 -> 3.0 upgrade.
type twoToThree struct {
	doc document.Document
	tr  *tracker

	// root consumes/produces, used when an operation declares none
	consumes []string
	produces []string

	// names of global body parameters, now components.requestBodies
	bodyParams map[string]bool
	// global formData parameters, inlined into each referencing form body
	formParams map[string]map[string]any

	host     string
	basePath string
}

func (u *twoToThree) run() {
	doc := u.doc
	delete(doc, "swagger")
	doc["openapi"] = document.OpenAPI30Latest

	u.convertServers()
	u.convertComponents()

	if paths, ok := document.Map(doc["paths"]); ok {
		for _, p := range document.SortedKeys(paths) {
			if document.IsExtension(p) {
				continue
			}
			u.convertPathItem(paths[p], childPath("paths", p))
		}
	}

	delete(doc, "consumes")
	delete(doc, "produces")

	walkRefs(doc, false, u.rewriteRef)

	w := &docWalker{schema: u.fixSchema, tr: u.tr}
	w.walkDocument(doc)
}

// rewriteRef maps 2.0 references to their 3.0 locations. References to
// global body parameters point at the request body they became.
func (u *twoToThree) rewriteRef(ref string) string {
	if name, ok := localRefName(ref, "#/parameters/"); ok && u.bodyParams[name] {
		return "#/components/requestBodies/" + refPointerToken(name)
	}
	return rewriteRefTwoToThree(ref)
}

// convertComponents moves definitions, parameters, responses and
// securityDefinitions under components.
func (u *twoToThree) convertComponents() {
	doc := u.doc

	if defs, ok := document.Map(doc["definitions"]); ok {
		schemas := document.EnsureMap(u.components(), "schemas")
		for name, schema := range defs {
			schemas[name] = schema
		}
	}
	delete(doc, "definitions")

	if params, ok := document.Map(doc["parameters"]); ok {
		for _, name := range document.SortedKeys(params) {
			u.convertGlobalParameter(name, params[name])
		}
	}
	delete(doc, "parameters")

	if responses, ok := document.Map(doc["responses"]); ok {
		out := document.EnsureMap(u.components(), "responses")
		for _, name := range document.SortedKeys(responses) {
			out[name] = u.convertResponse(responses[name], u.producesOr(nil), childPath("responses", name))
		}
	}
	delete(doc, "responses")

	if defs, ok := document.Map(doc["securityDefinitions"]); ok {
		out := document.EnsureMap(u.components(), "securitySchemes")
		for _, name := range document.SortedKeys(defs) {
			out[name] = u.convertSecurityScheme(defs[name], childPath("securityDefinitions", name))
		}
	}
	delete(doc, "securityDefinitions")
}

// components returns the components object, creating it on first use.
func (u *twoToThree) components() map[string]any {
	return document.EnsureMap(u.doc, "components")
}

func (u *twoToThree) convertGlobalParameter(name string, v any) {
	path := childPath("parameters", name)
	param, ok := document.Map(v)
	if !ok {
		u.tr.add(path, "Parameter is not an object; dropped", SeverityWarning)
		return
	}

	in, _ := document.String(param["in"])
	switch in {
	case "body":
		u.bodyParams[name] = true
		bodies := document.EnsureMap(u.components(), "requestBodies")
		bodies[name] = bodyToRequestBody(param, u.consumesOr(nil))
	case "formData":
		u.formParams[name] = param
		u.tr.addf(path, SeverityInfo, "Global formData parameter %q has no 3.0 component equivalent; it is inlined into each referencing request body", name)
	default:
		params := document.EnsureMap(u.components(), "parameters")
		params[name] = u.convertParameter(param, path)
	}
}

// convertPathItem converts the parameters and operations of one path item.
func (u *twoToThree) convertPathItem(v any, path string) {
	item, ok := document.Map(v)
	if !ok {
		return
	}

	shared := u.splitParameters(item["parameters"], childPath(path, "parameters"))
	setParameters(item, shared.params)

	for _, method := range swaggerMethods {
		op, ok := document.Map(item[method])
		if !ok {
			continue
		}
		u.convertOperation(op, shared, childPath(path, method))
	}
}

func (u *twoToThree) convertOperation(op map[string]any, shared paramSplit, path string) {
	consumes := u.consumesOr(document.StringSlice(op["consumes"]))
	produces := u.producesOr(document.StringSlice(op["produces"]))
	delete(op, "consumes")
	delete(op, "produces")

	own := u.splitParameters(op["parameters"], childPath(path, "parameters"))
	setParameters(op, own.params)

	split := own
	if !own.hasBody() {
		split.body = shared.body
		split.forms = shared.forms
	}

	if split.body != nil && len(split.forms) > 0 {
		u.tr.addWithContext(childPath(path, "parameters"),
			"Operation has both body and formData parameters",
			"The body parameter was used for the request body; formData parameters were dropped")
	}
	switch {
	case split.body != nil:
		op["requestBody"] = split.body.requestBody(consumes)
	case len(split.forms) > 0:
		op["requestBody"] = u.formRequestBody(split.forms, consumes, childPath(path, "requestBody"))
	}

	if responses, ok := document.Map(op["responses"]); ok {
		for _, code := range document.SortedKeys(responses) {
			if document.IsExtension(code) {
				continue
			}
			responses[code] = u.convertResponse(responses[code], produces, childPath(childPath(path, "responses"), code))
		}
	}

	u.convertOperationSchemes(op, path)
}

func (u *twoToThree) consumesOr(own []string) []string {
	if len(own) > 0 {
		return own
	}
	if len(u.consumes) > 0 {
		return u.consumes
	}
	return []string{defaultMediaType}
}

func (u *twoToThree) producesOr(own []string) []string {
	if len(own) > 0 {
		return own
	}
	if len(u.produces) > 0 {
		return u.produces
	}
	return []string{defaultMediaType}
}

// setParameters replaces the parameter list of a path item or operation,
// removing the key when nothing is left.
func setParameters(target map[string]any, params []any) {
	if len(params) == 0 {
		delete(target, "parameters")
		return
	}
	target["parameters"] = params
}

// fixSchema applies the 2.0 -> 3.0 schema keyword changes to one schema.
func (u *twoToThree) fixSchema(schema map[string]any, path string) {
	if t, _ := document.String(schema["type"]); t == "file" {
		schema["type"] = "string"
		schema["format"] = "binary"
	}

	if v, ok := schema["x-nullable"]; ok {
		if b, ok := document.Bool(v); ok {
			if _, exists := schema["nullable"]; !exists {
				schema["nullable"] = b
			}
			delete(schema, "x-nullable")
		} else {
			u.tr.add(childPath(path, "x-nullable"), "x-nullable is not a boolean; left unchanged", SeverityWarning)
		}
	}

	if d, ok := document.String(schema["discriminator"]); ok {
		schema["discriminator"] = map[string]any{"propertyName": d}
	}
}

// This file implements $ref rewriting from Swagger 2.0 locations to their
// OpenAPI 3.x component equivalents.

package upgrader

import (
	"strings"

	"github.com/erraggy/oasupgrade/document"
)

// refMapping defines a fragment prefix substitution for $ref rewriting.
type refMapping struct {
	from string
	to   string
}

// twoToThreeMappings maps Swagger 2.0 $ref prefixes to their OpenAPI 3.x equivalents.
var twoToThreeMappings = []refMapping{
	{"#/definitions/", "#/components/schemas/"},
	{"#/parameters/", "#/components/parameters/"},
	{"#/responses/", "#/components/responses/"},
	{"#/securityDefinitions/", "#/components/securitySchemes/"},
}

// rewriteRefTwoToThree rewrites the fragment of a $ref. Local references
// ("#/definitions/Pet") and the fragments of external references
// ("common.yaml#/definitions/Pet") are both rewritten; references without a
// known fragment prefix are returned unchanged.
func rewriteRefTwoToThree(ref string) string {
	idx := strings.Index(ref, "#/")
	if idx < 0 {
		return ref
	}
	location, fragment := ref[:idx], ref[idx:]

	for _, m := range twoToThreeMappings {
		if strings.HasPrefix(fragment, m.from) {
			return location + m.to + fragment[len(m.from):]
		}
	}
	return ref
}

// localRefName returns the unescaped component name of a local reference
// with the given prefix, e.g. localRefName("#/parameters/a~1b", "#/parameters/")
// returns "a/b".
func localRefName(ref, prefix string) (string, bool) {
	if !strings.HasPrefix(ref, prefix) {
		return "", false
	}
	name := ref[len(prefix):]
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	name = strings.ReplaceAll(name, "~1", "/")
	name = strings.ReplaceAll(name, "~0", "~")
	return name, true
}

// refPointerToken escapes a component name for use in a JSON pointer.
func refPointerToken(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	return strings.ReplaceAll(name, "/", "~1")
}

// refRewriter is a function that rewrites a $ref string to a different format.
type refRewriter func(ref string) string

// literalKeys hold instance data rather than specification objects; a "$ref"
// key found beneath them is data and must not be touched.
var literalKeys = map[string]bool{
	"example":  true,
	"examples": true,
	"default":  true,
	"enum":     true,
	"const":    true,
}

// namedMapKeys hold maps whose keys are user-chosen names (property names,
// component names, media types). Inside such a map a child called "default"
// or "example" is a regular object and is walked.
var namedMapKeys = map[string]bool{
	"properties":          true,
	"patternProperties":   true,
	"definitions":         true,
	"$defs":               true,
	"dependentSchemas":    true,
	"schemas":             true,
	"parameters":          true,
	"responses":           true,
	"requestBodies":       true,
	"headers":             true,
	"securitySchemes":     true,
	"securityDefinitions": true,
	"paths":               true,
	"webhooks":            true,
	"callbacks":           true,
	"links":               true,
	"content":             true,
	"encoding":            true,
}

// walkRefs rewrites every "$ref" string in the tree rooted at v.
// named reports whether v is the value of a named map.
func walkRefs(v any, named bool, rewrite refRewriter) {
	switch t := v.(type) {
	case map[string]any:
		if !named {
			if ref, ok := t["$ref"].(string); ok {
				t["$ref"] = rewrite(ref)
			}
		}
		for k, child := range t {
			if !named && (literalKeys[k] || document.IsExtension(k)) {
				continue
			}
			walkRefs(child, !named && namedMapKeys[k], rewrite)
		}
	case []any:
		for _, child := range t {
			walkRefs(child, false, rewrite)
		}
	}
}

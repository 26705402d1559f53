package upgrader

import (
	"github.com/erraggy/oasupgrade/document"
)

// oauthFlow describes how a 2.0 oauth2 flow maps to a 3.0 flows entry.
type oauthFlow struct {
	name         string
	authorizeURL bool
	tokenURL     bool
}

// oauthFlows maps 2.0 flow names to their 3.0 equivalents.
var oauthFlows = map[string]oauthFlow{
	"implicit":    {name: "implicit", authorizeURL: true},
	"password":    {name: "password", tokenURL: true},
	"application": {name: "clientCredentials", tokenURL: true},
	"accessCode":  {name: "authorizationCode", authorizeURL: true, tokenURL: true},
}

// convertSecurityScheme converts one 2.0 security definition.
func (u *twoToThree) convertSecurityScheme(v any, path string) any {
	def, ok := document.Map(v)
	if !ok {
		u.tr.add(path, "Security definition is not an object; left unchanged", SeverityWarning)
		return v
	}

	out := make(map[string]any)
	if d, ok := def["description"]; ok {
		out["description"] = d
	}
	document.CopyExtensions(out, def)

	typ, _ := document.String(def["type"])
	switch typ {
	case "basic":
		out["type"] = "http"
		out["scheme"] = "basic"
	case "apiKey":
		out["type"] = "apiKey"
		for _, k := range []string{"name", "in"} {
			if v, ok := def[k]; ok {
				out[k] = v
			}
		}
	case "oauth2":
		out["type"] = "oauth2"
		flow, _ := document.String(def["flow"])
		mapping, ok := oauthFlows[flow]
		if !ok {
			u.tr.addWithContext(childPath(path, "flow"),
				"Unknown OAuth2 flow: "+flow,
				"The scheme was kept without flows")
			break
		}
		f := make(map[string]any)
		if v, ok := def["authorizationUrl"]; ok && mapping.authorizeURL {
			f["authorizationUrl"] = v
		}
		if v, ok := def["tokenUrl"]; ok && mapping.tokenURL {
			f["tokenUrl"] = v
		}
		if scopes, ok := document.Map(def["scopes"]); ok {
			f["scopes"] = scopes
		} else {
			f["scopes"] = map[string]any{}
		}
		out["flows"] = map[string]any{mapping.name: f}
	default:
		u.tr.addf(childPath(path, "type"), SeverityCritical, "Unsupported security scheme type %q; left unchanged", typ)
		return def
	}
	return out
}

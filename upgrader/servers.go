// This file implements server conversion from Swagger 2.0 host/basePath/schemes
// to the OpenAPI 3.x servers array.

package upgrader

import (
	"strings"

	"github.com/erraggy/oasupgrade/document"
)

// defaultScheme is assumed when a 2.0 document with a host lists no schemes.
const defaultScheme = "http"

// convertServers builds the servers array and removes host, basePath and
// schemes from the root.
func (u *twoToThree) convertServers() {
	doc := u.doc
	host, _ := document.String(doc["host"])
	basePath, _ := document.String(doc["basePath"])
	schemes := document.StringSlice(doc["schemes"])
	delete(doc, "host")
	delete(doc, "basePath")
	delete(doc, "schemes")

	u.host = strings.TrimSuffix(host, "/")
	u.basePath = normalizeBasePath(basePath)

	if _, exists := doc["servers"]; exists {
		return
	}

	if u.host == "" && u.basePath == "" {
		u.tr.add("servers", "No host or basePath in the 2.0 document; servers omitted", SeverityInfo)
		return
	}

	if u.host == "" {
		doc["servers"] = []any{map[string]any{"url": u.basePath}}
		return
	}

	if len(schemes) == 0 {
		schemes = []string{defaultScheme}
		u.tr.addf("servers", SeverityInfo, "No schemes defined; using %q for the server URL", defaultScheme)
	}
	doc["servers"] = u.serverList(schemes)
}

// convertOperationSchemes turns an operation-level schemes override into
// operation servers.
func (u *twoToThree) convertOperationSchemes(op map[string]any, path string) {
	v, ok := op["schemes"]
	if !ok {
		return
	}
	delete(op, "schemes")

	schemes := document.StringSlice(v)
	if len(schemes) == 0 {
		return
	}
	if u.host == "" {
		u.tr.add(childPath(path, "schemes"), "Operation schemes dropped; the document has no host to build server URLs from", SeverityWarning)
		return
	}
	op["servers"] = u.serverList(schemes)
	u.tr.add(childPath(path, "servers"), "Operation schemes converted to operation servers", SeverityInfo)
}

func (u *twoToThree) serverList(schemes []string) []any {
	servers := make([]any, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, map[string]any{
			"url": scheme + "://" + u.host + u.basePath,
		})
	}
	return servers
}

// normalizeBasePath ensures a non-empty basePath starts with a slash.
func normalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || strings.HasPrefix(basePath, "/") {
		return basePath
	}
	return "/" + basePath
}

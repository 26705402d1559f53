package upgrader

import (
	"testing"

	"github.com/erraggy/oasupgrade/document"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, path string) document.Document {
	t.Helper()
	loaded, err := document.Load(path)
	require.NoError(t, err)
	return loaded.Document
}

// dig walks a chain of object keys and fails the test if one is missing.
func dig(t *testing.T, v any, keys ...string) any {
	t.Helper()
	for _, k := range keys {
		m, ok := document.Map(v)
		require.Truef(t, ok, "expected an object before key %q", k)
		v, ok = m[k]
		require.Truef(t, ok, "missing key %q", k)
	}
	return v
}

func assertTree(t *testing.T, want, got any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTwoToThreePetstore(t *testing.T) {
	doc := loadFixture(t, "testdata/petstore-2.0.yaml")

	out, issues := FromTwoToThree(doc)
	require.NotNil(t, out)
	assert.Empty(t, issues)

	assert.Equal(t, "3.0.4", out["openapi"])
	for _, key := range []string{"swagger", "host", "basePath", "schemes", "consumes", "produces",
		"definitions", "parameters", "responses", "securityDefinitions"} {
		assert.NotContains(t, out, key)
	}
	assert.Equal(t, "handwritten", out["x-generator"])
	assert.Equal(t, []any{map[string]any{"api_key": []any{}}}, out["security"])

	assertTree(t, []any{
		map[string]any{"url": "https://petstore.example.com/v1"},
		map[string]any{"url": "http://petstore.example.com/v1"},
	}, out["servers"])

	t.Run("components", func(t *testing.T) {
		pet := dig(t, out, "components", "schemas", "Pet")
		assert.Equal(t, map[string]any{"propertyName": "petType"}, dig(t, pet, "discriminator"))
		assertTree(t, map[string]any{"type": "string", "nullable": true}, dig(t, pet, "properties", "tag"))
		assert.Equal(t, "#/components/schemas/Owner", dig(t, pet, "properties", "owner", "$ref"))
		assert.Equal(t, "#/components/schemas/Pet", dig(t, out, "components", "schemas", "Pets", "items", "$ref"))

		assertTree(t, map[string]any{
			"name":        "limit",
			"in":          "query",
			"description": "How many items to return at one time",
			"schema": map[string]any{
				"type":    "integer",
				"format":  "int32",
				"maximum": 100,
			},
		}, dig(t, out, "components", "parameters", "limitParam"))

		assertTree(t, map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Pet"},
				},
			},
		}, dig(t, out, "components", "requestBodies", "petBody"))
		assert.NotContains(t, dig(t, out, "components", "parameters"), "petBody")

		assertTree(t, map[string]any{
			"description": "unexpected error",
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/Error"},
				},
			},
		}, dig(t, out, "components", "responses", "Error"))

		assertTree(t, map[string]any{
			"type": "oauth2",
			"flows": map[string]any{
				"implicit": map[string]any{
					"authorizationUrl": "https://petstore.example.com/oauth/dialog",
					"scopes": map[string]any{
						"write:pets": "modify pets in your account",
						"read:pets":  "read your pets",
					},
				},
			},
		}, dig(t, out, "components", "securitySchemes", "petstore_auth"))
	})

	t.Run("list pets", func(t *testing.T) {
		get := dig(t, out, "paths", "/pets", "get")
		assertTree(t, []any{
			map[string]any{"$ref": "#/components/parameters/limitParam"},
			map[string]any{
				"name":    "tags",
				"in":      "query",
				"style":   "form",
				"explode": true,
				"schema": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		}, dig(t, get, "parameters"))

		ok := dig(t, get, "responses", "200")
		assertTree(t, map[string]any{
			"description": "A link to the next page of responses",
			"schema":      map[string]any{"type": "string"},
		}, dig(t, ok, "headers", "x-next"))
		assertTree(t, map[string]any{
			"schema":  map[string]any{"$ref": "#/components/schemas/Pets"},
			"example": []any{map[string]any{"id": 1, "name": "Rex"}},
		}, dig(t, ok, "content", "application/json"))
		assert.NotContains(t, ok, "schema")
		assert.NotContains(t, ok, "examples")

		assert.Equal(t, "#/components/responses/Error", dig(t, get, "responses", "default", "$ref"))
	})

	t.Run("create pet uses the shared request body", func(t *testing.T) {
		post := dig(t, out, "paths", "/pets", "post")
		assert.Equal(t, map[string]any{"$ref": "#/components/requestBodies/petBody"}, dig(t, post, "requestBody"))
		assert.NotContains(t, post, "parameters")
		assertTree(t, map[string]any{"description": "Null response"}, dig(t, post, "responses", "201"))
	})

	t.Run("form update", func(t *testing.T) {
		item := dig(t, out, "paths", "/pets/{petId}")
		assertTree(t, []any{
			map[string]any{
				"name":     "petId",
				"in":       "path",
				"required": true,
				"schema":   map[string]any{"type": "string"},
			},
		}, dig(t, item, "parameters"))

		put := dig(t, item, "put")
		assert.NotContains(t, put, "consumes")
		assertTree(t, map[string]any{
			"required": true,
			"content": map[string]any{
				"application/x-www-form-urlencoded": map[string]any{
					"schema": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"name":   map[string]any{"type": "string", "description": "Updated name of the pet"},
							"status": map[string]any{"type": "string"},
						},
						"required": []any{"name"},
					},
				},
			},
		}, dig(t, put, "requestBody"))
	})

	t.Run("file upload", func(t *testing.T) {
		post := dig(t, out, "paths", "/pets/{petId}/photo", "post")
		assertTree(t, map[string]any{
			"type": "object",
			"properties": map[string]any{
				"file": map[string]any{"type": "string", "format": "binary"},
			},
			"required": []any{"file"},
		}, dig(t, post, "requestBody", "content", "multipart/form-data", "schema"))
		assert.Len(t, dig(t, post, "parameters"), 1)
		assertTree(t, map[string]any{"type": "string", "format": "binary"},
			dig(t, post, "responses", "200", "content", "image/png", "schema"))
	})
}

func TestFromTwoToThreeIgnoresOtherVersions(t *testing.T) {
	doc := document.Document{"openapi": "3.0.3", "definitions": map[string]any{}}
	before := document.CopyDocument(doc)

	out, issues := FromTwoToThree(doc)
	assert.Empty(t, issues)
	assertTree(t, before, out)

	out, issues = FromTwoToThree(nil)
	assert.Nil(t, out)
	assert.Empty(t, issues)
}

func TestFromTwoToThreeIsIdempotent(t *testing.T) {
	doc := loadFixture(t, "testdata/petstore-2.0.yaml")
	once, _ := FromTwoToThree(doc)
	snapshot := document.CopyDocument(once)

	twice, issues := FromTwoToThree(once)
	assert.Empty(t, issues)
	assertTree(t, snapshot, twice)
}

func TestConvertServers(t *testing.T) {
	tests := []struct {
		name      string
		doc       document.Document
		want      any
		wantInfos int
	}{
		{
			name:      "no host or basePath",
			doc:       document.Document{},
			want:      nil,
			wantInfos: 1,
		},
		{
			name:      "host without schemes defaults to http",
			doc:       document.Document{"host": "api.example.com"},
			want:      []any{map[string]any{"url": "http://api.example.com"}},
			wantInfos: 1,
		},
		{
			name: "basePath only",
			doc:  document.Document{"basePath": "v2"},
			want: []any{map[string]any{"url": "/v2"}},
		},
		{
			name: "multiple schemes",
			doc: document.Document{
				"host":     "api.example.com",
				"basePath": "/v2",
				"schemes":  []any{"https", "wss"},
			},
			want: []any{
				map[string]any{"url": "https://api.example.com/v2"},
				map[string]any{"url": "wss://api.example.com/v2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.doc["swagger"] = "2.0"
			out, issues := FromTwoToThree(tt.doc)

			assertTree(t, tt.want, out["servers"])
			assert.NotContains(t, out, "host")
			assert.NotContains(t, out, "basePath")
			assert.NotContains(t, out, "schemes")
			assert.Equal(t, tt.wantInfos, countSeverity(issues, SeverityInfo))
		})
	}
}

func TestOperationSchemesBecomeServers(t *testing.T) {
	doc := document.Document{
		"swagger": "2.0",
		"host":    "api.example.com",
		"schemes": []any{"https"},
		"paths": map[string]any{
			"/ws": map[string]any{
				"get": map[string]any{
					"schemes":   []any{"wss"},
					"responses": map[string]any{},
				},
			},
		},
	}

	out, issues := FromTwoToThree(doc)
	get := dig(t, out, "paths", "/ws", "get")
	assert.NotContains(t, get, "schemes")
	assertTree(t, []any{map[string]any{"url": "wss://api.example.com"}}, dig(t, get, "servers"))
	assert.Equal(t, 1, countSeverity(issues, SeverityInfo))
}

// upgradeParam runs a single query/path/header parameter through the
// upgrade and returns its converted form.
func upgradeParam(t *testing.T, param map[string]any) (map[string]any, []Issue) {
	t.Helper()
	doc := document.Document{
		"swagger": "2.0",
		"paths": map[string]any{
			"/things": map[string]any{
				"get": map[string]any{
					"parameters": []any{param},
					"responses":  map[string]any{},
				},
			},
		},
	}
	out, issues := FromTwoToThree(doc)
	params := dig(t, out, "paths", "/things", "get", "parameters").([]any)
	require.Len(t, params, 1)
	return params[0].(map[string]any), withoutServerNotes(issues)
}

func TestCollectionFormat(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		format      string
		wantStyle   any
		wantExplode any
		wantWarning bool
	}{
		{name: "csv query", in: "query", format: "csv", wantStyle: "form", wantExplode: false},
		{name: "csv header", in: "header", format: "csv", wantStyle: "simple"},
		{name: "csv path", in: "path", format: "csv", wantStyle: "simple"},
		{name: "ssv query", in: "query", format: "ssv", wantStyle: "spaceDelimited"},
		{name: "pipes query", in: "query", format: "pipes", wantStyle: "pipeDelimited"},
		{name: "multi query", in: "query", format: "multi", wantStyle: "form", wantExplode: true},
		{name: "default query array", in: "query", format: "", wantStyle: "form", wantExplode: false},
		{name: "default path array", in: "path", format: ""},
		{name: "ssv header", in: "header", format: "ssv", wantWarning: true},
		{name: "multi path", in: "path", format: "multi", wantWarning: true},
		{name: "tsv", in: "query", format: "tsv", wantWarning: true},
		{name: "unknown", in: "query", format: "bogus", wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			param := map[string]any{
				"name":  "ids",
				"in":    tt.in,
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			}
			if tt.format != "" {
				param["collectionFormat"] = tt.format
			}

			got, issues := upgradeParam(t, param)
			assert.NotContains(t, got, "collectionFormat")
			assert.NotContains(t, got, "type")
			assert.Equal(t, tt.wantStyle, got["style"])
			assert.Equal(t, tt.wantExplode, got["explode"])
			assertTree(t, map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			}, got["schema"])

			if tt.wantWarning {
				require.Len(t, issues, 1)
				assert.Equal(t, SeverityWarning, issues[0].Severity)
				assert.Equal(t, "paths./things.get.parameters[0].collectionFormat", issues[0].Path)
			} else {
				assert.Empty(t, issues)
			}
		})
	}
}

func TestParameterKeepsExtensionsAndConstraints(t *testing.T) {
	got, issues := upgradeParam(t, map[string]any{
		"name":            "q",
		"in":              "query",
		"type":            "string",
		"minLength":       3,
		"pattern":         "^[a-z]+$",
		"enum":            []any{"abc", "def"},
		"default":         "abc",
		"allowEmptyValue": true,
		"x-internal":      true,
	})
	assert.Empty(t, issues)
	assertTree(t, map[string]any{
		"name":            "q",
		"in":              "query",
		"allowEmptyValue": true,
		"x-internal":      true,
		"schema": map[string]any{
			"type":      "string",
			"minLength": 3,
			"pattern":   "^[a-z]+$",
			"enum":      []any{"abc", "def"},
			"default":   "abc",
		},
	}, got)
}

func TestRequestBodyConflicts(t *testing.T) {
	t.Run("two body parameters", func(t *testing.T) {
		doc := document.Document{
			"swagger": "2.0",
			"paths": map[string]any{
				"/a": map[string]any{
					"post": map[string]any{
						"parameters": []any{
							map[string]any{"name": "first", "in": "body", "schema": map[string]any{"type": "string"}},
							map[string]any{"name": "second", "in": "body", "schema": map[string]any{"type": "integer"}},
						},
						"responses": map[string]any{},
					},
				},
			},
		}
		out, issues := FromTwoToThree(doc)
		issues = withoutServerNotes(issues)

		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.Equal(t, "paths./a.post.parameters[1]", issues[0].Path)
		assert.Equal(t, "string", dig(t, out, "paths", "/a", "post", "requestBody", "content", "application/json", "schema", "type"))
	})

	t.Run("body and formData", func(t *testing.T) {
		doc := document.Document{
			"swagger": "2.0",
			"paths": map[string]any{
				"/a": map[string]any{
					"post": map[string]any{
						"parameters": []any{
							map[string]any{"name": "f", "in": "formData", "type": "string"},
							map[string]any{"name": "b", "in": "body", "schema": map[string]any{"type": "object"}},
						},
						"responses": map[string]any{},
					},
				},
			},
		}
		out, issues := FromTwoToThree(doc)
		issues = withoutServerNotes(issues)

		require.Len(t, issues, 1)
		assert.Equal(t, SeverityWarning, issues[0].Severity)
		assert.NotEmpty(t, issues[0].Context)
		content := dig(t, out, "paths", "/a", "post", "requestBody", "content")
		assert.Contains(t, content, "application/json")
		assert.NotContains(t, content, mediaTypeFormURLEncoded)
	})
}

func TestPathLevelBodyIsInherited(t *testing.T) {
	doc := document.Document{
		"swagger":  "2.0",
		"consumes": []any{"application/json", "application/xml"},
		"paths": map[string]any{
			"/a": map[string]any{
				"parameters": []any{
					map[string]any{"name": "payload", "in": "body", "required": true, "schema": map[string]any{"type": "object"}},
					map[string]any{"name": "trace", "in": "header", "type": "string"},
				},
				"put":  map[string]any{"responses": map[string]any{}},
				"post": map[string]any{"responses": map[string]any{}},
			},
		},
	}

	out, _ := FromTwoToThree(doc)
	item := dig(t, out, "paths", "/a")
	params := dig(t, item, "parameters").([]any)
	require.Len(t, params, 1)
	assert.Equal(t, "trace", dig(t, params[0], "name"))

	for _, method := range []string{"put", "post"} {
		body := dig(t, item, method, "requestBody")
		assert.Equal(t, true, dig(t, body, "required"))
		assert.Len(t, dig(t, body, "content"), 2)
	}

	// Each operation owns its schema copies.
	putSchema := dig(t, item, "put", "requestBody", "content", "application/json", "schema").(map[string]any)
	putSchema["mutated"] = true
	assert.NotContains(t, dig(t, item, "post", "requestBody", "content", "application/json", "schema"), "mutated")
}

func TestGlobalFormDataParameterIsInlined(t *testing.T) {
	doc := document.Document{
		"swagger": "2.0",
		"parameters": map[string]any{
			"upload": map[string]any{"name": "file", "in": "formData", "type": "file", "required": true},
		},
		"paths": map[string]any{
			"/files": map[string]any{
				"post": map[string]any{
					"parameters": []any{map[string]any{"$ref": "#/parameters/upload"}},
					"responses":  map[string]any{},
				},
			},
		},
	}

	out, issues := FromTwoToThree(doc)
	assert.NotContains(t, out, "parameters")
	assert.NotContains(t, out, "components")

	post := dig(t, out, "paths", "/files", "post")
	assert.NotContains(t, post, "parameters")
	assertTree(t, map[string]any{
		"required": true,
		"content": map[string]any{
			mediaTypeMultipart: map[string]any{
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"file": map[string]any{"type": "string", "format": "binary"},
					},
					"required": []any{"file"},
				},
			},
		},
	}, dig(t, post, "requestBody"))

	issues = withoutServerNotes(issues)
	require.Len(t, issues, 2)
	assert.Equal(t, "parameters.upload", issues[0].Path)
	assert.Equal(t, "paths./files.post.requestBody", issues[1].Path)
	assert.Equal(t, SeverityInfo, issues[1].Severity)
}

func TestGlobalResponseUsesDefaultMediaType(t *testing.T) {
	doc := document.Document{
		"swagger": "2.0",
		"definitions": map[string]any{
			"Err": map[string]any{"type": "object"},
		},
		"responses": map[string]any{
			"NotFound": map[string]any{
				"description": "nf",
				"schema":      map[string]any{"$ref": "#/definitions/Err"},
			},
		},
		"paths": map[string]any{},
	}

	out, _ := FromTwoToThree(doc)
	assert.NotContains(t, out, "responses")
	assertTree(t, map[string]any{
		"description": "nf",
		"content": map[string]any{
			defaultMediaType: map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/Err"},
			},
		},
	}, dig(t, out, "components", "responses", "NotFound"))
}

func TestFormCollectionFormatEncoding(t *testing.T) {
	doc := document.Document{
		"swagger":  "2.0",
		"consumes": []any{mediaTypeFormURLEncoded},
		"paths": map[string]any{
			"/a": map[string]any{
				"post": map[string]any{
					"parameters": []any{
						map[string]any{
							"name":             "tags",
							"in":               "formData",
							"type":             "array",
							"items":            map[string]any{"type": "string"},
							"collectionFormat": "multi",
						},
					},
					"responses": map[string]any{},
				},
			},
		},
	}

	out, _ := FromTwoToThree(doc)
	mt := dig(t, out, "paths", "/a", "post", "requestBody", "content", mediaTypeFormURLEncoded)
	assertTree(t, map[string]any{
		"tags": map[string]any{"style": "form", "explode": true},
	}, dig(t, mt, "encoding"))
}

func TestConvertSecuritySchemes(t *testing.T) {
	tests := []struct {
		name         string
		def          map[string]any
		want         any
		wantSeverity *Severity
	}{
		{
			name: "basic",
			def:  map[string]any{"type": "basic", "description": "HTTP basic"},
			want: map[string]any{"type": "http", "scheme": "basic", "description": "HTTP basic"},
		},
		{
			name: "apiKey",
			def:  map[string]any{"type": "apiKey", "name": "X-Key", "in": "header", "x-vendor": "acme"},
			want: map[string]any{"type": "apiKey", "name": "X-Key", "in": "header", "x-vendor": "acme"},
		},
		{
			name: "oauth2 password",
			def:  map[string]any{"type": "oauth2", "flow": "password", "tokenUrl": "https://auth/token"},
			want: map[string]any{
				"type": "oauth2",
				"flows": map[string]any{
					"password": map[string]any{"tokenUrl": "https://auth/token", "scopes": map[string]any{}},
				},
			},
		},
		{
			name: "oauth2 application",
			def:  map[string]any{"type": "oauth2", "flow": "application", "tokenUrl": "https://auth/token", "scopes": map[string]any{"a": "b"}},
			want: map[string]any{
				"type": "oauth2",
				"flows": map[string]any{
					"clientCredentials": map[string]any{"tokenUrl": "https://auth/token", "scopes": map[string]any{"a": "b"}},
				},
			},
		},
		{
			name: "oauth2 accessCode",
			def: map[string]any{
				"type":             "oauth2",
				"flow":             "accessCode",
				"authorizationUrl": "https://auth/authorize",
				"tokenUrl":         "https://auth/token",
			},
			want: map[string]any{
				"type": "oauth2",
				"flows": map[string]any{
					"authorizationCode": map[string]any{
						"authorizationUrl": "https://auth/authorize",
						"tokenUrl":         "https://auth/token",
						"scopes":           map[string]any{},
					},
				},
			},
		},
		{
			name:         "oauth2 unknown flow",
			def:          map[string]any{"type": "oauth2", "flow": "device"},
			want:         map[string]any{"type": "oauth2"},
			wantSeverity: ptr(SeverityWarning),
		},
		{
			name:         "unsupported type",
			def:          map[string]any{"type": "mutualTLS"},
			want:         map[string]any{"type": "mutualTLS"},
			wantSeverity: ptr(SeverityCritical),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document.Document{
				"swagger":             "2.0",
				"securityDefinitions": map[string]any{"auth": tt.def},
			}
			out, issues := FromTwoToThree(doc)
			issues = withoutServerNotes(issues)

			assertTree(t, tt.want, dig(t, out, "components", "securitySchemes", "auth"))
			if tt.wantSeverity == nil {
				assert.Empty(t, issues)
				return
			}
			require.Len(t, issues, 1)
			assert.Equal(t, *tt.wantSeverity, issues[0].Severity)
		})
	}
}

func TestSchemaFixups(t *testing.T) {
	doc := document.Document{
		"swagger": "2.0",
		"definitions": map[string]any{
			"Animal": map[string]any{
				"type":          "object",
				"discriminator": "kind",
				"properties": map[string]any{
					"kind": map[string]any{"type": "string"},
					"nickname": map[string]any{
						"type":       "string",
						"x-nullable": true,
					},
					"photos": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "file"},
					},
					"weird": map[string]any{"x-nullable": "yes"},
				},
				"example": map[string]any{"$ref": "#/definitions/NotARef"},
			},
		},
	}

	out, issues := FromTwoToThree(doc)
	animal := dig(t, out, "components", "schemas", "Animal")
	assert.Equal(t, map[string]any{"propertyName": "kind"}, dig(t, animal, "discriminator"))
	assertTree(t, map[string]any{"type": "string", "nullable": true}, dig(t, animal, "properties", "nickname"))
	assertTree(t, map[string]any{"type": "string", "format": "binary"}, dig(t, animal, "properties", "photos", "items"))
	assert.Equal(t, "#/definitions/NotARef", dig(t, animal, "example", "$ref"))

	issues = withoutServerNotes(issues)
	require.Len(t, issues, 1)
	assert.Equal(t, "components.schemas.Animal.properties.weird.x-nullable", issues[0].Path)
}

func withoutServerNotes(list []Issue) []Issue {
	var out []Issue
	for _, issue := range list {
		if issue.Path != "servers" {
			out = append(out, issue)
		}
	}
	return out
}

func countSeverity(list []Issue, sev Severity) int {
	n := 0
	for _, issue := range list {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

func ptr[T any](v T) *T {
	return &v
}

package document

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Version represents a specification series the upgrader distinguishes.
// Patch levels within a series share a Version.
type Version int

const (
	// VersionUnknown represents an unknown or missing version
	VersionUnknown Version = iota
	// VersionSwagger20 Swagger / OpenAPI Specification 2.0
	VersionSwagger20
	// VersionOpenAPI30 OpenAPI Specification 3.0.x
	VersionOpenAPI30
	// VersionOpenAPI31 OpenAPI Specification 3.1.x
	VersionOpenAPI31
	// VersionOpenAPI32 OpenAPI Specification 3.2.x
	VersionOpenAPI32
)

// Latest version strings written by the upgrade steps.
const (
	OpenAPI30Latest = "3.0.4"
	OpenAPI31Latest = "3.1.1"
)

var versionToString = map[Version]string{
	VersionSwagger20: "2.0",
	VersionOpenAPI30: "3.0",
	VersionOpenAPI31: "3.1",
	VersionOpenAPI32: "3.2",
}

func (v Version) String() string {
	if s, ok := versionToString[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a known version.
func (v Version) IsValid() bool {
	_, ok := versionToString[v]
	return ok
}

// ParseVersion maps a version string to its series. It accepts "2.0",
// "3.0", "3.1", "3.2", full patch versions such as "3.0.3", and pre-release
// suffixes such as "3.1.0-rc1".
func ParseVersion(s string) (Version, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return VersionUnknown, false
	}
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return VersionUnknown, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return VersionUnknown, false
		}
		nums[i] = n
	}

	switch {
	case nums[0] == 2 && nums[1] == 0 && (len(nums) == 2 || nums[2] == 0):
		return VersionSwagger20, true
	case nums[0] == 3 && nums[1] == 0:
		return VersionOpenAPI30, true
	case nums[0] == 3 && nums[1] == 1:
		return VersionOpenAPI31, true
	case nums[0] == 3 && nums[1] == 2:
		return VersionOpenAPI32, true
	default:
		return VersionUnknown, false
	}
}

// DetectVersion inspects the "swagger" and "openapi" root fields and returns
// the series and the raw version string. YAML documents sometimes carry an
// unquoted number (swagger: 2.0); those are accepted too.
func DetectVersion(doc Document) (Version, string) {
	if doc == nil {
		return VersionUnknown, ""
	}

	if raw, ok := doc["swagger"]; ok {
		s := versionString(raw)
		if v, ok := ParseVersion(s); ok && v == VersionSwagger20 {
			return v, s
		}
		return VersionUnknown, s
	}

	if raw, ok := doc["openapi"]; ok {
		s := versionString(raw)
		if v, ok := ParseVersion(s); ok && v != VersionSwagger20 {
			return v, s
		}
		return VersionUnknown, s
	}

	return VersionUnknown, ""
}

func versionString(raw any) string {
	switch t := raw.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatFloat(t, 'f', 1, 64)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return fmt.Sprintf("%d.0", t)
	case int64:
		return fmt.Sprintf("%d.0", t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return versionString(f)
		}
		return t.String()
	default:
		return fmt.Sprint(raw)
	}
}

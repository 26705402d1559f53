package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents the serialization of a source document.
type Format string

const (
	// FormatYAML indicates YAML input or output
	FormatYAML Format = "yaml"
	// FormatJSON indicates JSON input or output
	FormatJSON Format = "json"
	// FormatUnknown indicates the format could not be determined
	FormatUnknown Format = "unknown"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return FormatUnknown, false
	}
}

// DetectFormat detects the format from a file path, falling back to the
// content when the extension is not conclusive.
func DetectFormat(path string, data []byte) Format {
	if f := detectFormatFromPath(path); f != FormatUnknown {
		return f
	}
	return detectFormatFromContent(data)
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes.
// JSON documents start with '{' or '[', YAML documents do not.
func detectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatYAML
}

// FormatBytes formats a byte count into a human-readable string using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

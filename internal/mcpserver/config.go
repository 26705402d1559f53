package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/erraggy/oasupgrade/upgrader"
)

const (
	envDefaultTarget = "OASUPGRADE_DEFAULT_TARGET"
	envMaxInlineSize = "OASUPGRADE_MAX_INLINE_SIZE"
	envIncludeInfo   = "OASUPGRADE_INCLUDE_INFO"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded from environment variables via loadConfig().
type serverConfig struct {
	// DefaultTarget is used when a tool call leaves target empty.
	DefaultTarget string
	// MaxInlineSize is the largest accepted inline spec, in bytes.
	MaxInlineSize int64
	// IncludeInfo keeps informational issues in tool output.
	IncludeInfo bool
}

// cfg is the active server configuration. Run reloads it so that a .env file
// loaded by the caller after package init still applies.
var cfg = loadConfig()

// loadConfig reads configuration from OASUPGRADE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		DefaultTarget: envTarget(envDefaultTarget),
		MaxInlineSize: int64(envInt(envMaxInlineSize, 10*1024*1024)),
		IncludeInfo:   envBool(envIncludeInfo, true),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// envTarget returns the target version named by key, or "" (latest) when it
// is unset or not an accepted upgrade target.
func envTarget(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return ""
	}
	if _, err := upgrader.ResolveTarget(v); err != nil {
		slog.Warn("invalid target env var, using latest", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return ""
	}
	return v
}

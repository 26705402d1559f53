package oasupgrade

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build metadata, set via ldflags by GoReleaser:
//
//	-X github.com/erraggy/oasupgrade.version=v1.2.3
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version. Binaries built with "go install"
// report their module version; anything else run from source reports "dev".
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; strings.HasPrefix(v, "v") {
			return v
		}
	}
	return version
}

// Commit returns the git commit the binary was built from, or "unknown".
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or "unknown".
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go toolchain version the binary was built with.
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the identifier reported to MCP clients
func UserAgent() string {
	return fmt.Sprintf("oasupgrade/%s", Version())
}

// BuildInfo returns all build metadata as a multi-line string.
func BuildInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version:    %s\n", Version())
	fmt.Fprintf(&b, "Commit:     %s\n", Commit())
	fmt.Fprintf(&b, "Build Time: %s\n", BuildTime())
	fmt.Fprintf(&b, "Go Version: %s\n", GoVersion())
	return b.String()
}

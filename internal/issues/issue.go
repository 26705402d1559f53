// Package issues provides the issue record produced while upgrading documents.
package issues

import (
	"fmt"

	"github.com/erraggy/oasupgrade/internal/severity"
)

// Issue represents a single note, lossy rewrite, or unconvertible construct
// found while upgrading a document.
type Issue struct {
	// Path is the dotted path to the node (e.g., "paths./pets.get.parameters[0]")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Context provides additional information, such as the replacement used (optional)
	Context string
}

// String returns a formatted string representation of the issue.
// Uses "✗" for Critical, "⚠" for Warning and "ℹ" for Info severity.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	result := fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// Counts tallies issues per severity.
type Counts struct {
	Info     int
	Warning  int
	Critical int
}

// Count returns the number of issues at each severity level.
func Count(list []Issue) Counts {
	var c Counts
	for _, issue := range list {
		switch issue.Severity {
		case severity.SeverityInfo:
			c.Info++
		case severity.SeverityWarning:
			c.Warning++
		case severity.SeverityCritical:
			c.Critical++
		}
	}
	return c
}

// Filter returns the issues at or above min, preserving order.
func Filter(list []Issue, min severity.Severity) []Issue {
	filtered := make([]Issue, 0, len(list))
	for _, issue := range list {
		if issue.Severity.AtLeast(min) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

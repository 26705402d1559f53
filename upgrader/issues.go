package upgrader

import (
	"fmt"

	"github.com/erraggy/oasupgrade/internal/issues"
	"github.com/erraggy/oasupgrade/internal/severity"
)

// Severity indicates the severity level of an upgrade issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about upgrade choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates lossy or best-effort rewrites
	SeverityWarning = severity.SeverityWarning
	// SeverityCritical indicates constructs that could not be carried over
	SeverityCritical = severity.SeverityCritical
)

// Issue represents a single upgrade issue
type Issue = issues.Issue

// tracker collects issues while a step runs.
type tracker struct {
	issues []Issue
}

func (t *tracker) add(path, message string, sev Severity) {
	t.issues = append(t.issues, Issue{
		Path:     path,
		Message:  message,
		Severity: sev,
	})
}

func (t *tracker) addf(path string, sev Severity, format string, args ...any) {
	t.add(path, fmt.Sprintf(format, args...), sev)
}

// addWithContext records a warning with a hint about what was done instead.
func (t *tracker) addWithContext(path, message, context string) {
	t.issues = append(t.issues, Issue{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
		Context:  context,
	})
}

// childPath joins a dotted issue path with a key.
func childPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// indexPath appends an array index to a dotted issue path.
func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

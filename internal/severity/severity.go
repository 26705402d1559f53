// Package severity provides the severity levels attached to upgrade issues.
//
// Levels are ordered from least to most severe:
// Info < Warning < Critical
package severity

// Severity indicates how much an upgrade rule had to compromise.
type Severity int

const (
	// SeverityInfo records a choice the upgrader made, such as a default
	// media type or a dropped field with a direct replacement.
	SeverityInfo Severity = iota

	// SeverityWarning records a lossy or best-effort rewrite that should
	// be reviewed.
	SeverityWarning

	// SeverityCritical records a construct that could not be carried into
	// the target version at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// AtLeast reports whether s is at least as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return s >= min
}

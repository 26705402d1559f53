package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the input could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrVersion indicates an unknown or unsupported document version.
	ErrVersion = errors.New("version error")

	// ErrUpgrade indicates an upgrade step failure.
	ErrUpgrade = errors.New("upgrade error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a document into a tree.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// VersionError is returned when a document's declared version cannot be
// upgraded, either because it is not recognized or because the requested
// target is older than the source.
type VersionError struct {
	// Found is the raw version string found in the document (may be empty)
	Found string
	// Target is the requested target version, if any
	Target string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := "version error"
	if e.Found != "" {
		msg += fmt.Sprintf(" (found %q", e.Found)
		if e.Target != "" {
			msg += fmt.Sprintf(", target %q", e.Target)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrVersion
}

// UpgradeError represents a failed upgrade step.
type UpgradeError struct {
	// Step names the step, e.g. "2.0 -> 3.0"
	Step string
	// Path is the dotted document path where the step failed, if known
	Path string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *UpgradeError) Error() string {
	msg := "upgrade error"
	if e.Step != "" {
		msg += " (" + e.Step + ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *UpgradeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *UpgradeError) Is(target error) bool {
	return target == ErrUpgrade
}

// ConfigError represents an invalid option or input.
type ConfigError struct {
	// Option is the name of the problematic option
	Option string
	// Value is the invalid value (may be nil)
	Value any
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

package upgrader

import (
	"fmt"
	"io"

	"github.com/erraggy/oasupgrade/document"
	"github.com/erraggy/oasupgrade/internal/options"
)

// Option is a function that configures an upgrade operation
type Option func(*upgradeConfig) error

// upgradeConfig holds configuration for an upgrade operation
type upgradeConfig struct {
	// Input source (exactly one must be set)
	doc      document.Document
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Configuration options
	targetVersion string
	strictMode    bool
	includeInfo   bool
	inPlace       bool
	logger        Logger
}

// UpgradeWithOptions upgrades a document using functional options.
// This provides a flexible, extensible API that combines input source selection
// and configuration in a single function call.
//
// Example:
//
//	result, err := upgrader.UpgradeWithOptions(
//	    upgrader.WithFilePath("swagger.yaml"),
//	    upgrader.WithTargetVersion("3.1"),
//	)
func UpgradeWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("upgrader: invalid options: %w", err)
	}

	u := &Upgrader{
		TargetVersion: cfg.targetVersion,
		StrictMode:    cfg.strictMode,
		IncludeInfo:   cfg.includeInfo,
		InPlace:       cfg.inPlace,
		Logger:        cfg.logger,
	}

	switch {
	case cfg.doc != nil:
		return u.Upgrade(cfg.doc)
	case cfg.filePath != nil:
		return u.UpgradeFile(*cfg.filePath)
	case cfg.reader != nil:
		loaded, err := document.LoadReader(cfg.reader)
		if err != nil {
			return nil, err
		}
		return u.upgradeLoaded(loaded)
	case cfg.bytes != nil:
		return u.UpgradeBytes(cfg.bytes)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("upgrader: no input source specified")
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*upgradeConfig, error) {
	cfg := &upgradeConfig{
		includeInfo: true,
		logger:      NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"upgrader: must specify an input source (use WithDocument, WithFilePath, WithReader, or WithBytes)",
		"upgrader: must specify exactly one input source",
		cfg.doc != nil, cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	if _, err := ResolveTarget(cfg.targetVersion); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDocument specifies an already decoded document as the input source.
// The tree must not contain cycles.
func WithDocument(doc document.Document) Option {
	return func(cfg *upgradeConfig) error {
		if doc == nil {
			return fmt.Errorf("upgrader: document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithFilePath specifies a JSON or YAML file as the input source
func WithFilePath(path string) Option {
	return func(cfg *upgradeConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *upgradeConfig) error {
		if r == nil {
			return fmt.Errorf("upgrader: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *upgradeConfig) error {
		if data == nil {
			return fmt.Errorf("upgrader: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithTargetVersion sets the version to upgrade to ("3.0" or "3.1")
// Default: "" (latest)
func WithTargetVersion(version string) Option {
	return func(cfg *upgradeConfig) error {
		cfg.targetVersion = version
		return nil
	}
}

// WithStrictMode makes warnings and critical issues fail the upgrade
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *upgradeConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo keeps or drops informational issues in the result
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *upgradeConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithInPlace mutates a WithDocument input instead of upgrading a copy
// Default: false
func WithInPlace(enabled bool) Option {
	return func(cfg *upgradeConfig) error {
		cfg.inPlace = enabled
		return nil
	}
}

// WithLogger sets a structured logger for step diagnostics.
// A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *upgradeConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}

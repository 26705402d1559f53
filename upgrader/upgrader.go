package upgrader

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasupgrade/document"
	"github.com/erraggy/oasupgrade/internal/issues"
	"github.com/erraggy/oasupgrade/oaserrors"
)

// Step names recorded in Result.Steps.
const (
	StepTwoToThree      = "2.0 -> 3.0"
	StepThreeToThreeOne = "3.0 -> 3.1"
)

// Result contains the outcome of upgrading a document
type Result struct {
	// Document is the upgraded document
	Document document.Document
	// SourceVersion is the version string found in the source document
	SourceVersion string
	// SourceOASVersion is the enumerated source version
	SourceOASVersion document.Version
	// SourceFormat is the format of the source, when it was loaded from a file or bytes
	SourceFormat document.Format
	// TargetVersion is the version string written to the upgraded document
	TargetVersion string
	// TargetOASVersion is the enumerated target version
	TargetOASVersion document.Version
	// Steps lists the upgrade steps that ran, in order
	Steps []string
	// Issues contains all upgrade issues in traversal order
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if the upgrade completed without critical issues
	Success bool
}

// HasCriticalIssues returns true if there are any critical issues
func (r *Result) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// Changed reports whether any upgrade step ran.
func (r *Result) Changed() bool {
	return len(r.Steps) > 0
}

// Upgrader upgrades Swagger 2.0 and OpenAPI 3.0 documents.
// The zero value upgrades to the latest supported version.
type Upgrader struct {
	// TargetVersion is the version to stop at: "3.0", "3.1", a full patch
	// version of either, or "" for the latest
	TargetVersion string
	// StrictMode causes Upgrade to return an error when any warning or
	// critical issue is recorded
	StrictMode bool
	// IncludeInfo determines whether informational issues are kept in the result
	IncludeInfo bool
	// InPlace makes Upgrade mutate the given document instead of a copy
	InPlace bool
	// Logger receives step-level diagnostics; nil means no logging
	Logger Logger
}

// New creates a new Upgrader instance with default settings
func New() *Upgrader {
	return &Upgrader{
		IncludeInfo: true,
		Logger:      NopLogger{},
	}
}

// Upgrade upgrades doc to the configured target version. Unless InPlace is
// set, doc itself is left untouched.
//
// In strict mode the result is returned alongside an *oaserrors.UpgradeError
// when the upgrade recorded warnings or critical issues.
func (u *Upgrader) Upgrade(doc document.Document) (*Result, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}

	target, err := ResolveTarget(u.TargetVersion)
	if err != nil {
		return nil, err
	}

	source, raw := document.DetectVersion(doc)
	if source == document.VersionUnknown {
		msg := "document has no recognizable swagger or openapi version"
		if raw != "" {
			msg = "unsupported source version"
		}
		return nil, &oaserrors.VersionError{Found: raw, Target: u.TargetVersion, Message: msg}
	}

	log := u.logger().With("source", raw)

	result := &Result{
		SourceVersion:    raw,
		SourceOASVersion: source,
		TargetOASVersion: target,
	}

	if source > target {
		if u.TargetVersion != "" {
			return nil, &oaserrors.ConfigError{
				Option:  "target",
				Value:   u.TargetVersion,
				Message: fmt.Sprintf("cannot downgrade a %s document; downgrades are not supported", raw),
			}
		}
		// Latest target on a newer source: nothing to do.
		result.TargetOASVersion = source
	}

	if !u.InPlace {
		doc = document.CopyDocument(doc)
	}

	if source == document.VersionSwagger20 && target >= document.VersionOpenAPI30 {
		var stepIssues []Issue
		doc, stepIssues = FromTwoToThree(doc)
		result.Steps = append(result.Steps, StepTwoToThree)
		result.Issues = append(result.Issues, stepIssues...)
		log.Debug("applied upgrade step", "step", StepTwoToThree, "issues", len(stepIssues))
		source = document.VersionOpenAPI30
	}

	if source == document.VersionOpenAPI30 && target >= document.VersionOpenAPI31 {
		var stepIssues []Issue
		doc, stepIssues = FromThreeToThreeOne(doc)
		result.Steps = append(result.Steps, StepThreeToThreeOne)
		result.Issues = append(result.Issues, stepIssues...)
		log.Debug("applied upgrade step", "step", StepThreeToThreeOne, "issues", len(stepIssues))
	}

	if len(result.Steps) == 0 {
		result.Issues = append(result.Issues, Issue{
			Path:     "openapi",
			Message:  fmt.Sprintf("Document is already at version %s, no upgrade needed", raw),
			Severity: SeverityInfo,
		})
	}

	result.Document = doc
	_, result.TargetVersion = document.DetectVersion(doc)

	counts := issues.Count(result.Issues)
	result.InfoCount = counts.Info
	result.WarningCount = counts.Warning
	result.CriticalCount = counts.Critical
	result.Success = result.CriticalCount == 0

	log.Info("upgrade finished",
		"target", result.TargetVersion,
		"steps", len(result.Steps),
		"warnings", result.WarningCount,
		"critical", result.CriticalCount)

	if !u.IncludeInfo {
		result.Issues = issues.Filter(result.Issues, SeverityWarning)
		result.InfoCount = 0
	}

	if u.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, &oaserrors.UpgradeError{
			Step: strings.Join(result.Steps, ", "),
			Message: fmt.Sprintf("strict mode: %d critical issue(s), %d warning(s)",
				result.CriticalCount, result.WarningCount),
		}
	}

	return result, nil
}

// UpgradeFile loads a JSON or YAML file and upgrades it. The result records
// the source format so callers can write the output in kind.
func (u *Upgrader) UpgradeFile(path string) (*Result, error) {
	loaded, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return u.upgradeLoaded(loaded)
}

// UpgradeBytes decodes a JSON or YAML document and upgrades it.
func (u *Upgrader) UpgradeBytes(data []byte) (*Result, error) {
	loaded, err := document.LoadBytes(data, "")
	if err != nil {
		return nil, err
	}
	return u.upgradeLoaded(loaded)
}

func (u *Upgrader) upgradeLoaded(loaded *document.Loaded) (*Result, error) {
	// The decoded tree is private to this call.
	cp := *u
	cp.InPlace = true
	result, err := cp.Upgrade(loaded.Document)
	if result != nil {
		result.SourceFormat = loaded.Format
	}
	return result, err
}

func (u *Upgrader) logger() Logger {
	if u.Logger == nil {
		return NopLogger{}
	}
	return u.Logger
}

// ResolveTarget maps a target version string to the series it names.
// The empty string and "latest" select the newest supported target.
func ResolveTarget(target string) (document.Version, error) {
	t := strings.TrimSpace(target)
	if t == "" || strings.EqualFold(t, "latest") {
		return document.VersionOpenAPI31, nil
	}
	v, ok := document.ParseVersion(t)
	if !ok {
		return document.VersionUnknown, &oaserrors.ConfigError{
			Option:  "target",
			Value:   target,
			Message: "unrecognized target version",
		}
	}
	if v != document.VersionOpenAPI30 && v != document.VersionOpenAPI31 {
		return document.VersionUnknown, &oaserrors.ConfigError{
			Option:  "target",
			Value:   target,
			Message: "supported targets are 3.0 and 3.1",
		}
	}
	return v, nil
}

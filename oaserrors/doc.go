// Package oaserrors provides structured error types for oasupgrade.
//
// Import path: github.com/erraggy/oasupgrade/oaserrors
//
// Callers can distinguish error categories with [errors.Is] and pull details
// out with [errors.As]:
//
//   - [ParseError]: the input could not be decoded into a document tree
//   - [VersionError]: the document's version is missing, unknown, or unsupported
//   - [UpgradeError]: an upgrade step failed, or strict mode rejected its issues
//   - [ConfigError]: an invalid option or input combination
//
// Each type has a matching sentinel ([ErrParse], [ErrVersion], [ErrUpgrade],
// [ErrConfig]):
//
//	result, err := upgrader.UpgradeWithOptions(upgrader.WithFilePath("swagger.yaml"))
//	if errors.Is(err, oaserrors.ErrVersion) {
//	    var verr *oaserrors.VersionError
//	    errors.As(err, &verr)
//	    fmt.Printf("cannot upgrade version %q\n", verr.Found)
//	}
package oaserrors

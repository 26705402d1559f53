// Package commands provides the cobra command tree for oasupgrade.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/oasupgrade"
	"github.com/erraggy/oasupgrade/internal/cliutil"
	"github.com/erraggy/oasupgrade/upgrader"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrCriticalIssues is returned when an upgrade finishes with critical issues.
// The document is still written; the process exits non-zero.
var ErrCriticalIssues = errors.New("upgrade finished with critical issues")

// rootOptions carries state shared by all subcommands.
type rootOptions struct {
	verbose bool
	logger  *zap.Logger
}

// upgradeLogger returns the logger handed to the upgrader.
func (o *rootOptions) upgradeLogger() upgrader.Logger {
	if o.logger == nil {
		return upgrader.NopLogger{}
	}
	return newZapLogger(o.logger)
}

func (o *rootOptions) initLogger() error {
	// Diagnostics already go to stderr as text; structured logs are for --verbose.
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if o.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger
	return nil
}

func (o *rootOptions) sync() {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

// NewRootCmd builds the oasupgrade command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "oasupgrade",
		Short: "Upgrade Swagger 2.0 and OpenAPI 3.0 documents to OpenAPI 3.0 or 3.1",
		Long: `oasupgrade rewrites Swagger 2.0 and OpenAPI 3.0 documents into OpenAPI 3.0 or 3.1.

Documents are read as JSON or YAML and written back in the same format unless
--format says otherwise. Every rewrite that loses or invents information is
reported as an info, warning or critical issue with the JSON path it applies to.`,
		Version:       oasupgrade.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.initLogger()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			opts.sync()
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging to stderr")

	cmd.AddCommand(
		newUpgradeCmd(opts),
		newDetectCmd(),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

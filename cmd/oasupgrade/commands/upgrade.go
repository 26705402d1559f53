package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oasupgrade"
	"github.com/erraggy/oasupgrade/document"
	"github.com/erraggy/oasupgrade/internal/cliutil"
	"github.com/erraggy/oasupgrade/internal/fileutil"
	"github.com/erraggy/oasupgrade/upgrader"
	"github.com/spf13/cobra"
)

// watchDebounce is how long the watcher waits after the last write before
// upgrading again. Editors commonly save in several writes.
const watchDebounce = 200 * time.Millisecond

// UpgradeFlags contains flags for the upgrade command
type UpgradeFlags struct {
	Target string
	Output string
	Format string
	Strict bool
	NoInfo bool
	Quiet  bool
	Watch  bool
}

// validate checks flag combinations that do not depend on the document.
func (f *UpgradeFlags) validate(specPath string) error {
	if _, err := ParseDocumentFormat(f.Format); err != nil {
		return err
	}
	if _, err := upgrader.ResolveTarget(f.Target); err != nil {
		return err
	}
	if f.Watch {
		if specPath == StdinFilePath {
			return fmt.Errorf("--watch requires a file path, not stdin")
		}
		if f.Output == "" {
			return fmt.Errorf("--watch requires an output file (use -o or --output)")
		}
	}
	if f.Output != "" {
		return ValidateOutputPath(f.Output, specPath)
	}
	return nil
}

func newUpgradeCmd(root *rootOptions) *cobra.Command {
	flags := &UpgradeFlags{}

	cmd := &cobra.Command{
		Use:   "upgrade [flags] <file|->",
		Short: "Upgrade a document to OpenAPI 3.0 or 3.1",
		Long: `Upgrade a Swagger 2.0 or OpenAPI 3.0 document to OpenAPI 3.0 or 3.1.

A 2.0 document upgraded to 3.1 passes through 3.0 first. Documents already at
or beyond the target are written back unchanged with a single info note.

Severity levels:
  critical  a construct could not be carried over (data loss)
  warning   a lossy or best-effort rewrite that should be reviewed
  info      a choice the upgrader made, such as a default media type

Exit codes:
  0    upgrade successful
  1    upgrade failed, critical issues found, or --strict saw warnings`,
		Example: `  oasupgrade upgrade swagger.yaml -o openapi.yaml
  oasupgrade upgrade -t 3.0 swagger.json > openapi.json
  cat swagger.yaml | oasupgrade upgrade -q - > openapi.yaml
  oasupgrade upgrade --watch swagger.yaml -o openapi.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(cmd, root, flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.Target, "target", "t", "", `target version: "3.0", "3.1" or "latest" (default latest)`)
	f.StringVarP(&flags.Output, "output", "o", "", "output file path (default: stdout)")
	f.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: source format)")
	f.BoolVar(&flags.Strict, "strict", false, "fail on any warning or critical issue")
	f.BoolVar(&flags.NoInfo, "no-info", false, "omit informational issues")
	f.BoolVarP(&flags.Quiet, "quiet", "q", false, "quiet mode: only output the document, no diagnostic messages")
	f.BoolVar(&flags.Watch, "watch", false, "upgrade again whenever the input file changes (requires -o)")

	return cmd
}

func runUpgrade(cmd *cobra.Command, root *rootOptions, flags *UpgradeFlags, specPath string) error {
	if err := flags.validate(specPath); err != nil {
		return err
	}

	if !flags.Watch {
		return upgradeOnce(cmd, root, flags, specPath)
	}

	stderr := cmd.ErrOrStderr()
	rerun := func() {
		if err := upgradeOnce(cmd, root, flags, specPath); err != nil {
			cliutil.Writef(stderr, "Error: %v\n", err)
		}
	}
	rerun()
	if !flags.Quiet {
		cliutil.Writef(stderr, "Watching %s for changes (Ctrl+C to stop)\n", specPath)
	}
	return watchFile(cmd.Context(), specPath, watchDebounce, root.upgradeLogger(), rerun)
}

// upgradeOnce runs a single upgrade and writes the document and diagnostics.
func upgradeOnce(cmd *cobra.Command, root *rootOptions, flags *UpgradeFlags, specPath string) error {
	logger := root.upgradeLogger()
	if flags.Quiet && !root.verbose {
		logger = upgrader.NopLogger{}
	}

	opts := []upgrader.Option{
		upgrader.WithTargetVersion(flags.Target),
		upgrader.WithStrictMode(flags.Strict),
		upgrader.WithIncludeInfo(!flags.NoInfo),
		upgrader.WithLogger(logger),
	}
	if specPath == StdinFilePath {
		opts = append(opts, upgrader.WithReader(cmd.InOrStdin()))
	} else {
		opts = append(opts, upgrader.WithFilePath(specPath))
	}

	start := time.Now()
	result, err := upgrader.UpgradeWithOptions(opts...)
	if result == nil {
		return fmt.Errorf("upgrading %s: %w", FormatSpecPath(specPath), err)
	}
	strictErr := err
	elapsed := time.Since(start)

	stderr := cmd.ErrOrStderr()
	if !flags.Quiet {
		writeUpgradeReport(stderr, specPath, result, elapsed)
	}
	if strictErr != nil {
		return strictErr
	}

	format, _ := ParseDocumentFormat(flags.Format)
	if format == document.FormatUnknown {
		format = result.SourceFormat
	}
	data, err := document.Marshal(result.Document, format)
	if err != nil {
		return fmt.Errorf("marshaling upgraded document: %w", err)
	}

	if err := writeDocument(cmd.OutOrStdout(), flags.Output, data); err != nil {
		return err
	}
	if flags.Output != "" && !flags.Quiet {
		cliutil.Writef(stderr, "\nOutput written to: %s\n", flags.Output)
	}

	if result.HasCriticalIssues() {
		return ErrCriticalIssues
	}
	return nil
}

func writeDocument(stdout io.Writer, output string, data []byte) error {
	if output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("writing upgraded document to stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(output, data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

func writeUpgradeReport(w io.Writer, specPath string, result *upgrader.Result, elapsed time.Duration) {
	cliutil.WriteBanner(w, "OpenAPI Specification Upgrader")
	cliutil.Writef(w, "oasupgrade version: %s\n", oasupgrade.Version())
	cliutil.Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(w, "Source Version: %s\n", result.SourceVersion)
	cliutil.Writef(w, "Target Version: %s\n", result.TargetVersion)
	steps := "none"
	if len(result.Steps) > 0 {
		steps = strings.Join(result.Steps, ", ")
	}
	cliutil.Writef(w, "Steps: %s\n", steps)
	cliutil.Writef(w, "Total Time: %v\n\n", elapsed)

	cliutil.WriteIssues(w, result.Issues)

	if result.Success {
		cliutil.Writef(w, "✓ Upgrade successful")
		if result.InfoCount > 0 || result.WarningCount > 0 {
			cliutil.Writef(w, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
		}
		cliutil.Writef(w, "\n")
		return
	}
	cliutil.Writef(w, "✗ Upgrade completed with %d critical issue(s)", result.CriticalCount)
	if result.WarningCount > 0 {
		cliutil.Writef(w, ", %d warning(s)", result.WarningCount)
	}
	cliutil.Writef(w, "\n")
}

package commands

import (
	"fmt"

	"github.com/erraggy/oasupgrade/document"
	"github.com/erraggy/oasupgrade/internal/cliutil"
	"github.com/spf13/cobra"
)

// DetectResult is the structured output of the detect command.
type DetectResult struct {
	Version    string `json:"version"     yaml:"version"`
	RawVersion string `json:"raw_version" yaml:"raw_version"`
	Format     string `json:"format"      yaml:"format"`
}

func newDetectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "detect [flags] <file|->",
		Short: "Print the OpenAPI version of a document",
		Example: `  oasupgrade detect swagger.yaml
  cat openapi.json | oasupgrade detect --format json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ValidateOutputFormat(format); err != nil {
				return err
			}

			loaded, err := loadSpec(args[0], cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("loading %s: %w", FormatSpecPath(args[0]), err)
			}
			if loaded.Version == document.VersionUnknown {
				return fmt.Errorf("unrecognized OpenAPI version %q in %s", loaded.RawVersion, FormatSpecPath(args[0]))
			}

			result := DetectResult{
				Version:    loaded.Version.String(),
				RawVersion: loaded.RawVersion,
				Format:     string(loaded.Format),
			}
			if format != FormatText {
				return OutputStructured(cmd.OutOrStdout(), result, format)
			}

			out := cmd.OutOrStdout()
			cliutil.Writef(out, "Version: %s\n", result.Version)
			cliutil.Writef(out, "Raw Version: %s\n", result.RawVersion)
			cliutil.Writef(out, "Format: %s\n", result.Format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatText, "output format: text, json, or yaml")
	return cmd
}

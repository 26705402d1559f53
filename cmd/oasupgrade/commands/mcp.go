package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/erraggy/oasupgrade/internal/mcpserver"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

func newMCPCmd(root *rootOptions) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the upgrade
and detect_version tools.

OASUPGRADE_* settings are read from the environment. Values from --env-file
(default .env, skipped when missing) fill in variables that are not already set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadEnvFile(envFile, cmd.Flags().Changed("env-file")); err != nil {
				return err
			}

			level := slog.LevelInfo
			if root.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			return mcpserver.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", defaultEnvFile, "file of KEY=value settings loaded before start")
	return cmd
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. A missing file is only an error when required.
func loadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	return fmt.Errorf("loading env file %s: %w", path, err)
}

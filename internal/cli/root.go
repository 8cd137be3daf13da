// Package cli defines roster's command line.
package cli

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/roster/internal/app"
)

type flags struct {
	ConfigPath     string
	PrefsPath      string
	BaseURL        string
	LogFile        string
	TimeoutSeconds int
}

func (f *flags) options() app.Options {
	opts := app.Options{
		ConfigPath: f.ConfigPath,
		PrefsPath:  f.PrefsPath,
		BaseURL:    f.BaseURL,
		LogFile:    f.LogFile,
	}
	if f.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	return opts
}

// NewRootCmd builds the roster command tree.
func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:          "roster",
		Short:        "Browse, edit and delete users from a REST resource",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  roster

  # Point at another service root
  roster --base-url http://localhost:3000

  # Print users without the TUI
  roster list
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), f.options())
		},
	}

	cmd.PersistentFlags().StringVar(&f.ConfigPath, "config", envOr("ROSTER_CONFIG", ""), "Path to config.toml (default ~/.config/roster/config.toml)")
	cmd.PersistentFlags().StringVar(&f.PrefsPath, "prefs", "", "Path to prefs.toml (default ~/.config/roster/prefs.toml)")
	cmd.PersistentFlags().StringVar(&f.BaseURL, "base-url", envOr("ROSTER_BASE_URL", ""), "Service root serving /users")
	cmd.PersistentFlags().StringVar(&f.LogFile, "log-file", envOr("ROSTER_LOG_FILE", ""), "Write logs to this file")
	cmd.PersistentFlags().IntVar(&f.TimeoutSeconds, "timeout", 0, "Request timeout in seconds (0 = none)")

	cmd.AddCommand(newListCmd(f))
	cmd.AddCommand(newLogsCmd(f))

	return cmd
}

func newListCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print users, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(cmd.Context(), f.options(), cmd.OutOrStdout())
		},
	}
}

func newLogsCmd(f *flags) *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Logs(f.options(), cmd.OutOrStdout(), lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines (0 = all)")
	return cmd
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

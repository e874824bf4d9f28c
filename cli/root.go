// Package cli provides the command-line interface for tootspan.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootspan/app"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tootspan",
	Short: "Collect your own Mastodon posts for a date range",
	Long: "tootspan walks your Mastodon posting history newest first, keeps the posts " +
		"created inside a date range, and prints, browses, or archives them.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Logs go to stderr so stdout stays clean for rendered output.
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		cmd.SetContext(app.WithLogger(cmd.Context(), logger))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

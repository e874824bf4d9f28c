package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootspan/app"
	"github.com/CrestNiraj12/tootspan/domain"
	"github.com/CrestNiraj12/tootspan/infra/config"
	"github.com/CrestNiraj12/tootspan/tui"
)

var (
	browseStart string
	browseEnd   string
	browseFull  bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse your posts for a date range in the terminal",
	RunE:  browseAction,
}

func init() {
	browseCmd.Flags().StringVar(&browseStart, "start", "", "range start (DD.MM.YYYY or YYYY-MM-DD)")
	browseCmd.Flags().StringVar(&browseEnd, "end", "", "range end (DD.MM.YYYY or YYYY-MM-DD)")
	browseCmd.Flags().BoolVar(&browseFull, "full", false, "show full post content instead of excerpts")
	_ = browseCmd.MarkFlagRequired("start")
	_ = browseCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(browseCmd)
}

func browseAction(cmd *cobra.Command, _ []string) error {
	rng, err := domain.ParseDateRange(browseStart, browseEnd)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	account, source := buildServices(cfg)

	profile, err := account.CurrentProfile(cmd.Context())
	if err != nil {
		return err
	}

	collector := app.NewCollector(account, source,
		app.WithFullContent(browseFull),
		app.WithExcerptLength(cfg.ExcerptLength),
	)
	collect := func(ctx context.Context) ([]domain.Post, error) {
		return collector.Collect(ctx, rng)
	}

	p := tea.NewProgram(tui.New(profile.Acct, rng, collect), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

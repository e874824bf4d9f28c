package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootspan/app"
	"github.com/CrestNiraj12/tootspan/domain"
	"github.com/CrestNiraj12/tootspan/infra/archive"
	"github.com/CrestNiraj12/tootspan/infra/config"
	"github.com/CrestNiraj12/tootspan/render"
)

var (
	fetchStart   string
	fetchEnd     string
	fetchFull    bool
	fetchFormat  string
	fetchSave    bool
	fetchLimit   int
	fetchExcerpt int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch your posts for a date range",
	Long: "fetch pages through your own statuses newest first until it passes the " +
		"start of the range, skipping boosts, and prints the posts that fall inside it.",
	RunE: fetchAction,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchStart, "start", "", "range start (DD.MM.YYYY or YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchEnd, "end", "", "range end (DD.MM.YYYY or YYYY-MM-DD)")
	fetchCmd.Flags().BoolVar(&fetchFull, "full", false, "keep full post content instead of excerpts")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "text", "output format: text, json")
	fetchCmd.Flags().BoolVar(&fetchSave, "save", false, "save the fetched posts to the local archive")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "statuses per page, 1-40 (0 uses the config value)")
	fetchCmd.Flags().IntVar(&fetchExcerpt, "excerpt-length", 0, "excerpt budget in runes (0 uses the config value)")
	_ = fetchCmd.MarkFlagRequired("start")
	_ = fetchCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(fetchCmd)
}

func fetchAction(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rng, err := domain.ParseDateRange(fetchStart, fetchEnd)
	if err != nil {
		return err
	}
	formatter, err := resolveFormatter(fetchFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fetchLimit > 0 {
		cfg.PageLimit = fetchLimit
	}
	if fetchExcerpt > 0 {
		cfg.ExcerptLength = fetchExcerpt
	}

	account, source := buildServices(cfg)

	// Resolving the profile up front also warms the account ID cache.
	profile, err := account.CurrentProfile(ctx)
	if err != nil {
		return err
	}

	// Archived posts keep their full text regardless of --full.
	full := fetchFull || fetchSave

	// Progress is shown on interactive terminals only, never for json.
	showProgress := fetchFormat != "json" && isatty.IsTerminal(os.Stderr.Fd())

	var pages, scanned int
	collector := app.NewCollector(account, source,
		app.WithFullContent(full),
		app.WithExcerptLength(cfg.ExcerptLength),
		app.WithProgress(func(p, seen, matched int) {
			pages, scanned = p, seen
			if showProgress {
				fmt.Fprintf(os.Stderr, "\rpage %d: %d scanned, %d in range", p, seen, matched)
			}
		}),
	)

	posts, err := collector.Collect(ctx, rng)
	if pages > 0 && showProgress {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if fetchSave {
		if err := savePosts(ctx, cfg.ArchivePath, profile.Acct, posts); err != nil {
			return err
		}
	}

	return formatter.Format(os.Stdout, render.Input{
		Acct:    profile.Acct,
		Range:   rng,
		Posts:   posts,
		Pages:   pages,
		Scanned: scanned,
	})
}

func savePosts(ctx context.Context, path, acct string, posts []domain.Post) error {
	store, err := archive.Open(path)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer func() { _ = store.Close() }()

	n, err := store.SavePosts(ctx, posts)
	if err != nil {
		return fmt.Errorf("save posts: %w", err)
	}
	if err := store.SaveAccount(ctx, acct); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %d posts to %s\n", n, path)
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CrestNiraj12/tootspan/domain"
	"github.com/CrestNiraj12/tootspan/infra/archive"
	"github.com/CrestNiraj12/tootspan/infra/config"
	"github.com/CrestNiraj12/tootspan/render"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the local post archive",
}

var (
	archiveListStart  string
	archiveListEnd    string
	archiveListFormat string
)

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived posts for a date range",
	RunE:  archiveListAction,
}

var archiveStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the archive contents",
	RunE:  archiveStatsAction,
}

var archivePruneRetain int

var archivePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete archived posts older than a retention window",
	RunE:  archivePruneAction,
}

func init() {
	archiveListCmd.Flags().StringVar(&archiveListStart, "start", "", "range start (DD.MM.YYYY or YYYY-MM-DD)")
	archiveListCmd.Flags().StringVar(&archiveListEnd, "end", "", "range end (DD.MM.YYYY or YYYY-MM-DD)")
	archiveListCmd.Flags().StringVar(&archiveListFormat, "format", "text", "output format: text, json")
	_ = archiveListCmd.MarkFlagRequired("start")
	_ = archiveListCmd.MarkFlagRequired("end")

	archivePruneCmd.Flags().IntVar(&archivePruneRetain, "retain-days", 90, "keep posts newer than this many days")

	archiveCmd.AddCommand(archiveListCmd, archiveStatsCmd, archivePruneCmd)
	rootCmd.AddCommand(archiveCmd)
}

func openArchive() (*archive.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	store, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return store, nil
}

func archiveListAction(cmd *cobra.Command, _ []string) error {
	rng, err := domain.ParseDateRange(archiveListStart, archiveListEnd)
	if err != nil {
		return err
	}
	formatter, err := resolveFormatter(archiveListFormat)
	if err != nil {
		return err
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	posts, err := store.ListRange(ctx, rng)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}
	acct, err := store.Account(ctx)
	if err != nil {
		return err
	}
	if acct == "" {
		acct = "archive"
	}

	return formatter.Format(os.Stdout, render.Input{
		Acct:  acct,
		Range: rng,
		Posts: posts,
	})
}

func archiveStatsAction(cmd *cobra.Command, _ []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	stats, err := store.Stats(ctx)
	if err != nil {
		return err
	}

	if stats.Posts == 0 {
		fmt.Println("Archive is empty. Run 'tootspan fetch --save' first.")
		return nil
	}

	acct, err := store.Account(ctx)
	if err != nil {
		return err
	}

	if acct != "" {
		fmt.Printf("account: @%s\n", acct)
	}
	fmt.Printf("posts:   %d\n", stats.Posts)
	fmt.Printf("oldest:  %s\n", stats.Oldest.Format("2006-01-02"))
	fmt.Printf("newest:  %s\n", stats.Newest.Format("2006-01-02"))
	return nil
}

func archivePruneAction(cmd *cobra.Command, _ []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := store.Prune(cmd.Context(), archivePruneRetain)
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d posts older than %d days\n", n, archivePruneRetain)
	return nil
}

package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/namph-dev/dd373watch/internal/sheet"
	"github.com/namph-dev/dd373watch/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the spreadsheet's run rows and write best offers back",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	scraper := buildScraper()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "watch",
	})

	sheetClient, err := sheet.NewClient(ctx, cfg.KeyPath, cfg.SpreadsheetID, cfg.SheetName)
	if err != nil {
		return err
	}

	w := watch.New(sheetClient, scraper, watch.Options{
		PollInterval:  cfg.PollInterval,
		RowDelay:      cfg.RowDelay,
		RetryCount:    cfg.RetryCount,
		RetryDelay:    cfg.RetryDelay,
		MaxConcurrent: cfg.MaxConcurrent,
		RatePerSecond: cfg.RatePerSecond,
		RateBurst:     cfg.RateBurst,
	}, logger)

	logger.Info("watcher starting", "spreadsheet", cfg.SpreadsheetID, "sheet", cfg.SheetName)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("watcher stopped")
	return nil
}

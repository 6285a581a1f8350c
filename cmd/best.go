package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/namph-dev/dd373watch/internal/models"
	"github.com/namph-dev/dd373watch/internal/platform"
	"github.com/namph-dev/dd373watch/internal/ui"
	"github.com/spf13/cobra"
)

var bestCmd = &cobra.Command{
	Use:   "best [listing-url]",
	Short: "Find the cheapest eligible offer on a listing page",
	Args:  cobra.ExactArgs(1),
	RunE:  runBest,
}

func init() {
	bestCmd.Flags().Int("stock-min", -1, "Minimum total stock (0 disables)")
	bestCmd.Flags().Int("level-min", -1, "Minimum seller credit rating (0 disables)")
	rootCmd.AddCommand(bestCmd)
}

func runBest(cmd *cobra.Command, args []string) error {
	scraper := buildScraper()

	url := args[0]
	criteria := models.FilterCriteria{
		StockMin: cfg.StockMin,
		LevelMin: cfg.LevelMin,
	}
	if v, _ := cmd.Flags().GetInt("stock-min"); v >= 0 {
		criteria.StockMin = v
	}
	if v, _ := cmd.Flags().GetInt("level-min"); v >= 0 {
		criteria.LevelMin = v
	}

	spin := ui.NewSpinner()
	spin.Start("Looking for the cheapest eligible offer...")
	ctx := platform.WithProgress(context.Background(), spin.Update)
	offer, found, err := scraper.BestOffer(ctx, url, criteria)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("best-offer lookup failed: %w", err)
	}

	if !found {
		fmt.Fprintln(os.Stdout, "no eligible offer")
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(offer)
	return nil
}

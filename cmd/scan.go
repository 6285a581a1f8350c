package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/namph-dev/dd373watch/internal/platform"
	"github.com/namph-dev/dd373watch/internal/ui"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [listing-url]",
	Short: "Scrape every offer on a listing page",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().String("format", "json", "Output format: json, table")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	scraper := buildScraper()

	url := args[0]
	format, _ := cmd.Flags().GetString("format")

	spin := ui.NewSpinner()
	spin.Start("Scraping listing page...")
	ctx := platform.WithProgress(context.Background(), spin.Update)
	products, err := scraper.Listings(ctx, url)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	switch format {
	case "table":
		printOffersTable(products)
	default:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(products)
	}

	return nil
}

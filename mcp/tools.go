package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/namph-dev/dd373watch/internal/models"
	"github.com/namph-dev/dd373watch/internal/platform"
)

const platformName = "dd373"

func registerTools(s *server.MCPServer) {
	// scan_listings
	scanTool := mcp.NewTool("scan_listings",
		mcp.WithDescription("Scrape every offer on a marketplace listing page"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Listing page URL"),
		),
	)
	s.AddTool(scanTool, handleScanListings)

	// best_offer
	bestTool := mcp.NewTool("best_offer",
		mcp.WithDescription("Find the cheapest eligible offer on a listing page"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Listing page URL"),
		),
		mcp.WithNumber("stock_min",
			mcp.Description("Minimum total stock (default: 0, disabled)"),
		),
		mcp.WithNumber("level_min",
			mcp.Description("Minimum seller credit rating 1-15 (default: 0, disabled)"),
		),
	)
	s.AddTool(bestTool, handleBestOffer)
}

func handleScanListings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	scraper, err := platform.Get(platformName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform error: %v", err)), nil
	}

	products, err := scraper.Listings(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan error: %v", err)), nil
	}

	data, _ := json.MarshalIndent(products, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func handleBestOffer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := request.GetString("url", "")
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	criteria := models.FilterCriteria{
		StockMin: request.GetInt("stock_min", 0),
		LevelMin: request.GetInt("level_min", 0),
	}

	scraper, err := platform.Get(platformName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("platform error: %v", err)), nil
	}

	offer, found, err := scraper.BestOffer(ctx, url, criteria)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("best-offer error: %v", err)), nil
	}
	if !found {
		return mcp.NewToolResultText(`{"found":false}`), nil
	}

	out := struct {
		Found bool             `json:"found"`
		Offer models.BestOffer `json:"offer"`
	}{Found: true, Offer: offer}

	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

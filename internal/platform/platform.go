package platform

import (
	"context"

	"github.com/namph-dev/dd373watch/internal/models"
)

// Request describes one listing-page fetch.
type Request struct {
	URL     string
	BaseURL string
}

// Result is what a strategy produced for a request.
type Result struct {
	Products []models.Product
	Strategy string
}

// Strategy is one way of turning a listing URL into product records
// (static HTTP, headless browser, ...). Strategies are tried in a
// fast-to-slow fallback chain by the platform scraper.
type Strategy interface {
	Name() string
	Execute(ctx context.Context, req Request) (*Result, error)
}

// Scraper is a marketplace listing-page scraper.
type Scraper interface {
	// Listings fetches and extracts every offer on a listing page, in
	// document order. An empty slice means the page had no offers.
	Listings(ctx context.Context, url string) ([]models.Product, error)

	// BestOffer runs the full pipeline and returns the cheapest eligible
	// offer. found is false when no offer passes the criteria; that is not
	// an error.
	BestOffer(ctx context.Context, url string, criteria models.FilterCriteria) (offer models.BestOffer, found bool, err error)
}

package dd373

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/namph-dev/dd373watch/internal/models"
	"github.com/namph-dev/dd373watch/internal/platform"
	"golang.org/x/time/rate"
)

// Scraper implements platform.Scraper for dd373-style listing pages.
//
// The fast tier fetches raw HTML over HTTP; it is cheap but loses to the
// site's JS anti-bot interstitial. The slow tier renders the page in a
// headless browser and waits the interstitial out.
type Scraper struct {
	fastStrategies []platform.Strategy
	slowStrategies []platform.Strategy
	rateLimiter    *rate.Limiter
	fastTimeout    time.Duration
}

// NewScraper builds the full strategy chain. browserBin may be empty to let
// rod locate or download a browser on its own.
func NewScraper(client *http.Client, rateLimiter *rate.Limiter, browserBin string) *Scraper {
	return &Scraper{
		fastStrategies: []platform.Strategy{
			NewStaticPageStrategy(client),
		},
		slowStrategies: []platform.Strategy{
			NewHeadlessBrowserStrategy(browserBin),
		},
		rateLimiter: rateLimiter,
		fastTimeout: 10 * time.Second,
	}
}

func (s *Scraper) Listings(ctx context.Context, url string) ([]models.Product, error) {
	req := platform.Request{
		URL:     url,
		BaseURL: BaseFromListingURL(url),
	}
	return s.executeWithFallback(ctx, req)
}

func (s *Scraper) BestOffer(ctx context.Context, url string, criteria models.FilterCriteria) (models.BestOffer, bool, error) {
	products, err := s.Listings(ctx, url)
	if err != nil {
		return models.BestOffer{}, false, err
	}
	offer, found := SelectBest(products, criteria)
	return offer, found, nil
}

// executeWithFallback races the fast strategies, then walks the slow
// strategies sequentially. A fast strategy only wins with a non-empty
// result; an empty fast result usually means the anti-bot page.
func (s *Scraper) executeWithFallback(ctx context.Context, req platform.Request) ([]models.Product, error) {
	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type strategyResult struct {
		products []models.Product
		strategy string
	}
	resultCh := make(chan strategyResult, len(s.fastStrategies))

	for _, st := range s.fastStrategies {
		go func(st platform.Strategy) {
			if s.rateLimiter != nil {
				if err := s.rateLimiter.Wait(raceCtx); err != nil {
					return
				}
			}
			r, err := st.Execute(raceCtx, req)
			if err == nil && r != nil && len(r.Products) > 0 {
				resultCh <- strategyResult{products: r.Products, strategy: st.Name()}
			}
		}(st)
	}

	select {
	case r := <-resultCh:
		cancel()
		platform.ReportProgress(ctx, fmt.Sprintf("Found %d offers via %s", len(r.products), r.strategy))
		return r.products, nil
	case <-time.After(s.fastTimeout):
		cancel()
		platform.ReportProgress(ctx, "Static fetch timed out, launching headless browser...")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var lastErr error
	for _, st := range s.slowStrategies {
		platform.ReportProgress(ctx, fmt.Sprintf("Trying %s strategy...", st.Name()))
		result, err := st.Execute(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		platform.ReportProgress(ctx, fmt.Sprintf("Found %d offers via %s", len(result.Products), st.Name()))
		// A rendered page with zero listings is a real answer, not a miss.
		return result.Products, nil
	}

	return nil, fmt.Errorf("all strategies exhausted for %s: %w", req.URL, lastErr)
}

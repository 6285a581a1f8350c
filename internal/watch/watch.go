// Package watch runs the polling loop: read watch rows from the sheet,
// scrape each listing page, and write the cheapest eligible offer back.
package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/namph-dev/dd373watch/internal/platform"
	"github.com/namph-dev/dd373watch/internal/sheet"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const timestampLayout = "02/01/2006 15:04:05"

// Options tune the polling loop.
type Options struct {
	PollInterval  time.Duration // sleep between full cycles
	RowDelay      time.Duration // sleep between rows within a cycle
	RetryCount    int           // cycle retries before giving up until next poll
	RetryDelay    time.Duration
	MaxConcurrent int // rows processed in parallel; <=1 means sequential
	RatePerSecond float64
	RateBurst     int
}

// Watcher polls the sheet's run rows against the marketplace.
type Watcher struct {
	sheet   *sheet.Client
	scraper platform.Scraper
	opts    Options
	limiter *rate.Limiter
	log     *log.Logger
}

func New(sheetClient *sheet.Client, scraper platform.Scraper, opts Options, logger *log.Logger) *Watcher {
	if opts.RetryCount < 0 {
		opts.RetryCount = 0
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), max(opts.RateBurst, 1))
	}
	return &Watcher{
		sheet:   sheetClient,
		scraper: scraper,
		opts:    opts,
		limiter: limiter,
		log:     logger,
	}
}

// Run loops forever until ctx is canceled. Cycle failures are retried with a
// delay and never abort the loop.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := w.cycleWithRetry(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Error("cycle failed, will retry next poll", "err", err)
		}

		w.log.Info("cycle done, sleeping", "interval", w.opts.PollInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.opts.PollInterval):
		}
	}
}

func (w *Watcher) cycleWithRetry(ctx context.Context) error {
	var lastErr error
	for attempt := 0; attempt <= w.opts.RetryCount; attempt++ {
		if attempt > 0 {
			w.log.Warn("retrying cycle", "attempt", attempt, "delay", w.opts.RetryDelay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.opts.RetryDelay):
			}
		}
		if err := w.Cycle(ctx); err != nil {
			lastErr = err
			if sheet.IsQuotaError(err) {
				w.log.Warn("sheets quota exceeded, backing off", "sleep", time.Minute)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Minute):
				}
			}
			continue
		}
		return nil
	}
	return lastErr
}

// Cycle processes every run row once.
func (w *Watcher) Cycle(ctx context.Context) error {
	indexes, err := w.sheet.RunRowIndexes(ctx)
	if err != nil {
		return fmt.Errorf("load run rows: %w", err)
	}
	w.log.Info("starting cycle", "rows", len(indexes))

	if w.opts.MaxConcurrent <= 1 {
		for _, idx := range indexes {
			w.processRow(ctx, idx)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.opts.RowDelay):
			}
		}
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.MaxConcurrent)
	for _, idx := range indexes {
		g.Go(func() error {
			if w.limiter != nil {
				if err := w.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			w.processRow(gctx, idx)
			return nil
		})
	}
	return g.Wait()
}

// processRow scrapes one row's listing and writes the outcome back. Scrape
// and write failures are logged per row; a bad row never aborts the cycle.
func (w *Watcher) processRow(ctx context.Context, index int) {
	row, err := w.sheet.RowAt(ctx, index)
	if err != nil {
		w.log.Error("bad row config", "row", index, "err", err)
		w.writeBack(ctx, index, func() error {
			return w.sheet.WriteTime(ctx, index, "Error: "+time.Now().Format(timestampLayout))
		})
		return
	}

	w.log.Info("processing row", "row", index, "url", row.ListingURL,
		"stock_min", row.Criteria.StockMin, "level_min", row.Criteria.LevelMin)

	offer, found, err := w.scraper.BestOffer(ctx, row.ListingURL, row.Criteria)
	if err != nil {
		w.log.Error("scrape failed", "row", index, "err", err)
		return
	}

	status := "NOT FOUND"
	if found {
		status = "FOUND"
		w.log.Info("best offer", "row", index, "price", offer.Price, "title", offer.Title, "stock", offer.Stock)
		w.writeBack(ctx, index, func() error { return w.sheet.WriteOffer(ctx, index, offer) })
	} else {
		w.log.Info("no eligible offer", "row", index)
	}

	w.writeBack(ctx, index, func() error { return w.sheet.WriteStatus(ctx, index, status) })
	w.writeBack(ctx, index, func() error {
		return w.sheet.WriteTime(ctx, index, time.Now().Format(timestampLayout))
	})
}

func (w *Watcher) writeBack(ctx context.Context, index int, fn func() error) {
	if ctx.Err() != nil {
		return
	}
	if err := fn(); err != nil {
		w.log.Error("sheet write failed", "row", index, "err", err)
	}
}

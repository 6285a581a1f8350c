package dd373

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/namph-dev/dd373watch/internal/platform"
)

// HeadlessBrowserStrategy renders the listing page with rod so the anti-bot
// JS challenge can run to completion before extraction.
type HeadlessBrowserStrategy struct {
	browserBin  string // optional explicit browser binary
	waitTimeout time.Duration
	pollEvery   time.Duration
}

func NewHeadlessBrowserStrategy(browserBin string) *HeadlessBrowserStrategy {
	return &HeadlessBrowserStrategy{
		browserBin:  browserBin,
		waitTimeout: 15 * time.Second,
		pollEvery:   500 * time.Millisecond,
	}
}

func (h *HeadlessBrowserStrategy) Name() string { return "headless" }

func (h *HeadlessBrowserStrategy) Execute(ctx context.Context, req platform.Request) (*platform.Result, error) {
	page, cleanup, err := h.openPage(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pageHTML, err := h.waitForListingPage(ctx, page)
	if err != nil {
		return nil, err
	}

	products, err := ParseListings(pageHTML, req.BaseURL)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Strategy = "headless"
	}
	return &platform.Result{Products: products, Strategy: h.Name()}, nil
}

// waitForListingPage polls the rendered HTML until the anti-bot marker is
// gone or the deadline passes. The challenge page swaps itself out for the
// real content once its JS has run.
func (h *HeadlessBrowserStrategy) waitForListingPage(ctx context.Context, page *rod.Page) (string, error) {
	if err := page.Timeout(h.waitTimeout).WaitLoad(); err != nil {
		return "", fmt.Errorf("wait for page load: %w", err)
	}

	deadline := time.Now().Add(h.waitTimeout)
	for {
		pageHTML, err := page.HTML()
		if err != nil {
			return "", fmt.Errorf("get page HTML: %w", err)
		}
		if !strings.Contains(pageHTML, antiBotMarker) {
			return pageHTML, nil
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("timed out waiting for anti-bot challenge to clear")
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(h.pollEvery):
		}
	}
}

func (h *HeadlessBrowserStrategy) openPage(ctx context.Context, pageURL string) (*rod.Page, func(), error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Logger(io.Discard)
	if h.browserBin != "" {
		l = l.Bin(h.browserBin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		browser.Close()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1920,
		Height: 1080,
	})
	if err != nil {
		browser.Close()
		return nil, nil, fmt.Errorf("set viewport: %w", err)
	}

	cleanup := func() {
		page.Close()
		browser.Close()
		l.Cleanup()
	}

	return page, cleanup, nil
}

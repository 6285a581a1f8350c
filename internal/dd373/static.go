package dd373

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/namph-dev/dd373watch/internal/httputil"
	"github.com/namph-dev/dd373watch/internal/platform"
)

// antiBotMarker appears in the JS challenge interstitial the site serves
// before the real listing page.
const antiBotMarker = "acw_sc__v2"

// StaticPageStrategy fetches the raw listing HTML over plain HTTP.
type StaticPageStrategy struct {
	client *http.Client
}

func NewStaticPageStrategy(client *http.Client) *StaticPageStrategy {
	return &StaticPageStrategy{client: client}
}

func (s *StaticPageStrategy) Name() string { return "static" }

func (s *StaticPageStrategy) Execute(ctx context.Context, req platform.Request) (*platform.Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", req.URL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range httputil.BrowserHeaders() {
		httpReq.Header[k] = v
	}

	resp, err := httputil.DoWithRetry(s.client, httpReq, 2)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	pageHTML := string(body)
	if strings.Contains(pageHTML, antiBotMarker) {
		return nil, fmt.Errorf("static fetch hit the anti-bot interstitial")
	}

	products, err := ParseListings(pageHTML, req.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no listing containers in static HTML")
	}

	for i := range products {
		products[i].Strategy = "static"
	}
	return &platform.Result{Products: products, Strategy: s.Name()}, nil
}

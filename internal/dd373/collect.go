package dd373

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/namph-dev/dd373watch/internal/models"
	"golang.org/x/net/html"
)

// DefaultBaseURL is used to absolutize relative listing links when the page
// URL gives no better hint.
const DefaultBaseURL = "https://www.dd373.com"

// ParseListings extracts every listing fragment from a search-results page,
// in document order. A page without listing containers yields an empty slice;
// that is a normal result, not an error.
func ParseListings(pageHTML, baseURL string) ([]models.Product, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	root, err := html.Parse(strings.NewReader(pageHTML))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	var products []models.Product
	doc.Find("div.goods-list-item").Each(func(_ int, item *goquery.Selection) {
		products = append(products, ExtractProduct(item, baseURL))
	})

	return products, nil
}

// BaseFromListingURL derives the site origin from a search URL. Search pages
// live under /s-<params>.html; anything before that segment is the origin.
func BaseFromListingURL(listingURL string) string {
	if idx := strings.Index(listingURL, "/s-"); idx > 0 {
		return listingURL[:idx]
	}
	return DefaultBaseURL
}

package dd373

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/namph-dev/dd373watch/internal/models"
)

// Every field below resolves independently and best-effort: the site has
// renamed classes and reshuffled its listing layout more than once, and one
// missing field must not discard an otherwise usable offer. Fields that fail
// every resolver keep their zero value.

// stockResolver is one attempt at locating the stock count in a fragment.
type stockResolver struct {
	name string
	fn   func(item *goquery.Selection) (int, bool)
}

// stockResolvers is the ordered fallback chain for the stock field; the
// first resolver that matches wins.
var stockResolvers = []stockResolver{
	{"reputation-label", stockFromReputationLabel},
	{"reputation-bold", stockFromReputationBold},
	{"legacy-kucun", stockFromLegacySpan},
}

// rateResolver locates the buy/sell exchange-rate strings in a fragment.
type rateResolver struct {
	name string
	fn   func(item *goquery.Selection) (buy, sell string, ok bool)
}

var rateResolvers = []rateResolver{
	{"kucun-paragraphs", ratesFromKucun},
	{"legacy-width233", ratesFromLegacyRateDiv},
}

// productBuilder accumulates resolved field values; Build applies quantity
// normalization and yields the final record.
type productBuilder struct {
	p models.Product
}

// ExtractProduct turns one listing fragment into a normalized Product.
// It never fails: unresolvable fields default to zero values.
func ExtractProduct(item *goquery.Selection, baseURL string) models.Product {
	b := &productBuilder{}
	b.p.Platform = "dd373"
	b.p.ScrapedAt = time.Now()

	b.resolveTitle(item, baseURL)
	b.resolveServerInfo(item)
	b.resolvePrice(item)
	b.resolveStock(item)
	b.resolveRates(item)
	b.resolveCreditRating(item)
	b.resolvePurchaseURL(item)

	return b.Build()
}

func (b *productBuilder) resolveTitle(item *goquery.Selection, baseURL string) {
	titleElem := item.Find(".goods-list-title").First()
	if titleElem.Length() == 0 {
		return
	}
	b.p.Title = strings.TrimSpace(titleElem.Text())

	href, _ := titleElem.Attr("href")
	if href != "" && strings.HasPrefix(href, "/") {
		href = baseURL + href
	}
	b.p.URL = href

	// Product id only exists for detail-page URLs: /detail-<id>.html
	if idx := strings.Index(href, "/detail-"); idx >= 0 {
		id := href[idx+len("/detail-"):]
		if end := strings.Index(id, ".html"); end >= 0 {
			b.p.ProductID = id[:end]
		}
	}
}

func (b *productBuilder) resolveServerInfo(item *goquery.Selection) {
	container := item.Find(".game-qufu-attr").First()
	if container.Length() == 0 {
		return
	}
	var servers []string
	container.Find("a").Each(func(_ int, a *goquery.Selection) {
		if s := strings.TrimSpace(a.Text()); s != "" {
			servers = append(servers, s)
		}
	})
	b.p.ServerInfo = strings.Join(servers, "/")
}

func (b *productBuilder) resolvePrice(item *goquery.Selection) {
	priceElem := item.Find(".goods-price").First()
	if priceElem.Length() == 0 {
		return
	}
	b.p.Price = parsePriceText(priceElem.Text())
}

func (b *productBuilder) resolveStock(item *goquery.Selection) {
	for _, r := range stockResolvers {
		if n, ok := r.fn(item); ok {
			b.p.Stock = n
			return
		}
	}
}

func stockFromReputationLabel(item *goquery.Selection) (int, bool) {
	rep := item.Find(".game-reputation").First()
	if rep.Length() == 0 {
		return 0, false
	}
	return parseStockLabel(rep.Text())
}

func stockFromReputationBold(item *goquery.Selection) (int, bool) {
	bold := item.Find(".game-reputation .bold").First()
	if bold.Length() == 0 {
		return 0, false
	}
	return parseBareCount(bold.Text())
}

func stockFromLegacySpan(item *goquery.Selection) (int, bool) {
	span := item.Find(".kucun span").First()
	if span.Length() == 0 {
		return 0, false
	}
	return parseBareCount(span.Text())
}

func (b *productBuilder) resolveRates(item *goquery.Selection) {
	for _, r := range rateResolvers {
		if buy, sell, ok := r.fn(item); ok {
			b.p.ExchangeRateBuy = buy
			b.p.ExchangeRateSell = sell
			return
		}
	}
}

func ratesFromKucun(item *goquery.Selection) (string, string, bool) {
	return ratePair(item.Find(".kucun p"))
}

func ratesFromLegacyRateDiv(item *goquery.Selection) (string, string, bool) {
	return ratePair(item.Find(".width233 p"))
}

// ratePair reads the first two paragraphs of a rate container. A container
// with no paragraphs does not resolve; one with a single paragraph leaves
// the sell rate empty.
func ratePair(ps *goquery.Selection) (string, string, bool) {
	if ps.Length() == 0 {
		return "", "", false
	}
	buy := strings.TrimSpace(ps.Eq(0).Text())
	sell := ""
	if ps.Length() >= 2 {
		sell = strings.TrimSpace(ps.Eq(1).Text())
	}
	return buy, sell, true
}

// resolveCreditRating counts reputation icons. The three tiers are mutually
// exclusive by priority: hearts beat diamonds beat crowns, so a seller
// transitioning between tiers never gets a mixed score.
func (b *productBuilder) resolveCreditRating(item *goquery.Selection) {
	rep := item.Find(".game-reputation").First()
	if rep.Length() == 0 {
		return
	}
	hearts := rep.Find("i.icon-heart").Length()
	diamonds := rep.Find("i.icon-bluediamond").Length()
	crowns := rep.Find("i.icon-crown").Length()

	switch {
	case hearts > 0:
		b.p.CreditRating = hearts
	case diamonds > 0:
		b.p.CreditRating = 5 + diamonds
	case crowns > 0:
		b.p.CreditRating = 10 + crowns
	}
}

func (b *productBuilder) resolvePurchaseURL(item *goquery.Selection) {
	btn := item.Find(".shop-btn-group a.im-buy-btn").First()
	if btn.Length() == 0 {
		return
	}
	href, _ := btn.Attr("href")
	if href != "" && !strings.HasPrefix(href, "http") {
		href = "https:" + href
	}
	b.p.PurchaseURL = href
}

// Build applies quantity normalization and returns the finished record.
// A title like "1000个神圣石=100元" with a displayed stock of 2 means 2000
// sellable units at 1/1000 of the listed lot price.
func (b *productBuilder) Build() models.Product {
	p := b.p
	q := parseBundleQuantity(p.Title)
	if q > 1 {
		p.Stock *= q
		p.Price /= float64(q)
	}
	return p
}

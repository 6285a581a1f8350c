package dd373

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Scraping heuristics for the numeric fields. The listing markup has drifted
// over time, so each of these works on raw text rather than a fixed DOM shape
// and reports whether it matched at all.
var (
	// "库存： 7" or "库存:7" — full-width or half-width colon, any whitespace.
	stockLabelRe = regexp.MustCompile(`库存\s*[：:]\s*(\d+)`)
	// First integer run in a string, used for bundle quantities.
	firstIntRe = regexp.MustCompile(`\d+`)
	// Leading decimal number, used for exchange-rate values like "0.0570元".
	leadingFloatRe = regexp.MustCompile(`^[0-9]+(?:\.[0-9]+)?`)
	// Everything that is not part of a price number.
	nonPriceRe = regexp.MustCompile(`[^\d.]`)
)

// parsePriceText strips currency symbols and whitespace from a price string
// ("￥103.10" -> 103.10). Returns 0 when nothing numeric remains.
func parsePriceText(text string) float64 {
	cleaned := nonPriceRe.ReplaceAllString(text, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseStockLabel finds a labeled stock count ("库存： 7") anywhere in text.
func parseStockLabel(text string) (int, bool) {
	m := stockLabelRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseBareCount parses text that should be nothing but a number, as in the
// bolded stock spans. Surrounding whitespace is tolerated, anything else is not.
func parseBareCount(text string) (int, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// parseBundleQuantity derives the bundle quantity from a listing title.
// Titles like "1000个神圣石=100元" sell 1000 units per priced lot; the first
// integer before the "=" is the quantity. Titles without "=" (or without any
// digits before it) are single-unit lots.
func parseBundleQuantity(title string) int {
	if !strings.Contains(title, "=") {
		return 1
	}
	head := strings.SplitN(title, "=", 2)[0]
	m := firstIntRe.FindString(head)
	if m == "" {
		return 1
	}
	q, err := strconv.Atoi(m)
	if err != nil || q < 1 {
		return 1
	}
	return q
}

// parseSellRateKey extracts the sort key from a sell-rate string such as
// "1钻=0.0570元": the number after "=", trailing currency text dropped.
// Empty or malformed rates sort last via +Inf.
func parseSellRateKey(rate string) float64 {
	_, tail, found := strings.Cut(rate, "=")
	if !found {
		return math.Inf(1)
	}
	m := leadingFloatRe.FindString(strings.TrimSpace(tail))
	if m == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

package dd373

import (
	"sort"

	"github.com/namph-dev/dd373watch/internal/models"
)

// Eligible reports whether an offer meets the caller's thresholds. Both
// comparisons are inclusive, so a zero threshold disables that check.
func Eligible(p models.Product, c models.FilterCriteria) bool {
	return p.CreditRating >= c.LevelMin && p.Stock >= c.StockMin
}

// sortBySellRate returns a copy of records ordered ascending by the
// sell-rate sort key. The copy keeps caller-owned slices untouched; the
// stable sort keeps document order among equal keys.
func sortBySellRate(records []models.Product) []models.Product {
	sorted := make([]models.Product, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseSellRateKey(sorted[i].ExchangeRateSell) < parseSellRateKey(sorted[j].ExchangeRateSell)
	})
	return sorted
}

// filterEligible keeps eligible offers, preserving relative order.
func filterEligible(records []models.Product, c models.FilterCriteria) []models.Product {
	var eligible []models.Product
	for _, p := range records {
		if Eligible(p, c) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// SelectBest picks the cheapest eligible offer from a listing batch.
//
// Offers are first ordered by the exchange-rate sort key (offers without a
// parseable sell rate go last), then filtered, and the winner is the first
// offer with the minimum unit price among the survivors. Selection is by raw
// unit price, not by the sort key; the pre-filter ordering only decides ties.
// ok is false when no offer survives the filter.
func SelectBest(records []models.Product, c models.FilterCriteria) (best models.BestOffer, ok bool) {
	if len(records) == 0 {
		return models.BestOffer{}, false
	}

	survivors := filterEligible(sortBySellRate(records), c)
	if len(survivors) == 0 {
		return models.BestOffer{}, false
	}

	winner := survivors[0]
	for _, p := range survivors[1:] {
		if p.Price < winner.Price {
			winner = p
		}
	}

	return models.BestOffer{
		Price: winner.Price,
		Title: winner.Title,
		Stock: winner.Stock,
	}, true
}

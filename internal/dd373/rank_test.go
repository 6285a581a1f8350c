package dd373

import (
	"testing"

	"github.com/namph-dev/dd373watch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	p := models.Product{Stock: 10, CreditRating: 5}

	testCases := []struct {
		name     string
		criteria models.FilterCriteria
		want     bool
	}{
		{"zero criteria disable checks", models.FilterCriteria{}, true},
		{"thresholds met exactly", models.FilterCriteria{StockMin: 10, LevelMin: 5}, true},
		{"stock below threshold", models.FilterCriteria{StockMin: 11}, false},
		{"rating below threshold", models.FilterCriteria{LevelMin: 6}, false},
		{"both below", models.FilterCriteria{StockMin: 11, LevelMin: 6}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Eligible(p, tc.criteria))
		})
	}
}

func TestEligibleMonotonic(t *testing.T) {
	// Raising a threshold can only remove eligibility, never grant it.
	p := models.Product{Stock: 7, CreditRating: 8}
	for stockMin := 0; stockMin <= 10; stockMin++ {
		for levelMin := 0; levelMin <= 10; levelMin++ {
			lower := Eligible(p, models.FilterCriteria{StockMin: stockMin, LevelMin: levelMin})
			higher := Eligible(p, models.FilterCriteria{StockMin: stockMin + 1, LevelMin: levelMin + 1})
			if higher {
				assert.True(t, lower, "stockMin=%d levelMin=%d", stockMin, levelMin)
			}
		}
	}
}

func TestSelectBestEmptyInput(t *testing.T) {
	_, ok := SelectBest(nil, models.FilterCriteria{})
	assert.False(t, ok)
}

func TestSelectBestAllFiltered(t *testing.T) {
	records := []models.Product{
		{Title: "a", Price: 1, Stock: 0, CreditRating: 1},
		{Title: "b", Price: 2, Stock: 1, CreditRating: 0},
	}
	_, ok := SelectBest(records, models.FilterCriteria{StockMin: 5, LevelMin: 5})
	assert.False(t, ok)
}

func TestSelectBestExcludesIneligibleCheaperOffer(t *testing.T) {
	a := models.Product{Title: "A", Price: 10.0, Stock: 5, CreditRating: 3}
	b := models.Product{Title: "B", Price: 8.0, Stock: 0, CreditRating: 10}

	offer, ok := SelectBest([]models.Product{a, b}, models.FilterCriteria{StockMin: 1, LevelMin: 1})
	require.True(t, ok)

	// B is cheaper but out of stock; A is the only survivor.
	assert.Equal(t, 10.0, offer.Price)
	assert.Equal(t, "A", offer.Title)
	assert.Equal(t, 5, offer.Stock)
}

func TestSelectBestMinimumPriceWins(t *testing.T) {
	records := []models.Product{
		{Title: "mid", Price: 5, Stock: 9, CreditRating: 9, ExchangeRateSell: "1钻=0.05元"},
		{Title: "cheap", Price: 2, Stock: 9, CreditRating: 9, ExchangeRateSell: "1钻=0.09元"},
		{Title: "dear", Price: 8, Stock: 9, CreditRating: 9, ExchangeRateSell: "1钻=0.01元"},
	}
	offer, ok := SelectBest(records, models.FilterCriteria{StockMin: 1, LevelMin: 1})
	require.True(t, ok)

	// Selection is by unit price, not by the sell-rate sort key.
	assert.Equal(t, "cheap", offer.Title)
	assert.Equal(t, 2.0, offer.Price)
}

func TestSelectBestTieBreaksOnSellRateOrder(t *testing.T) {
	records := []models.Product{
		{Title: "slow-rate", Price: 3, Stock: 1, CreditRating: 1, ExchangeRateSell: "1钻=0.08元"},
		{Title: "fast-rate", Price: 3, Stock: 1, CreditRating: 1, ExchangeRateSell: "1钻=0.02元"},
	}
	offer, ok := SelectBest(records, models.FilterCriteria{})
	require.True(t, ok)

	// Equal prices: the pre-filter sell-rate sort decides, cheapest rate first.
	assert.Equal(t, "fast-rate", offer.Title)
}

func TestSelectBestMissingRateSortsLast(t *testing.T) {
	records := []models.Product{
		{Title: "no-rate", Price: 3, Stock: 1, CreditRating: 1},
		{Title: "rated", Price: 3, Stock: 1, CreditRating: 1, ExchangeRateSell: "1钻=0.50元"},
	}
	offer, ok := SelectBest(records, models.FilterCriteria{})
	require.True(t, ok)

	// An empty sell rate keys to +Inf and goes last, losing the price tie.
	assert.Equal(t, "rated", offer.Title)
}

func TestSelectBestDoesNotMutateInput(t *testing.T) {
	records := []models.Product{
		{Title: "z", Price: 9, Stock: 1, CreditRating: 1, ExchangeRateSell: "1钻=0.9元"},
		{Title: "a", Price: 1, Stock: 1, CreditRating: 1, ExchangeRateSell: "1钻=0.1元"},
	}
	_, _ = SelectBest(records, models.FilterCriteria{})

	assert.Equal(t, "z", records[0].Title)
	assert.Equal(t, "a", records[1].Title)
}

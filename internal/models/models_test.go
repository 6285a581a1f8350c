package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductMapRoundTrip(t *testing.T) {
	p := Product{
		Title:            "1000个神圣石=100元",
		URL:              "https://www.dd373.com/goods/detail-3052177.html",
		ProductID:        "3052177",
		ServerInfo:       "梦幻西游/电信一区",
		Price:            0.1031,
		Stock:            2000,
		ExchangeRateBuy:  "1元=17.5439钻",
		ExchangeRateSell: "1钻=0.0570元",
		CreditRating:     3,
		PurchaseURL:      "https://im.dd373.com/chat?seller=1",
		Platform:         "dd373",
		ScrapedAt:        time.Date(2025, 11, 2, 10, 30, 0, 0, time.UTC),
		Strategy:         "static",
	}

	assert.Equal(t, p, ProductFromMap(p.ToMap()))
}

func TestProductMapRoundTripZeroValue(t *testing.T) {
	var p Product
	assert.Equal(t, p, ProductFromMap(p.ToMap()))
}

func TestProductFromMapIgnoresUnknownKeys(t *testing.T) {
	m := Product{Title: "金币"}.ToMap()
	m["bogus"] = 42
	m["price"] = "not a float" // wrong type is treated as missing

	p := ProductFromMap(m)
	assert.Equal(t, "金币", p.Title)
	assert.Zero(t, p.Price)
}

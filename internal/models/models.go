package models

import "time"

// Product is one scraped marketplace offer, normalized to unit price.
type Product struct {
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	ProductID        string    `json:"product_id,omitempty"`
	ServerInfo       string    `json:"server_info,omitempty"`
	Price            float64   `json:"price"`
	Stock            int       `json:"stock"`
	ExchangeRateBuy  string    `json:"exchange_rate_buy,omitempty"`  // e.g. "1元=17.5439钻"
	ExchangeRateSell string    `json:"exchange_rate_sell,omitempty"` // e.g. "1钻=0.0570元"
	CreditRating     int       `json:"credit_rating"`                // 1-5 hearts, 6-10 diamonds, 11-15 crowns
	PurchaseURL      string    `json:"purchase_url,omitempty"`
	Platform         string    `json:"platform"`
	ScrapedAt        time.Time `json:"scraped_at"`
	Strategy         string    `json:"strategy,omitempty"`
}

// FilterCriteria holds the caller-configured eligibility thresholds.
// A threshold of zero disables that check.
type FilterCriteria struct {
	StockMin int `json:"stock_min"`
	LevelMin int `json:"level_min"`
}

// BestOffer is the result of a best-offer selection over a listing page.
type BestOffer struct {
	Price float64 `json:"price"`
	Title string  `json:"title"`
	Stock int     `json:"stock"`
}

// ToMap converts the product to a flat map, field for field.
func (p Product) ToMap() map[string]any {
	return map[string]any{
		"title":              p.Title,
		"url":                p.URL,
		"product_id":         p.ProductID,
		"server_info":        p.ServerInfo,
		"price":              p.Price,
		"stock":              p.Stock,
		"exchange_rate_buy":  p.ExchangeRateBuy,
		"exchange_rate_sell": p.ExchangeRateSell,
		"credit_rating":      p.CreditRating,
		"purchase_url":       p.PurchaseURL,
		"platform":           p.Platform,
		"scraped_at":         p.ScrapedAt,
		"strategy":           p.Strategy,
	}
}

// ProductFromMap rebuilds a Product from a map produced by ToMap.
// Unknown keys are ignored; missing keys leave the zero value.
func ProductFromMap(m map[string]any) Product {
	p := Product{}
	if v, ok := m["title"].(string); ok {
		p.Title = v
	}
	if v, ok := m["url"].(string); ok {
		p.URL = v
	}
	if v, ok := m["product_id"].(string); ok {
		p.ProductID = v
	}
	if v, ok := m["server_info"].(string); ok {
		p.ServerInfo = v
	}
	if v, ok := m["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := m["stock"].(int); ok {
		p.Stock = v
	}
	if v, ok := m["exchange_rate_buy"].(string); ok {
		p.ExchangeRateBuy = v
	}
	if v, ok := m["exchange_rate_sell"].(string); ok {
		p.ExchangeRateSell = v
	}
	if v, ok := m["credit_rating"].(int); ok {
		p.CreditRating = v
	}
	if v, ok := m["purchase_url"].(string); ok {
		p.PurchaseURL = v
	}
	if v, ok := m["platform"].(string); ok {
		p.Platform = v
	}
	if v, ok := m["scraped_at"].(time.Time); ok {
		p.ScrapedAt = v
	}
	if v, ok := m["strategy"].(string); ok {
		p.Strategy = v
	}
	return p
}

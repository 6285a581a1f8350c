package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/namph-dev/dd373watch/internal/models"
)

// printOffersTable prints offers in a human-friendly card layout.
func printOffersTable(products []models.Product) {
	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, " %d. %s\n", i+1, truncate(p.Title, 80))

		line := fmt.Sprintf("    Unit price: ￥%.4f  |  Stock: %d  |  %s", p.Price, p.Stock, ratingLabel(p.CreditRating))
		fmt.Fprintln(os.Stdout, line)

		if p.ServerInfo != "" {
			fmt.Fprintf(os.Stdout, "    Server: %s\n", p.ServerInfo)
		}
		if p.ExchangeRateBuy != "" || p.ExchangeRateSell != "" {
			fmt.Fprintf(os.Stdout, "    Rates: %s\n", strings.TrimSpace(p.ExchangeRateBuy+"  "+p.ExchangeRateSell))
		}
		if p.URL != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", p.URL)
		}
	}
}

// ratingLabel renders the three-tier credit encoding the way the site does:
// 1-5 hearts, 6-10 diamonds, 11-15 crowns.
func ratingLabel(rating int) string {
	switch {
	case rating <= 0:
		return "Rating: -"
	case rating <= 5:
		return fmt.Sprintf("Rating: %d♥", rating)
	case rating <= 10:
		return fmt.Sprintf("Rating: %d♦", rating-5)
	default:
		return fmt.Sprintf("Rating: %d♛", rating-10)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

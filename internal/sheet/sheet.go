// Package sheet reads row-level watch configuration from a Google
// spreadsheet and writes scrape results back to fixed columns.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/namph-dev/dd373watch/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Column layout of the watch sheet. Rows start at 2; row 1 is the header.
const (
	colListingURL = "C"
	colRunFlag    = "D"
	colStatus     = "E"
	colTime       = "F"
	colStockMin   = "G"
	colLevelMin   = "H"
	colPrice      = "I"
	colTitle      = "J"
	colStock      = "K"

	firstDataRow = 2
)

// Client wraps the Sheets API for one spreadsheet tab.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewClient authenticates with a service-account key file and binds to one
// spreadsheet tab.
func NewClient(ctx context.Context, keyPath, spreadsheetID, sheetName string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(keyPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// Row is one watch target: a listing URL plus its eligibility thresholds.
type Row struct {
	Index      int
	ListingURL string
	Criteria   models.FilterCriteria
}

// RunRowIndexes returns the sheet rows whose run flag is set.
func (c *Client) RunRowIndexes(ctx context.Context) ([]int, error) {
	rng := fmt.Sprintf("%s!%s%d:%s", c.sheetName, colRunFlag, firstDataRow, colRunFlag)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read run column: %w", err)
	}

	var indexes []int
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if isRunFlag(fmt.Sprint(row[0])) {
			indexes = append(indexes, firstDataRow+i)
		}
	}
	return indexes, nil
}

func isRunFlag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RUN", "ON", "1", "TRUE", "YES":
		return true
	}
	return false
}

// RowAt reads one watch row. Blank or non-numeric threshold cells fall back
// to zero, which disables that check downstream.
func (c *Client) RowAt(ctx context.Context, index int) (Row, error) {
	rng := fmt.Sprintf("%s!%s%d:%s%d", c.sheetName, colListingURL, index, colLevelMin, index)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return Row{}, fmt.Errorf("read row %d: %w", index, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return Row{}, fmt.Errorf("row %d is empty", index)
	}

	// Cells come back positionally, offset from column C.
	cells := resp.Values[0]
	cell := func(col string) string {
		i := int(col[0] - colListingURL[0])
		if i < 0 || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(cells[i]))
	}

	r := Row{
		Index:      index,
		ListingURL: cell(colListingURL),
	}
	if r.ListingURL == "" {
		return Row{}, fmt.Errorf("row %d has no listing url", index)
	}
	r.Criteria.StockMin = intCell(cell(colStockMin))
	r.Criteria.LevelMin = intCell(cell(colLevelMin))
	return r, nil
}

func intCell(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// WriteStatus writes the FOUND / NOT FOUND marker for a row.
func (c *Client) WriteStatus(ctx context.Context, index int, status string) error {
	return c.writeCell(ctx, colStatus, index, status)
}

// WriteTime writes the last-checked timestamp (or error marker) for a row.
func (c *Client) WriteTime(ctx context.Context, index int, ts string) error {
	return c.writeCell(ctx, colTime, index, ts)
}

// WriteOffer writes the winning offer's price, title and stock for a row.
func (c *Client) WriteOffer(ctx context.Context, index int, offer models.BestOffer) error {
	if err := c.writeCell(ctx, colPrice, index, offer.Price); err != nil {
		return err
	}
	if err := c.writeCell(ctx, colTitle, index, offer.Title); err != nil {
		return err
	}
	return c.writeCell(ctx, colStock, index, offer.Stock)
}

func (c *Client) writeCell(ctx context.Context, col string, index int, value any) error {
	rng := fmt.Sprintf("%s!%s%d", c.sheetName, col, index)
	vr := &sheets.ValueRange{Values: [][]any{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}
	return nil
}

// IsQuotaError reports whether err is the Sheets API telling us to back off.
func IsQuotaError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code == 403
	}
	return false
}

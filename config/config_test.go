package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()

	assert.Equal(t, "Sheet1", c.SheetName)
	assert.Equal(t, 5*time.Minute, c.PollInterval)
	assert.Equal(t, 5, c.RetryCount)
	assert.True(t, c.RespectRobots)
	assert.Equal(t, 1, c.MaxConcurrent)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DDWATCH_SPREADSHEET_ID", "sheet-id-123")
	t.Setenv("DDWATCH_SHEET_NAME", "watchlist")
	t.Setenv("DDWATCH_POLL_INTERVAL", "2m")
	t.Setenv("DDWATCH_ROW_DELAY", "3")
	t.Setenv("DDWATCH_RATE_PER_SECOND", "0.5")
	t.Setenv("DDWATCH_RESPECT_ROBOTS", "false")
	t.Setenv("DDWATCH_STOCK_MIN", "4")
	t.Setenv("DDWATCH_LEVEL_MIN", "6")

	c := DefaultConfig()
	c.LoadFromEnv()

	assert.Equal(t, "sheet-id-123", c.SpreadsheetID)
	assert.Equal(t, "watchlist", c.SheetName)
	assert.Equal(t, 2*time.Minute, c.PollInterval)
	// Bare numbers are seconds, for compatibility with older settings files.
	assert.Equal(t, 3*time.Second, c.RowDelay)
	assert.Equal(t, 0.5, c.RatePerSecond)
	assert.False(t, c.RespectRobots)
	assert.Equal(t, 4, c.StockMin)
	assert.Equal(t, 6, c.LevelMin)
}

func TestLoadFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("DDWATCH_POLL_INTERVAL", "soon")
	t.Setenv("DDWATCH_RETRY_COUNT", "many")

	c := DefaultConfig()
	c.LoadFromEnv()

	assert.Equal(t, 5*time.Minute, c.PollInterval)
	assert.Equal(t, 5, c.RetryCount)
}

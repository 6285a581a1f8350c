package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Spreadsheet
	SpreadsheetID string
	SheetName     string
	KeyPath       string // service-account JSON key

	// Polling
	PollInterval time.Duration
	RowDelay     time.Duration
	RetryCount   int
	RetryDelay   time.Duration

	// Scraping
	RatePerSecond float64
	RateBurst     int
	MaxConcurrent int
	DelayProfile  string // "cautious", "normal", "aggressive"
	RespectRobots bool
	ProxyURL      string
	BrowserBin    string

	// Fallback thresholds when a command gets no explicit flags
	StockMin int
	LevelMin int

	// MCP HTTP server
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		SheetName:     "Sheet1",
		KeyPath:       "service-account.json",
		PollInterval:  5 * time.Minute,
		RowDelay:      3 * time.Second,
		RetryCount:    5,
		RetryDelay:    15 * time.Second,
		RatePerSecond: 1.0,
		RateBurst:     2,
		MaxConcurrent: 1,
		DelayProfile:  "normal",
		RespectRobots: true,
		HTTPPort:      "8080",
	}
}

// LoadFromEnv loads .env (if present) then overrides config from DDWATCH_*
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("DDWATCH_SPREADSHEET_ID"); v != "" {
		c.SpreadsheetID = v
	}
	if v := os.Getenv("DDWATCH_SHEET_NAME"); v != "" {
		c.SheetName = v
	}
	if v := os.Getenv("DDWATCH_KEY_PATH"); v != "" {
		c.KeyPath = v
	}
	if d, ok := envDuration("DDWATCH_POLL_INTERVAL"); ok {
		c.PollInterval = d
	}
	if d, ok := envDuration("DDWATCH_ROW_DELAY"); ok {
		c.RowDelay = d
	}
	if n, ok := envInt("DDWATCH_RETRY_COUNT"); ok {
		c.RetryCount = n
	}
	if d, ok := envDuration("DDWATCH_RETRY_DELAY"); ok {
		c.RetryDelay = d
	}
	if v := os.Getenv("DDWATCH_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if n, ok := envInt("DDWATCH_RATE_BURST"); ok {
		c.RateBurst = n
	}
	if n, ok := envInt("DDWATCH_MAX_CONCURRENT"); ok {
		c.MaxConcurrent = n
	}
	if v := os.Getenv("DDWATCH_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("DDWATCH_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("DDWATCH_PROXY_URL"); v != "" {
		c.ProxyURL = v
	}
	if v := os.Getenv("DDWATCH_BROWSER_BIN"); v != "" {
		c.BrowserBin = v
	}
	if n, ok := envInt("DDWATCH_STOCK_MIN"); ok {
		c.StockMin = n
	}
	if n, ok := envInt("DDWATCH_LEVEL_MIN"); ok {
		c.LevelMin = n
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("DDWATCH_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// envDuration reads a duration env var; bare numbers are taken as seconds
// for compatibility with older settings files.
func envDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d, true
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second)), true
	}
	return 0, false
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

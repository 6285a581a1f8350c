package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/namph-dev/dd373watch/config"
	"github.com/namph-dev/dd373watch/internal/dd373"
	"github.com/namph-dev/dd373watch/internal/platform"
	"github.com/namph-dev/dd373watch/internal/stealth"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dd373watch",
	Short: "dd373watch - marketplace listing price watcher",
	Long:  "Scrapes dd373 listing pages, ranks offers by effective unit price, and tracks the cheapest eligible offer per spreadsheet row.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("delay-profile", "normal", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules")
	rootCmd.PersistentFlags().String("proxy-url", "", "Proxy URL (http, https or socks5)")
	rootCmd.PersistentFlags().String("browser-bin", "", "Headless browser binary path")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
	if v, _ := rootCmd.PersistentFlags().GetString("proxy-url"); v != "" {
		cfg.ProxyURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("browser-bin"); v != "" {
		cfg.BrowserBin = v
	}
}

// buildHTTPClient creates the stealth-wrapped HTTP client from config.
func buildHTTPClient() *http.Client {
	fpPool := stealth.NewFingerprintPool()
	delay := stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile))
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)

	baseTransport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	var proxy stealth.Proxy
	if cfg.ProxyURL != "" {
		p, err := stealth.NewURLProxy(cfg.ProxyURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ignoring bad proxy url: %v\n", err)
		} else {
			proxy = p
		}
	}

	robots := stealth.NewRobotsChecker(&http.Client{}, cfg.RespectRobots)

	transport := &stealth.Transport{
		Base:        baseTransport,
		Robots:      robots,
		Fingerprint: fpPool,
		Proxy:       proxy,
		Delay:       delay,
		RateLimiter: limiter,
	}

	return &http.Client{Transport: transport}
}

// buildScraper assembles the dd373 scraper and registers it.
func buildScraper() platform.Scraper {
	client := buildHTTPClient()
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	scraper := dd373.NewScraper(client, limiter, cfg.BrowserBin)
	platform.Register("dd373", scraper)
	return scraper
}

package crawler

import (
	"time"
)

// BrowserConfig represents the fixed configuration of every launched browser
type BrowserConfig struct {
	Bin           string
	Flags         []string
	UserAgent     string
	ActionTimeout time.Duration
}

// DefaultBrowserConfig returns the default configuration for a browser.
// Sandboxing and /dev/shm are disabled so the browser runs inside containers.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Flags: []string{
			"no-sandbox",
			"disable-dev-shm-usage",
			"ignore-certificate-errors",
			"disable-gpu",
		},
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
		ActionTimeout: 10 * time.Second,
	}
}

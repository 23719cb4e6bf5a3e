package jagriti

import (
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common/config"
)

// Element ids and endpoints of the e-Jagriti advance search page
const (
	stateSelector        = "#stateId"
	dcdrcRadioSelector   = "#radDCDRC"
	commissionSelector   = "#consumerForumId"
	advancedModeSelector = "#radMorAdvSear"
	searchBySelector     = "#searchBy"
	searchTextSelector   = "#searchText"
	captchaInputSelector = "#captcha"
	captchaImageSelector = `img[id*="captcha" i], img[src*="captcha" i]`
	searchButtonSelector = "#searchButton"
	resultsSelector      = "#reportOrde"

	statesPath      = "/e-jagriti/MasterController/getState"
	commissionsPath = "/e-jagriti/MasterController/getConsumerForum"
)

// Config holds the portal location, bounded waits and diagnostic outputs
type Config struct {
	SearchPageURL string

	// ScreenshotPath receives a full-page capture whenever a search fails
	ScreenshotPath string
	// CaptchaImagePath receives a copy of the CAPTCHA before the operator is asked
	CaptchaImagePath string
	// CaptchaHeadless runs searches without a visible window
	CaptchaHeadless bool

	DiagnosticsBucket string
	DiagnosticsPrefix string

	ReadyTimeout       time.Duration
	ResultsTimeout     time.Duration
	SettleDelay        time.Duration
	CommissionWait     time.Duration
	CommissionFallback time.Duration
	AdvancedModeDelay  time.Duration
}

// DefaultConfig returns the portal defaults
func DefaultConfig() Config {
	return Config{
		SearchPageURL:      "https://e-jagriti.gov.in/advance-case-search",
		ScreenshotPath:     "error_screenshot.png",
		CaptchaImagePath:   "captcha.png",
		DiagnosticsPrefix:  "jagriti/screenshots",
		ReadyTimeout:       20 * time.Second,
		ResultsTimeout:     30 * time.Second,
		SettleDelay:        2 * time.Second,
		CommissionWait:     5 * time.Second,
		CommissionFallback: 1 * time.Second,
		AdvancedModeDelay:  500 * time.Millisecond,
	}
}

// ConfigFromApp builds the navigator configuration from the service configuration
func ConfigFromApp(cfg config.Config) Config {
	return Config{
		SearchPageURL:      cfg.Portal.SearchPageURL,
		ScreenshotPath:     cfg.Portal.ScreenshotPath,
		CaptchaImagePath:   cfg.Portal.CaptchaImagePath,
		CaptchaHeadless:    cfg.Browser.CaptchaHeadless,
		DiagnosticsBucket:  cfg.GCS.Bucket,
		DiagnosticsPrefix:  cfg.Portal.DiagnosticsPrefix,
		ReadyTimeout:       cfg.Portal.ReadyTimeout,
		ResultsTimeout:     cfg.Portal.ResultsTimeout,
		SettleDelay:        cfg.Portal.SettleDelay,
		CommissionWait:     cfg.Portal.CommissionWait,
		CommissionFallback: cfg.Portal.CommissionFallback,
		AdvancedModeDelay:  cfg.Portal.AdvancedModeDelay,
	}
}

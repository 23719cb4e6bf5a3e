package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func loadEnvString(key string, result *string) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	*result = s
}

func loadEnvUint(key string, result *uint) {
	s, ok := os.LookupEnv(key)

	if !ok {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	*result = uint(n)
}

func loadEnvBool(key string, result *bool) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return
	}
	*result = b
}

func loadEnvDuration(key string, result *time.Duration) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return
	}
	*result = d
}

/* Configuration */

/* PgSQL Configuration */
type pgSqlConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     uint   `json:"port"`
	Database string `json:"database"`
	SslMode  string `json:"ssl_mode"`
	User     string `json:"user"`
	Password string `json:"-"`
}

func (p pgSqlConfig) ConnStr() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s database=%s sslmode=%s", p.Host, p.Port, p.User, p.Password, p.Database, p.SslMode)
}

func defaultPgSql() pgSqlConfig {
	return pgSqlConfig{
		Enabled:  false,
		Host:     "localhost",
		Port:     5432,
		Database: "database",
		User:     "",
		Password: "",
		SslMode:  "disable",
	}
}

func (p *pgSqlConfig) loadFromEnv() {
	loadEnvBool("POSTGRES_ENABLED", &p.Enabled)
	loadEnvString("POSTGRES_HOST", &p.Host)
	loadEnvUint("POSTGRES_PORT", &p.Port)
	loadEnvString("POSTGRES_DB_NAME", &p.Database)
	loadEnvString("POSTGRES_SSLMODE", &p.SslMode)
	loadEnvString("POSTGRES_USERNAME", &p.User)
	loadEnvString("POSTGRES_PASSWORD", &p.Password)
}

/* Listen Configuration */

type listenConfig struct {
	Host string `json:"host"`
	Port uint   `json:"port"`
}

func (l listenConfig) Addr() string {
	return fmt.Sprintf("%s:%d", l.Host, l.Port)
}

func defaultListenConfig() listenConfig {
	return listenConfig{
		Host: "127.0.0.1",
		Port: 8080,
	}
}

func (l *listenConfig) loadFromEnv() {
	loadEnvString("LISTEN_HOST", &l.Host)
	loadEnvUint("LISTEN_PORT", &l.Port)
}

// serverConfig holds HTTP timeouts. A case search waits on a human solving
// the CAPTCHA, so the defaults are far longer than a typical API.
type serverConfig struct {
	RequestTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

func defaultServerConfig() serverConfig {
	return serverConfig{
		RequestTimeout: 10 * time.Minute,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   11 * time.Minute,
		IdleTimeout:    60 * time.Second,
	}
}

func (s *serverConfig) loadFromEnv() {
	loadEnvDuration("SERVER_REQUEST_TIMEOUT", &s.RequestTimeout)
	loadEnvDuration("SERVER_READ_TIMEOUT", &s.ReadTimeout)
	loadEnvDuration("SERVER_WRITE_TIMEOUT", &s.WriteTimeout)
	loadEnvDuration("SERVER_IDLE_TIMEOUT", &s.IdleTimeout)
}

type securityConfig struct {
	BackendApiKey string
}

func (s *securityConfig) loadFromEnv() {
	s.BackendApiKey = getEnv("BACKEND_API_KEY", "")
}

func defaultSecurityConfig() securityConfig {
	return securityConfig{
		BackendApiKey: "",
	}
}

type GCSConfig struct {
	ProjectID       string
	CredentialsFile string
	Bucket          string
}

// Enabled reports whether diagnostics should be uploaded to GCS.
func (g GCSConfig) Enabled() bool {
	return g.Bucket != "" && g.CredentialsFile != ""
}

func (g *GCSConfig) loadFromEnv() {
	g.ProjectID = getEnv("GCS_PROJECT_ID", "")
	g.CredentialsFile = getEnv("GCS_CREDENTIALS_FILE", "")
	g.Bucket = getEnv("GCS_STORAGE_BUCKET", "")
}

func defaultGcsConfig() GCSConfig {
	return GCSConfig{
		ProjectID:       "",
		CredentialsFile: "",
		Bucket:          "",
	}
}

/* Browser Configuration */

type browserConfig struct {
	Bin             string
	UserAgent       string
	CaptchaHeadless bool
}

func defaultBrowserConfig() browserConfig {
	return browserConfig{
		Bin:             "",
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
		CaptchaHeadless: false,
	}
}

func (b *browserConfig) loadFromEnv() {
	loadEnvString("BROWSER_BIN", &b.Bin)
	loadEnvString("BROWSER_USER_AGENT", &b.UserAgent)
	loadEnvBool("CAPTCHA_HEADLESS", &b.CaptchaHeadless)
}

/* Portal Configuration */

type portalConfig struct {
	SearchPageURL      string
	ScreenshotPath     string
	CaptchaImagePath   string
	DiagnosticsPrefix  string
	ReadyTimeout       time.Duration
	ResultsTimeout     time.Duration
	SettleDelay        time.Duration
	CommissionWait     time.Duration
	CommissionFallback time.Duration
	AdvancedModeDelay  time.Duration
}

func defaultPortalConfig() portalConfig {
	return portalConfig{
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

func (p *portalConfig) loadFromEnv() {
	loadEnvString("PORTAL_SEARCH_PAGE_URL", &p.SearchPageURL)
	loadEnvString("PORTAL_SCREENSHOT_PATH", &p.ScreenshotPath)
	loadEnvString("PORTAL_CAPTCHA_IMAGE_PATH", &p.CaptchaImagePath)
	loadEnvString("PORTAL_DIAGNOSTICS_PREFIX", &p.DiagnosticsPrefix)
	loadEnvDuration("PORTAL_READY_TIMEOUT", &p.ReadyTimeout)
	loadEnvDuration("PORTAL_RESULTS_TIMEOUT", &p.ResultsTimeout)
	loadEnvDuration("PORTAL_SETTLE_DELAY", &p.SettleDelay)
	loadEnvDuration("PORTAL_COMMISSION_WAIT", &p.CommissionWait)
	loadEnvDuration("PORTAL_COMMISSION_FALLBACK", &p.CommissionFallback)
	loadEnvDuration("PORTAL_ADVANCED_MODE_DELAY", &p.AdvancedModeDelay)
}

type logConfig struct {
	Level  string
	Pretty bool
}

func defaultLogConfig() logConfig {
	return logConfig{
		Level:  "info",
		Pretty: true,
	}
}

func (l *logConfig) loadFromEnv() {
	loadEnvString("LOG_LEVEL", &l.Level)
	loadEnvBool("LOG_PRETTY", &l.Pretty)
}

type Config struct {
	Listen   listenConfig
	Server   serverConfig
	PgSql    pgSqlConfig
	Security securityConfig
	GCS      GCSConfig
	Browser  browserConfig
	Portal   portalConfig
	Log      logConfig
}

func (c *Config) LoadFromEnv() {
	c.Listen.loadFromEnv()
	c.Server.loadFromEnv()
	c.PgSql.loadFromEnv()
	c.Security.loadFromEnv()
	c.GCS.loadFromEnv()
	c.Browser.loadFromEnv()
	c.Portal.loadFromEnv()
	c.Log.loadFromEnv()
}

func DefaultConfig() Config {
	return Config{
		Listen:   defaultListenConfig(),
		Server:   defaultServerConfig(),
		PgSql:    defaultPgSql(),
		Security: defaultSecurityConfig(),
		GCS:      defaultGcsConfig(),
		Browser:  defaultBrowserConfig(),
		Portal:   defaultPortalConfig(),
		Log:      defaultLogConfig(),
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common/config"
	"github.com/LexiconIndonesia/jagriti-case-service/common/crawler"
	"github.com/LexiconIndonesia/jagriti-case-service/common/db"
	"github.com/LexiconIndonesia/jagriti-case-service/common/logger"
	"github.com/LexiconIndonesia/jagriti-case-service/common/storage"
	"github.com/LexiconIndonesia/jagriti-case-service/crawlers/jagriti"

	"github.com/rs/zerolog/log"

	"github.com/joho/godotenv"

	_ "github.com/LexiconIndonesia/jagriti-case-service/docs"
)

// @title       Jagriti Case Service API
// @version     1.0
// @description Proxies state, commission and case search queries against the e-Jagriti portal.

// @host     localhost:8080
// @BasePath /
// @schemes  http https

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-API-KEY

func main() {
	// INITIATE CONFIGURATION
	envErr := godotenv.Load()

	cfg := config.DefaultConfig()
	cfg.LoadFromEnv()

	logger.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if envErr != nil {
		log.Warn().Err(envErr).Msg("Error loading .env file, using environment variables")
	}

	// Create a base context with cancel for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// INITIATE DATABASE (optional log sink)
	var dbConn *db.DB
	if cfg.PgSql.Enabled {
		conn, err := db.SetupDatabase(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup database")
		}
		dbConn = conn
		defer dbConn.Close()

		logger.InitializeLogging(dbConn)
		log.Info().Msg("Zerolog database hooks initialized")
	}

	// INITIATE BROWSER AUTOMATION
	browserCfg := crawler.DefaultBrowserConfig()
	browserCfg.Bin = cfg.Browser.Bin
	browserCfg.UserAgent = cfg.Browser.UserAgent

	var opts []jagriti.Option
	if cfg.GCS.Enabled() {
		gcsStorage, err := storage.NewGCSStorage(ctx, storage.GCSConfig{
			ProjectID:       cfg.GCS.ProjectID,
			CredentialsFile: cfg.GCS.CredentialsFile,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to setup GCS storage")
		}
		defer gcsStorage.Close()

		opts = append(opts, jagriti.WithDiagnosticsStorage(gcsStorage))
		log.Info().Str("bucket", cfg.GCS.Bucket).Msg("Diagnostic screenshots will be uploaded to GCS")
	}

	navigator := jagriti.NewNavigator(
		crawler.NewRodLauncher(browserCfg),
		jagriti.NewTerminalSolver(os.Stdin, os.Stdout),
		jagriti.ConfigFromApp(cfg),
		opts...,
	)

	// INITIATE SERVER
	server, err := NewAppHttpServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create the server")
	}

	// Inject dependencies
	server.SetPortal(navigator)
	server.SetLogService(logger.NewLogService(dbConn))

	// Setup routes
	server.setupRoute()

	// Start server in a goroutine
	go func() {
		if err := server.start(); err != nil {
			log.Error().Err(err).Msg("Server error")
			shutdown <- syscall.SIGTERM
		}
	}()

	log.Info().Str("address", cfg.Listen.Addr()).Msg("Server started successfully")
	log.Info().Str("swagger", fmt.Sprintf("http://%s/swagger/index.html", cfg.Listen.Addr())).Msg("Swagger documentation available at")

	// Wait for shutdown signal
	<-shutdown
	log.Info().Msg("Shutdown signal received")
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server gracefully stopped")
}

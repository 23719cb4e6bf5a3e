package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/LexiconIndonesia/jagriti-case-service/common/config"
	"github.com/LexiconIndonesia/jagriti-case-service/common/logger"
	"github.com/LexiconIndonesia/jagriti-case-service/handler"
	"github.com/LexiconIndonesia/jagriti-case-service/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type AppHttpServer struct {
	router     *chi.Mux
	cfg        config.Config
	server     *http.Server
	portal     handler.PortalService
	logService *logger.LogService
}

func NewAppHttpServer(cfg config.Config) (*AppHttpServer, error) {
	r := chi.NewRouter()

	// Basic CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-KEY"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// A case search blocks until an operator types the CAPTCHA, so the
	// request timeout is configured rather than fixed.
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	server := &AppHttpServer{
		router: r,
		cfg:    cfg,
	}
	return server, nil
}

// SetPortal sets the portal automation dependency
func (s *AppHttpServer) SetPortal(portal handler.PortalService) {
	s.portal = portal
}

// SetLogService sets the log persistence dependency
func (s *AppHttpServer) SetLogService(logService *logger.LogService) {
	s.logService = logService
}

func (s *AppHttpServer) setupRoute() {
	r := s.router

	if s.logService == nil {
		s.logService = logger.NewLogService(nil)
	}

	// API Documentation with Swagger
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // The URL pointing to API definition
	))

	// Public endpoints (no authentication required)
	r.Get("/", handler.Welcome)
	r.Mount("/health", handler.NewHealthHandler(s.logService).Router())

	r.Group(func(r chi.Router) {
		r.Use(middlewares.ApiKey(s.cfg.Security.BackendApiKey))

		r.Mount("/states", handler.NewStateHandler(s.portal).Router())
		r.Mount("/commissions", handler.NewCommissionHandler(s.portal).Router())
		r.Mount("/cases", handler.NewCaseHandler(s.portal).Router())
	})
}

func (s *AppHttpServer) start() error {
	r := s.router
	cfg := s.cfg
	log.Info().Msg("Starting up server...")

	s.server = &http.Server{
		Addr:         cfg.Listen.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// This starts the server in a goroutine from main
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// stop gracefully shuts down the server
func (s *AppHttpServer) stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

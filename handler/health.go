package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/LexiconIndonesia/jagriti-case-service/common"
	"github.com/LexiconIndonesia/jagriti-case-service/common/logger"
	"github.com/LexiconIndonesia/jagriti-case-service/common/models"
	"github.com/LexiconIndonesia/jagriti-case-service/common/utils"
	"github.com/go-chi/chi/v5"
)

// Welcome godoc
// @Summary Service banner
// @Tags    health
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Router  / [get]
func Welcome(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.StatusResponse{
		Status:  "ok",
		Message: "Welcome to the Jagriti Scraper API!",
	})
}

type HealthHandler struct {
	logService *logger.LogService
	router     *chi.Mux
}

func NewHealthHandler(logService *logger.LogService) *HealthHandler {
	h := &HealthHandler{
		logService: logService,
	}

	r := chi.NewRouter()
	r.Get("/", h.handleHealthCheck)
	r.Get("/database", h.handleDatabaseHealth)

	h.router = r
	return h
}

func (h *HealthHandler) Router() *chi.Mux {
	return h.router
}

func (h *HealthHandler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   common.AppName,
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *HealthHandler) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	if !h.logService.Enabled() {
		utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"database": map[string]interface{}{
				"status": "disabled",
			},
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbErr := h.logService.CheckDatabaseHealth(ctx)
	dbStats := h.logService.GetDatabaseStats()

	database := map[string]interface{}{
		"status": "healthy",
		"stats":  dbStats,
	}
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"database":  database,
	}

	if dbErr != nil {
		response["status"] = "unhealthy"
		database["status"] = "unhealthy"
		database["error"] = dbErr.Error()
		utils.WriteJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

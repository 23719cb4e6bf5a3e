package handler

import (
	"encoding/json"
	"net/http"

	"github.com/LexiconIndonesia/jagriti-case-service/common/utils"
	"github.com/LexiconIndonesia/jagriti-case-service/crawlers/jagriti"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

type CaseHandler struct {
	svc      PortalService
	validate *validator.Validate
	router   *chi.Mux
}

// NewCaseHandler registers one POST /by-<category> route per search category
func NewCaseHandler(svc PortalService) *CaseHandler {
	router := chi.NewRouter()

	h := &CaseHandler{
		svc:      svc,
		validate: validator.New(),
		router:   router,
	}

	for _, category := range jagriti.SearchCategories {
		router.Post("/by-"+category.Key, h.handleSearch(category))
	}
	return h
}

func (h *CaseHandler) Router() *chi.Mux {
	return h.router
}

// handleSearch godoc
// @Summary     Search cases
// @Description Resolves state and commission names, then runs an advanced search. Blocks until an operator solves the CAPTCHA.
// @Tags        cases
// @Accept      json
// @Produce     json
// @Param       category path     string                    true "Search category" Enums(case-number, complainant, respondent, complainant-advocate, respondent-advocate, industry-type, judge)
// @Param       request  body     jagriti.CaseSearchRequest true "Search request"
// @Success     200      {object} jagriti.CaseListResponse
// @Failure     400      {object} models.ErrorResponse
// @Failure     404      {object} models.ErrorResponse
// @Failure     500      {object} models.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /cases/by-{category} [post]
func (h *CaseHandler) handleSearch(category jagriti.SearchCategory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jagriti.CaseSearchRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}

		if err := h.validate.Struct(req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		stateID, commissionID, err := h.svc.ResolveLocation(r.Context(), req.State, req.Commission)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		log.Info().
			Str("category", category.Key).
			Str("stateID", stateID).
			Str("commissionID", commissionID).
			Msg("Starting case search")

		cases, err := h.svc.SearchCases(r.Context(), jagriti.SearchParams{
			StateID:      stateID,
			CommissionID: commissionID,
			Category:     category,
			Value:        req.SearchValue,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		utils.WriteJSON(w, http.StatusOK, jagriti.CaseListResponse{Cases: cases})
	}
}

package handler

import (
	"net/http"

	"github.com/LexiconIndonesia/jagriti-case-service/common/utils"
	"github.com/LexiconIndonesia/jagriti-case-service/crawlers/jagriti"
	"github.com/go-chi/chi/v5"
)

type StateHandler struct {
	svc    PortalService
	router *chi.Mux
}

func NewStateHandler(svc PortalService) *StateHandler {
	router := chi.NewRouter()

	h := &StateHandler{
		svc:    svc,
		router: router,
	}

	router.Get("/", h.handleListStates)
	return h
}

func (h *StateHandler) Router() *chi.Mux {
	return h.router
}

// handleListStates godoc
// @Summary  List states
// @Tags     reference
// @Produce  json
// @Success  200 {object} jagriti.StateListResponse
// @Failure  500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router   /states [get]
func (h *StateHandler) handleListStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.FetchStates(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, jagriti.StateListResponse{States: states})
}

type CommissionHandler struct {
	svc    PortalService
	router *chi.Mux
}

func NewCommissionHandler(svc PortalService) *CommissionHandler {
	router := chi.NewRouter()

	h := &CommissionHandler{
		svc:    svc,
		router: router,
	}

	router.Get("/{state_id}", h.handleListCommissions)
	return h
}

func (h *CommissionHandler) Router() *chi.Mux {
	return h.router
}

// handleListCommissions godoc
// @Summary  List the district commissions of a state
// @Tags     reference
// @Produce  json
// @Param    state_id path     string true "Portal state id"
// @Success  200      {object} jagriti.CommissionListResponse
// @Failure  500      {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router   /commissions/{state_id} [get]
func (h *CommissionHandler) handleListCommissions(w http.ResponseWriter, r *http.Request) {
	stateID := chi.URLParam(r, "state_id")

	commissions, err := h.svc.FetchCommissions(r.Context(), stateID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, jagriti.CommissionListResponse{Commissions: commissions})
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/LexiconIndonesia/jagriti-case-service/common/crawler"
	"github.com/LexiconIndonesia/jagriti-case-service/common/utils"
	"github.com/LexiconIndonesia/jagriti-case-service/crawlers/jagriti"
	"github.com/rs/zerolog/log"
)

// PortalService is the portal automation the handlers depend on
type PortalService interface {
	FetchStates(ctx context.Context) ([]jagriti.State, error)
	FetchCommissions(ctx context.Context, stateID string) ([]jagriti.Commission, error)
	ResolveLocation(ctx context.Context, stateName, commissionName string) (string, string, error)
	SearchCases(ctx context.Context, params jagriti.SearchParams) ([]jagriti.Case, error)
}

var _ PortalService = (*jagriti.Navigator)(nil)

// writeServiceError maps portal failures onto HTTP statuses. When the request
// deadline has passed nothing is written: the timeout middleware answers 504.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(r.Context().Err(), context.DeadlineExceeded):
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Portal request abandoned at the request deadline")
	case errors.Is(err, crawler.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, crawler.ErrUnknownSearchCategory):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Portal request failed")
		utils.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

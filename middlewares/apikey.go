package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/LexiconIndonesia/jagriti-case-service/common/utils"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// ApiKeyHeader carries the shared secret on protected routes
const ApiKeyHeader = "X-API-KEY"

// ApiKey rejects requests whose X-API-KEY header does not match key.
// An empty key disables the check.
func ApiKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(ApiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				log.Warn().
					Str("requestID", middleware.GetReqID(r.Context())).
					Str("path", r.URL.Path).
					Msg("Rejected request with invalid API key")
				utils.WriteError(w, http.StatusUnauthorized, "invalid or missing API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

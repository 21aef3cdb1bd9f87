package httpapi

import (
	"net/http"

	"github.com/cricstack/fantasy-core/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerReadRoutes(mux, handler)
	registerAdminRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leaderboard", handler.OverallLeaderboard)
	mux.HandleFunc("GET /v1/matches/{matchID}/leaderboard", handler.MatchLeaderboard)
	mux.HandleFunc("GET /v1/players/{playerID}/trend", handler.PlayerTrend)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/admin/sync", handler.ForceSync)
	mux.HandleFunc("POST /v1/admin/sync/search", handler.SearchAndSync)
	mux.HandleFunc("POST /v1/admin/backfill", handler.RunBackfill)
	mux.HandleFunc("POST /v1/admin/performances", handler.IngestPerformance)
	mux.HandleFunc("POST /v1/matches/{matchID}/score", handler.ScoreMatch)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

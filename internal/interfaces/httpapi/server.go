package httpapi

import (
	"log/slog"
	"net/http"
)

func NewRouter(handler *Handler, logger *slog.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)

	mux.HandleFunc("POST /v1/matchdays", handler.IngestMatchday)
	mux.HandleFunc("GET /v1/matchdays/{date}", handler.GetMatchday)
	mux.HandleFunc("GET /v1/matchdays/{date}/summary", handler.GetMatchdaySummary)
	mux.HandleFunc("POST /v1/matchdays/{date}/teams", handler.GenerateTeams)

	mux.HandleFunc("GET /v1/rankings/{rankerID}/template", handler.GetRankingTemplate)
	mux.HandleFunc("PUT /v1/rankings/{rankerID}", handler.SubmitRankings)

	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{name}", handler.GetPlayer)
	mux.HandleFunc("POST /v1/players", handler.AddPlayer)
	mux.HandleFunc("PATCH /v1/players/{name}", handler.EditPlayer)
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

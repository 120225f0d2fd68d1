package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/brewscout/brewscout/internal/application/handlers"
	"github.com/brewscout/brewscout/internal/domain/services"
)

// RouterDependencies collects handler dependencies.
type RouterDependencies struct {
	Cafes          *handlers.CafeHandler
	Search         *handlers.SearchHandler
	Reviews        *handlers.ReviewHandler
	Recommend      *services.RecommendService
	Health         HealthService
	AllowedOrigins []string
}

// NewRouter wires the HTTP routes exposed by the API.
func NewRouter(logger *slog.Logger, deps RouterDependencies) http.Handler {
	api := newAPIHandlers(logger, deps)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", api.handleHealth)
	mux.HandleFunc("/api/cafes", api.handleCafes)
	mux.HandleFunc("/api/cafes/", api.handleCafeByID)
	mux.HandleFunc("/api/reviews/", api.handleReviewByID)
	mux.HandleFunc("/api/mood", api.handleMood)
	mux.HandleFunc("/api/trending", api.handleTrending)
	mux.HandleFunc("/api/favorites", api.handleFavorites)

	handler := sessionMiddleware(mux)
	handler = loggingMiddleware(logger, handler)

	c := cors.New(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type", "X-User-ID", "X-User-Email", "X-User-Name", "X-User-Admin",
		},
	})
	return c.Handler(handler)
}

func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

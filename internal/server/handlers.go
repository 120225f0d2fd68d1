package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/brewscout/brewscout/internal/application/handlers"
	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/services"
)

// apiHandlers exposes HTTP handlers for the REST API.
type apiHandlers struct {
	logger    *slog.Logger
	cafes     *handlers.CafeHandler
	search    *handlers.SearchHandler
	reviews   *handlers.ReviewHandler
	recommend *services.RecommendService
	health    HealthService
	auth      ContextAuthenticator
}

func newAPIHandlers(logger *slog.Logger, deps RouterDependencies) *apiHandlers {
	return &apiHandlers{
		logger:    logger,
		cafes:     deps.Cafes,
		search:    deps.Search,
		reviews:   deps.Reviews,
		recommend: deps.Recommend,
		health:    deps.Health,
	}
}

func (h *apiHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	payload := map[string]any{"status": "ok"}

	if h.health != nil {
		if err := h.health.Probe(r.Context()); err != nil {
			h.logger.Error("health probe failed", "error", err)
			status = http.StatusServiceUnavailable
			payload["status"] = "degraded"
			payload["error"] = err.Error()
		}
	}
	respondJSON(w, status, payload)
}

func (h *apiHandlers) handleCafes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.searchCafes(w, r)
	case http.MethodPost:
		h.createCafe(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *apiHandlers) searchCafes(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	if params.Get("quick") == "true" {
		result, err := h.search.HandleQuickSearch(r.Context(), params.Get("q"))
		if err != nil {
			h.writeServiceError(w, r, err, "quick search failed")
			return
		}
		respondJSON(w, http.StatusOK, result)
		return
	}

	query := services.Query{
		Text:  params.Get("q"),
		Sort:  services.ParseSortKey(params.Get("sort")),
		Limit: services.DefaultLimit,
		Filters: services.Filters{
			Price:     entities.PriceTier(params.Get("price")),
			Amenity:   params.Get("amenity"),
			OpenNow:   params.Get("open_now") == "true",
			AdminOnly: params.Get("admin_only") == "true",
		},
	}
	if raw := params.Get("min_rating"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "min_rating must be a number")
			return
		}
		query.Filters.MinRating = value
	}
	if raw := params.Get("min_wifi"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "min_wifi must be a number")
			return
		}
		query.Filters.MinWifiSpeed = value
	}
	if raw := params.Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		query.Limit = value
	}

	result, err := h.search.HandleSearch(r.Context(), query)
	if err != nil {
		h.writeServiceError(w, r, err, "search failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *apiHandlers) createCafe(w http.ResponseWriter, r *http.Request) {
	var cafe entities.Cafe
	if err := json.NewDecoder(r.Body).Decode(&cafe); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.cafes.HandleCreate(r.Context(), cafe)
	if err != nil {
		h.writeServiceError(w, r, err, "creating cafe failed")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// handleCafeByID dispatches /api/cafes/{id} and its subresources.
func (h *apiHandlers) handleCafeByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/cafes/"), "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "cafe ID is required")
		return
	}

	id, sub, _ := strings.Cut(rest, "/")
	switch sub {
	case "":
		h.cafeByID(w, r, id)
	case "reviews":
		h.cafeReviews(w, r, id)
	case "featured":
		h.setFeatured(w, r, id)
	case "favorite":
		h.toggleFavorite(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *apiHandlers) cafeByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		cafe, err := h.cafes.HandleGet(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, r, err, "fetching cafe failed")
			return
		}
		respondJSON(w, http.StatusOK, cafe)
	case http.MethodPatch:
		var updates entities.Cafe
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cafe, err := h.cafes.HandleUpdate(r.Context(), id, updates)
		if err != nil {
			h.writeServiceError(w, r, err, "updating cafe failed")
			return
		}
		respondJSON(w, http.StatusOK, cafe)
	case http.MethodDelete:
		if err := h.cafes.HandleDelete(r.Context(), id); err != nil {
			h.writeServiceError(w, r, err, "deleting cafe failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (h *apiHandlers) cafeReviews(w http.ResponseWriter, r *http.Request, cafeID string) {
	switch r.Method {
	case http.MethodGet:
		reviews, err := h.reviews.HandleListForCafe(r.Context(), cafeID)
		if err != nil {
			h.writeServiceError(w, r, err, "listing reviews failed")
			return
		}
		if reviews == nil {
			reviews = []entities.Review{}
		}
		respondJSON(w, http.StatusOK, map[string]any{"reviews": reviews})
	case http.MethodPost:
		var draft entities.Review
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		review, err := h.reviews.HandleSubmit(r.Context(), cafeID, draft)
		if err != nil {
			h.writeServiceError(w, r, err, "submitting review failed")
			return
		}
		respondJSON(w, http.StatusCreated, review)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *apiHandlers) setFeatured(w http.ResponseWriter, r *http.Request, cafeID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var body struct {
		Featured bool `json:"featured"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cafe, err := h.cafes.HandleSetFeatured(r.Context(), cafeID, body.Featured)
	if err != nil {
		h.writeServiceError(w, r, err, "setting featured failed")
		return
	}
	respondJSON(w, http.StatusOK, cafe)
}

func (h *apiHandlers) toggleFavorite(w http.ResponseWriter, r *http.Request, cafeID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	session, err := h.auth.Current(r.Context())
	if err != nil || session == nil {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	favorited, err := h.recommend.ToggleFavorite(r.Context(), session.User.ID, cafeID)
	if err != nil {
		h.writeServiceError(w, r, err, "toggling favorite failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"cafe_id": cafeID, "favorited": favorited})
}

// handleReviewByID dispatches /api/reviews/{id} and its subresources.
func (h *apiHandlers) handleReviewByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/reviews/"), "/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	id, sub, _ := strings.Cut(rest, "/")
	switch sub {
	case "":
		h.reviewByID(w, r, id)
	case "helpful":
		h.markHelpful(w, r, id)
	case "respond":
		h.respondToReview(w, r, id)
	case "report":
		h.reportReview(w, r, id)
	case "approve":
		h.approveReview(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *apiHandlers) reviewByID(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPatch:
		var update services.ReviewUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		review, err := h.reviews.HandleEdit(r.Context(), id, update)
		if err != nil {
			h.writeServiceError(w, r, err, "editing review failed")
			return
		}
		respondJSON(w, http.StatusOK, review)
	case http.MethodDelete:
		if err := h.reviews.HandleDelete(r.Context(), id); err != nil {
			h.writeServiceError(w, r, err, "deleting review failed")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, http.MethodPatch, http.MethodDelete)
	}
}

func (h *apiHandlers) markHelpful(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var body struct {
		Helpful *bool `json:"helpful"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	helpful := true
	if body.Helpful != nil {
		helpful = *body.Helpful
	}

	review, err := h.reviews.HandleToggleHelpful(r.Context(), id, helpful)
	if err != nil {
		h.writeServiceError(w, r, err, "marking review helpful failed")
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *apiHandlers) respondToReview(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var body struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviews.HandleRespond(r.Context(), id, body.Author, body.Text)
	if err != nil {
		h.writeServiceError(w, r, err, "responding to review failed")
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (h *apiHandlers) reportReview(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if err := h.reviews.HandleReport(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "reporting review failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *apiHandlers) approveReview(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if err := h.reviews.HandleApprove(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "approving review failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *apiHandlers) handleMood(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.search.HandleMood(r.Context(), body.Prompt)
	if err != nil {
		h.writeServiceError(w, r, err, "mood search failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *apiHandlers) handleTrending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	cafes, err := h.recommend.Trending(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "fetching trending cafes failed")
		return
	}
	if cafes == nil {
		cafes = []entities.Cafe{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"cafes": cafes})
}

func (h *apiHandlers) handleFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	session, err := h.auth.Current(r.Context())
	if err != nil || session == nil {
		writeError(w, http.StatusUnauthorized, "sign in required")
		return
	}

	cafeIDs, err := h.recommend.Favorites(r.Context(), session.User.ID)
	if err != nil {
		h.writeServiceError(w, r, err, "listing favorites failed")
		return
	}
	if cafeIDs == nil {
		cafeIDs = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"cafe_ids": cafeIDs})
}

// writeServiceError maps domain errors to HTTP status codes.
func (h *apiHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, entities.ErrAuthRequired), errors.Is(err, entities.ErrAuthFailed):
		writeError(w, http.StatusUnauthorized, "sign in required")
	case errors.Is(err, entities.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg, "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewscout/brewscout/internal/application/handlers"
	"github.com/brewscout/brewscout/internal/domain/entities"
	"github.com/brewscout/brewscout/internal/domain/mocks"
	"github.com/brewscout/brewscout/internal/domain/services"
)

func testRouter(store *mocks.Store) http.Handler {
	auth := ContextAuthenticator{}
	catalog := services.NewCatalogService(store, auth)
	reviews := services.NewReviewService(store, auth)
	engine := services.NewQueryEngine()
	mood := services.NewMoodMatcher()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, RouterDependencies{
		Cafes:          handlers.NewCafeHandler(catalog),
		Search:         handlers.NewSearchHandler(catalog, engine, mood),
		Reviews:        handlers.NewReviewHandler(reviews),
		Recommend:      services.NewRecommendService(store),
		Health:         StoreHealthService{Store: store},
		AllowedOrigins: []string{"*"},
	})
}

func seedStore() *mocks.Store {
	store := mocks.NewStore()
	store.Cafes["c1"] = &entities.Cafe{
		ID: "c1", Name: "Brew & Study", Address: "12 College Road",
		Price: entities.PriceLow, Rating: 4.7, ReviewCount: 80,
		Amenities: []string{entities.AmenityWifi}, IsOpen: true, WifiSpeed: 90,
	}
	store.Cafes["c2"] = &entities.Cafe{
		ID: "c2", Name: "Sunset Roasters", Address: "Beach Road",
		Price: entities.PriceHigh, Rating: 4.1, ReviewCount: 150, IsOpen: true,
	}
	return store
}

func asUser(req *http.Request) *http.Request {
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("X-User-Name", "Priya")
	return req
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set("X-User-ID", "admin-1")
	req.Header.Set("X-User-Admin", "true")
	return req
}

func TestHealthz(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSearchCafes(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cafes?q=brew", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Cafes []entities.Cafe `json:"cafes"`
		Total int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, 1, payload.Total)
	assert.Equal(t, "c1", payload.Cafes[0].ID)
}

func TestSearchCafes_Filters(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cafes?min_rating=4.5&amenity=wifi", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.Total)
}

func TestSearchCafes_BadLimit(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cafes?limit=-3", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCafe_NotFound(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cafes/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCafe_RequiresSession(t *testing.T) {
	router := testRouter(seedStore())
	body := strings.NewReader(`{"name": "New Cafe"}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cafes", body))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCafe(t *testing.T) {
	store := seedStore()
	router := testRouter(store)
	body := strings.NewReader(`{"name": "New Cafe", "price": "$"}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/cafes", body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var created entities.Cafe
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, "user-1", created.CreatedBy.ID)
	assert.Len(t, store.Cafes, 3)
}

func TestSubmitReview_RecomputesAggregates(t *testing.T) {
	store := seedStore()
	router := testRouter(store)
	body := strings.NewReader(`{"rating": 3, "text": "Decent enough espresso."}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/cafes/c1/reviews", body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, store.Cafes["c1"].ReviewCount)
	assert.Equal(t, 3.0, store.Cafes["c1"].Rating)
}

func TestSubmitReview_Invalid(t *testing.T) {
	router := testRouter(seedStore())
	body := strings.NewReader(`{"rating": 3, "text": "short"}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/cafes/c1/reviews", body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetFeatured_AdminOnly(t *testing.T) {
	store := seedStore()
	router := testRouter(store)

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"featured": true}`)
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/cafes/c1/featured", body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	body = strings.NewReader(`{"featured": true}`)
	router.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodPost, "/api/cafes/c1/featured", body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, store.Cafes["c1"].Featured)
}

func TestMoodSearch(t *testing.T) {
	router := testRouter(seedStore())
	body := strings.NewReader(`{"prompt": "quiet cafe to study"}`)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/mood", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Rule  string          `json:"rule"`
		Cafes []entities.Cafe `json:"cafes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "quiet", payload.Rule)
	require.Len(t, payload.Cafes, 1)
	assert.Equal(t, "c1", payload.Cafes[0].ID)
}

func TestTrending(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/trending", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Cafes []entities.Cafe `json:"cafes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Cafes, 2)
	assert.Equal(t, "c2", payload.Cafes[0].ID, "most reviewed first")
}

func TestToggleFavorite(t *testing.T) {
	store := seedStore()
	router := testRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cafes/c1/favorite", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/cafes/c1/favorite", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"favorited":true`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodGet, "/api/favorites", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"c1"`)
}

func TestSearchCafes_DefaultPageCap(t *testing.T) {
	store := mocks.NewStore()
	for i := 0; i < 14; i++ {
		id := fmt.Sprintf("c%02d", i)
		store.Cafes[id] = &entities.Cafe{ID: id, Name: "Cafe " + id, Price: entities.PriceMid}
	}
	router := testRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cafes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Cafes []entities.Cafe `json:"cafes"`
		Total int             `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, services.DefaultLimit, payload.Total)
}

func TestReportReview(t *testing.T) {
	store := seedStore()
	store.Reviews["rev-1"] = &entities.Review{ID: "rev-1", CafeID: "c1", UserID: "user-2"}
	router := testRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reviews/rev-1/report", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/reviews/rev-1/report", nil)))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, store.Reviews["rev-1"].Reported)
}

func TestApproveReview_AdminOnly(t *testing.T) {
	store := seedStore()
	store.Reviews["rev-1"] = &entities.Review{ID: "rev-1", CafeID: "c1", UserID: "user-2", Reported: true}
	router := testRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asUser(httptest.NewRequest(http.MethodPost, "/api/reviews/rev-1/approve", nil)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, asAdmin(httptest.NewRequest(http.MethodPost, "/api/reviews/rev-1/approve", nil)))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, store.Reviews["rev-1"].Approved)
}

func TestMethodNotAllowed(t *testing.T) {
	router := testRouter(seedStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/cafes", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodGet)
}

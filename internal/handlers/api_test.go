package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thdgm/urlshortener/internal/handlers"
	"github.com/thdgm/urlshortener/internal/shorturl"
	"github.com/thdgm/urlshortener/internal/store"
)

type healthyChecker struct{}

func (healthyChecker) Ping(_ context.Context) error { return nil }

func setupAPI(t *testing.T, cfg handlerConfig) (*chi.Mux, *store.MemoryStore) {
	t.Helper()

	memStore := store.NewMemoryStore()

	if cfg.repo == nil {
		cfg.repo = memStore
		cfg.clicks = memStore
	}

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("URL Shortener", "1.0.0"))

	handlers.RegisterRoutes(api, newTestHandler(cfg), handlers.NewHealthHandler(healthyChecker{}))

	return router, memStore
}

func postForm(router *chi.Mux, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/link", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func get(router *chi.Mux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestAPI_CreateRedirectInfo(t *testing.T) {
	router, memStore := setupAPI(t, handlerConfig{})

	w := postForm(router, url.Values{"url": {testURL}})

	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, w.Header().Get("Location"), body["url"])

	properties, ok := body["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, properties["safe"])

	shortURL, ok := body["url"].(string)
	require.True(t, ok)
	require.Contains(t, shortURL, "/tiny-")

	id := shortURL[strings.Index(shortURL, "/tiny-")+len("/tiny-"):]

	// Redirect to the submitted URL with the stored mode
	w = get(router, "/tiny-"+id)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, testURL, w.Header().Get("Location"))
	assert.Empty(t, w.Body.String())

	// Click counts are fed by the pipeline consumer; seed directly here
	require.NoError(t, memStore.SaveClick(context.Background(), &shorturl.Click{ID: shorturl.ID(id)}))

	w = get(router, "/info/"+id)

	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["numClicks"])
	assert.Equal(t, testURL, body["uriDestino"])

	_, err := time.Parse(time.RFC3339, body["creationDate"].(string))
	assert.NoError(t, err)
}

func TestAPI_UnknownID(t *testing.T) {
	router, _ := setupAPI(t, handlerConfig{})

	for _, path := range []string{"/tiny-missing", "/info/missing"} {
		w := get(router, path)

		require.Equal(t, http.StatusNotFound, w.Code, path)

		body := decodeBody(t, w)
		assert.Equal(t, float64(http.StatusNotFound), body["statusCode"], path)
		assert.NotEmpty(t, body["message"], path)

		_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
		assert.NoError(t, err, path)
	}
}

func TestAPI_InvalidURL(t *testing.T) {
	router, _ := setupAPI(t, handlerConfig{})

	w := postForm(router, url.Values{"url": {"not a url"}})

	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(http.StatusBadRequest), body["statusCode"])
	assert.NotEmpty(t, body["message"])
	assert.NotContains(t, body, "error")
}

func TestAPI_UnreachableURL(t *testing.T) {
	router, _ := setupAPI(t, handlerConfig{
		repo:   store.NewMemoryStore(),
		clicks: store.NewMemoryStore(),
		prober: &stubProber{probeErr: shorturl.ErrNotReachable},
	})

	w := postForm(router, url.Values{"url": {testURL}})

	require.Equal(t, http.StatusBadRequest, w.Code)

	// Same status as validation failures, distinguished by the field name
	body := decodeBody(t, w)
	assert.Equal(t, float64(http.StatusBadRequest), body["statusCode"])
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "message")
}

func TestAPI_Health(t *testing.T) {
	router, _ := setupAPI(t, handlerConfig{})

	w := get(router, "/health")

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "healthy", body["redis"])
}

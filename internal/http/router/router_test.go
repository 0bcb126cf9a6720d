package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/pinterest-downloader/internal/config"
	"github.com/ignatzorin/pinterest-downloader/internal/downloader"
	"github.com/ignatzorin/pinterest-downloader/internal/http/handlers"
	"github.com/ignatzorin/pinterest-downloader/internal/metrics"
	"github.com/ignatzorin/pinterest-downloader/internal/normalize"
	"github.com/ignatzorin/pinterest-downloader/internal/service"
	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

func testConfig(upstreamURL string, timeout time.Duration) *config.Config {
	return &config.Config{
		Env:               config.EnvDevelopment,
		ServiceName:       "Pinterest Downloader API",
		DownloaderBaseURL: upstreamURL,
		DownloaderTimeout: timeout,
		AllowedOrigins:    []string{"*"},
		RateLimitLimit:    100,
		RateLimitPeriod:   time.Minute,
		MetricsEnabled:    true,
	}
}

func newTestServer(t *testing.T, upstream http.HandlerFunc, timeout time.Duration) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := httptest.NewServer(upstream)
	t.Cleanup(stub.Close)

	cfg := testConfig(stub.URL+"/downloader/pinterest", timeout)
	m := metrics.New("pin_router_test")
	validator := validation.NewPinValidator(validation.DefaultRules())
	client := downloader.NewClient(cfg.DownloaderBaseURL, cfg.DownloaderTimeout, "test", downloader.WithRecorder(m))
	downloads := service.NewDownloadService(validator, client, normalize.New())

	engine := SetupRouter(
		cfg,
		handlers.NewDownloadHandler(downloads),
		handlers.NewHealthHandler(cfg.ServiceName, time.Now()),
		handlers.NewRulesHandler(validator),
		m,
	)
	return engine
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestDownload_EndToEnd(t *testing.T) {
	var gotURL string
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		_, _ = w.Write([]byte(`{"status":true,"result":{"title":"T","media":{"url":"https://x/y.mp4"},"source_url":"https://pin.it/abc123"}}`))
	}, time.Second)

	w := get(h, "/api/download?url=https://pin.it/abc123")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://pin.it/abc123", gotURL)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "T", data["title"])
	assert.Equal(t, true, data["isVideo"])
	assert.Equal(t, "https://x/y.mp4", data["mediaUrl"])
	assert.Equal(t, "https://pin.it/abc123", data["sourceUrl"])
	assert.Equal(t, "mp4", data["extension"])
	assert.Equal(t, "HD", data["quality"])
	assert.Nil(t, data["description"])
}

func TestDownload_MissingURL(t *testing.T) {
	called := false
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) { called = true }, time.Second)

	w := get(h, "/api/download")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "URL parameter is required", decode(t, w)["message"])
	assert.False(t, called)
}

func TestDownload_InvalidURLSkipsUpstream(t *testing.T) {
	called := false
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) { called = true }, time.Second)

	w := get(h, "/api/download?url=https://example.com/pin/123")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid Pinterest URL. Please use pinterest.com/pin/... or pin.it/... format", decode(t, w)["message"])
	assert.False(t, called)
}

func TestDownload_UpstreamStatusFalse(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":false}`))
	}, time.Second)

	w := get(h, "/api/download?url=https://www.pinterest.com/pin/123456789/")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Pinterest pin not found or unable to process", decode(t, w)["message"])
}

func TestDownload_Timeout(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	w := get(h, "/api/download?url=https://pin.it/abc123")

	assert.Equal(t, http.StatusRequestTimeout, w.Code)
	assert.Equal(t, "Request timeout. Please try again.", decode(t, w)["message"])

	metricsBody := get(h, "/metrics").Body.String()
	assert.Contains(t, metricsBody, `pin_router_test_upstream_requests_total{outcome="TIMEOUT"} 1`)
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {}, time.Second)

	for _, path := range []string{"/health", "/api/health"} {
		w := get(h, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		body := decode(t, w)
		assert.Equal(t, "OK", body["status"])
		assert.Equal(t, "Pinterest Downloader API", body["service"])
	}
}

func TestNoRoute(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {}, time.Second)

	w := get(h, "/api/unknown")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Endpoint not found", body["message"])
	assert.NotEmpty(t, body["availableEndpoints"])
}

func TestStaticPage(t *testing.T) {
	h := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {}, time.Second)

	w := get(h, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "Pinterest Downloader")

	w = get(h, "/static/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/rules")
}

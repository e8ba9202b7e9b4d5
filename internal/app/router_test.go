package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carpetdist/carpet-erp/internal/observability"
)

type stubMounter struct{ body string }

func (m stubMounter) MountRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(m.body))
	})
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func testConfig() *Config {
	return &Config{AppEnv: "test", RateLimitPerMinute: 1000, CORSAllowedOrigin: "http://localhost:5173"}
}

func TestRouterMountsDomainHandlers(t *testing.T) {
	router := NewRouter(RouterParams{
		Config:          testConfig(),
		ProductHandler:  stubMounter{body: "products"},
		PurchaseHandler: stubMounter{body: "purchases"},
	})

	for path, want := range map[string]string{"/products": "products", "/purchases": "purchases"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, want, rec.Body.String())
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRouter(RouterParams{Config: testConfig(), DB: stubPinger{}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewRouter(RouterParams{Config: testConfig(), DB: stubPinger{err: errors.New("connection refused")}}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestRouterCORSPreflight(t *testing.T) {
	router := NewRouter(RouterParams{Config: testConfig(), SalesHandler: stubMounter{}})

	req := httptest.NewRequest(http.MethodOptions, "/sales", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Idempotency-Key")
}

func TestRouterExposesMetrics(t *testing.T) {
	router := NewRouter(RouterParams{
		Config:         testConfig(),
		Metrics:        observability.NewMetrics(),
		ProductHandler: stubMounter{body: "products"},
	})
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `carpet_http_requests_total{code="200",route="/products`)
}

func TestRouterRateLimits(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2
	router := NewRouter(RouterParams{Config: cfg, DB: stubPinger{}})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

package products

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	internalShared "github.com/carpetdist/carpet-erp/internal/shared"
)

func newTestRouter() chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(newMemoryRepo(), internalShared.CommitHooks{}))
	r := chi.NewRouter()
	r.Route("/products", handler.MountRoutes)
	return r
}

func TestHandlerCreateAndShow(t *testing.T) {
	r := newTestRouter()

	body := `{"name":"Kashan Classic","sku":"KSH-1","brand":"Kashan","stock":50,"price":"3500"}`
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, int64(1), created.ID)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"sku":"KSH-1"`)
	require.Contains(t, rec.Body.String(), `"criticalLevel":10`)
}

func TestHandlerCreateValidation(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"","sku":"x"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Validation Failed")
}

func TestHandlerNotFound(t *testing.T) {
	r := newTestRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/42", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/products/abc", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

package orders

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

	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

func newSalesRouter(repo *memorySalesRepo) chi.Router {
	svc, _, _ := newTestService(repo)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Route("/sales", h.MountRoutes)
	return r
}

func TestHandlerCreateSale(t *testing.T) {
	repo := newMemorySalesRepo()
	seed(repo)
	r := newSalesRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"customerId":1,"items":[{"productId":1,"quantity":10}]}`))
	req.Header.Set(shared.IdempotencyHeader, "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sale Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sale))
	require.Equal(t, "35000", sale.TotalAmount.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/"+sale.ID.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"customerId":1,"items":[{"productId":1,"quantity":10}]}`))
	req.Header.Set(shared.IdempotencyHeader, "abc")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerCreateSaleInsufficientStock(t *testing.T) {
	repo := newMemorySalesRepo()
	seed(repo)
	r := newSalesRouter(repo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"customerId":1,"items":[{"productId":1,"quantity":1000}]}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "Insufficient stock for product Kashan Classic. requested: 1000, available: 50", problem.Detail)
}

func TestHandlerCreateSaleValidation(t *testing.T) {
	repo := newMemorySalesRepo()
	seed(repo)
	r := newSalesRouter(repo)

	for _, body := range []string{
		`{"items":[]}`,
		`{"items":[{"productId":1,"quantity":0}]}`,
		`{"items":[{"productId":0,"quantity":1}]}`,
		`not json`,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
	require.Equal(t, 50, repo.ledger.Stock(1))
}

func TestHandlerSaleNotFound(t *testing.T) {
	r := newSalesRouter(newMemorySalesRepo())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/5b0c8f4e-8d7a-4a55-9a57-1f5d3a0f4c11", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sales/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

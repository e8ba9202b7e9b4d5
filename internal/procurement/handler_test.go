package procurement

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
)

func newProcRouter(repo *memoryProcRepo) chi.Router {
	svc, _ := newTestService(repo)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Route("/purchases", h.MountRoutes)
	return r
}

func TestHandlerPurchaseLifecycle(t *testing.T) {
	repo := newMemoryProcRepo()
	seed(repo)
	r := newProcRouter(repo)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/purchases",
		strings.NewReader(`{"factoryName":"Merinos","estimatedDeliveryDate":"2026-11-01T00:00:00Z","items":[{"productId":1,"quantity":20}]}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var p Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "49000", p.TotalAmount.String())
	require.NotNil(t, p.EstimatedDeliveryDate)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/purchases/"+p.ID.String()+"/receive", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 70, repo.ledger.Stock(1))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/purchases/"+p.ID.String()+"/receive", nil))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/purchases/"+p.ID.String()+"/status", strings.NewReader(`{"status":"SHIPPED"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 50, repo.ledger.Stock(1))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/purchases/"+p.ID.String(), strings.NewReader(`{"factoryName":"Merinos A.Ş."}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/purchases?supplierId=3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Purchase
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Merinos A.Ş.", list[0].FactoryName)
}

func TestHandlerPurchaseErrors(t *testing.T) {
	repo := newMemoryProcRepo()
	seed(repo)
	r := newProcRouter(repo)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/purchases", `{"items":[{"productId":1,"quantity":1}]}`, http.StatusBadRequest},
		{http.MethodPost, "/purchases", `{"factoryName":"Merinos","items":[]}`, http.StatusBadRequest},
		{http.MethodPost, "/purchases", `{"factoryName":"Merinos","items":[{"productId":42,"quantity":1}]}`, http.StatusNotFound},
		{http.MethodPost, "/purchases", `{"supplierId":77,"items":[{"productId":1,"quantity":1}]}`, http.StatusNotFound},
		{http.MethodGet, "/purchases/not-a-uuid", ``, http.StatusBadRequest},
		{http.MethodGet, "/purchases/5b0c2a7e-2f7e-4a43-9d0c-0a8f6f0b9a11", ``, http.StatusNotFound},
		{http.MethodGet, "/purchases?supplierId=x", ``, http.StatusBadRequest},
		{http.MethodPatch, "/purchases/5b0c2a7e-2f7e-4a43-9d0c-0a8f6f0b9a11/status", `{"status":"LOST"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		require.Equal(t, tc.want, rec.Code, "%s %s %s", tc.method, tc.path, tc.body)
	}
}

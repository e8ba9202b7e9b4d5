package dashboard

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHandlerOverview(t *testing.T) {
	repo := &mockRepo{pending: 4, balance: decimal.NewFromInt(-5)}
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), newTestService(t, repo))
	r := chi.NewRouter()
	r.Route("/dashboard", h.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/overview", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "kpi")
	require.Contains(t, body, "salesChart")
	require.Contains(t, body, "brandChart")

	var ov Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ov))
	require.Equal(t, 4, ov.KPI.PendingOrders)
}

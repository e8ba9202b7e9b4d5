package finance

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

	"github.com/carpetdist/carpet-erp/internal/shared"
)

func newFinanceRouter(repo *memoryFinanceRepo) chi.Router {
	svc, _ := newTestService(repo)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Route("/finance", h.MountRoutes)
	return r
}

func TestHandlerRecordPayment(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	r := newFinanceRouter(repo)

	body := `{"type":"income","partyType":"customer","partyId":1,"amount":"35000","method":"cash","description":"invoice 12"}`
	req := httptest.NewRequest(http.MethodPost, "/finance/payment", strings.NewReader(body))
	req.Header.Set(shared.IdempotencyHeader, "k1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, repo.ledger.CustomerBalance(1).IsZero())

	req = httptest.NewRequest(http.MethodPost, "/finance/payment", strings.NewReader(body))
	req.Header.Set(shared.IdempotencyHeader, "k1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/finance/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, "49000", stats.TotalPayables.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/finance/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var history []Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	require.Equal(t, "invoice 12", history[0].Description)
}

func TestHandlerRecordPaymentErrors(t *testing.T) {
	repo := newMemoryFinanceRepo()
	seed(repo)
	r := newFinanceRouter(repo)

	cases := map[string]int{
		`{"type":"income","partyType":"customer","partyId":42,"amount":10}`:  http.StatusNotFound,
		`{"type":"income","partyType":"customer","partyId":1,"amount":0}`:    http.StatusBadRequest,
		`{"type":"income","partyType":"customer","amount":10}`:               http.StatusBadRequest,
		`{"type":"gift","partyType":"customer","partyId":1,"amount":10}`:     http.StatusBadRequest,
		`{"type":"income","partyType":"employee","partyId":1,"amount":10}`:   http.StatusBadRequest,
		`{"type":"income","partyType":"supplier","partyId":1,"amount":"ab"}`: http.StatusBadRequest,
	}
	for body, want := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/finance/payment", strings.NewReader(body)))
		require.Equal(t, want, rec.Code, body)
	}
	require.Equal(t, "-35000", repo.ledger.CustomerBalance(1).String())
}

package finance

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

// Handler exposes finance endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stats", h.Stats)
	r.Get("/history", h.History)
	r.Post("/payment", h.RecordPayment)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "finance stats failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	filters := HistoryFilters{
		PartyType: PartyType(r.URL.Query().Get("partyType")),
		Limit:     httpx.QueryInt(r, "limit", 0),
	}
	payments, err := h.service.History(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, h.logger, "payment history failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var input PaymentInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.RecordPayment(r.Context(), input, r.Header.Get(shared.IdempotencyHeader))
	if err != nil {
		httpx.Fail(w, h.logger, "record payment failed", err,
			slog.String("party_type", string(input.PartyType)), slog.Int64("party_id", input.PartyID))
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

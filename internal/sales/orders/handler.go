package orders

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

// Handler exposes sales endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Patch("/{id}/status", h.UpdateStatus)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{
		Page:   httpx.QueryInt(r, "page", 1),
		Limit:  httpx.QueryInt(r, "limit", 10),
		Search: r.URL.Query().Get("search"),
		Status: Status(r.URL.Query().Get("status")),
	}
	page, err := h.service.List(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, h.logger, "list sales failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	sale, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get sale failed", err, slog.String("id", id.String()))
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateSaleInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	sale, err := h.service.Create(r.Context(), input, r.Header.Get(shared.IdempotencyHeader))
	if err != nil {
		httpx.Fail(w, h.logger, "create sale failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateStatusInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	sale, err := h.service.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		httpx.Fail(w, h.logger, "update sale status failed", err, slog.String("id", id.String()))
		return
	}
	httpx.JSON(w, http.StatusOK, sale)
}

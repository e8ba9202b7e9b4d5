package procurement

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

// Handler exposes purchase endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers purchase routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Patch("/{id}", h.Edit)
	r.Patch("/{id}/receive", h.Receive)
	r.Patch("/{id}/status", h.UpdateStatus)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{Status: Status(r.URL.Query().Get("status"))}
	if raw := r.URL.Query().Get("supplierId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			httpx.RespondError(w, shared.Validationf("supplierId must be a positive integer"))
			return
		}
		filters.SupplierID = &id
	}
	purchases, err := h.service.List(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, h.logger, "list purchases failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, purchases)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get purchase failed", err, slog.String("id", id.String()))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Create(r.Context(), input)
	if err != nil {
		httpx.Fail(w, h.logger, "create purchase failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Edit adjusts line prices and quantities without moving stock. Quantity
// changes on a RECEIVED purchase answer 409; revert the status first.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input EditInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Edit(r.Context(), id, input)
	if err != nil {
		httpx.Fail(w, h.logger, "edit purchase failed", err, slog.String("id", id.String()))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Receive(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "receive purchase failed", err, slog.String("id", id.String()))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.UUIDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input StatusInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.UpdateStatus(r.Context(), id, input.Status)
	if err != nil {
		httpx.Fail(w, h.logger, "update purchase status failed", err, slog.String("id", id.String()))
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

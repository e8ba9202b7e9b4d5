package suppliers

import (
	"log/slog"
	"net/http"

	"github.com/carpetdist/carpet-erp/internal/masterdata/shared"
	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ListFilters{
		Page:    httpx.QueryInt(r, "page", shared.DefaultPage),
		Limit:   httpx.QueryInt(r, "limit", shared.DefaultLimit),
		Search:  r.URL.Query().Get("search"),
		SortBy:  r.URL.Query().Get("sort"),
		SortDir: r.URL.Query().Get("dir"),
	}
	suppliers, _, err := h.service.List(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, h.logger, "list suppliers failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, suppliers)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.Fail(w, h.logger, "get supplier failed", err, slog.Int64("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, detail)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var input CreateInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		httpx.Fail(w, h.logger, "create supplier failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var input UpdateInput
	if err := httpx.Bind(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		httpx.Fail(w, h.logger, "update supplier failed", err, slog.Int64("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "delete supplier failed", err, slog.Int64("id", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	supplierID, productID, ok := h.catalogParams(w, r)
	if !ok {
		return
	}
	if err := h.service.AddProduct(r.Context(), supplierID, productID); err != nil {
		httpx.Fail(w, h.logger, "add catalog product failed", err, slog.Int64("supplier_id", supplierID), slog.Int64("product_id", productID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	supplierID, productID, ok := h.catalogParams(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveProduct(r.Context(), supplierID, productID); err != nil {
		httpx.Fail(w, h.logger, "remove catalog product failed", err, slog.Int64("supplier_id", supplierID), slog.Int64("product_id", productID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) catalogParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	supplierID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return 0, 0, false
	}
	productID, err := httpx.IDParam(r, "productId")
	if err != nil {
		httpx.RespondError(w, err)
		return 0, 0, false
	}
	return supplierID, productID, true
}

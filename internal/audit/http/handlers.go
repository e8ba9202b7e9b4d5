package audithttp

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carpetdist/carpet-erp/internal/audit"
	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
	"github.com/carpetdist/carpet-erp/internal/shared"
)

const (
	dateLayout       = "2006-01-02"
	defaultDateRange = 7 * 24 * time.Hour
	maxDateRange     = 90 * 24 * time.Hour
)

// TimelineService defines the reads the handler needs.
type TimelineService interface {
	Timeline(ctx context.Context, filters audit.TimelineFilters) (audit.Result, error)
}

// Handler serves the audit timeline.
type Handler struct {
	logger  *slog.Logger
	service TimelineService
	now     func() time.Time
}

// NewHandler builds the audit handler.
func NewHandler(logger *slog.Logger, service TimelineService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, now: time.Now}
}

// MountRoutes registers GET / under the caller's prefix.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleTimeline)
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	filters, err := h.parseFilters(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	result, err := h.service.Timeline(r.Context(), filters)
	if err != nil {
		httpx.Fail(w, h.logger, "load audit timeline", err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// parseFilters reads from/to as inclusive dates; to defaults to today and
// from to a week before it.
func (h *Handler) parseFilters(r *http.Request) (audit.TimelineFilters, error) {
	q := r.URL.Query()
	now := h.now().UTC()

	to := now.Truncate(24 * time.Hour)
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return audit.TimelineFilters{}, shared.Validationf("to must be YYYY-MM-DD")
		}
		to = parsed
	}
	from := to.Add(-defaultDateRange)
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return audit.TimelineFilters{}, shared.Validationf("from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if from.After(to) {
		return audit.TimelineFilters{}, shared.Validationf("from must not be after to")
	}
	if to.Sub(from) > maxDateRange {
		return audit.TimelineFilters{}, shared.Validationf("date range exceeds 90 days")
	}

	page := 1
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return audit.TimelineFilters{}, shared.Validationf("page must be a positive integer")
		}
		page = parsed
	}

	return audit.TimelineFilters{
		From:     from,
		To:       to.Add(24 * time.Hour),
		Entity:   strings.TrimSpace(q.Get("entity")),
		EntityID: strings.TrimSpace(q.Get("entityId")),
		Action:   strings.TrimSpace(q.Get("action")),
		Page:     page,
		PageSize: httpx.QueryInt(r, "pageSize", 0),
	}, nil
}

package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carpetdist/carpet-erp/internal/observability"
	"github.com/carpetdist/carpet-erp/internal/platform/httpx"
)

// Mounter is implemented by every domain handler.
type Mounter interface {
	MountRoutes(r chi.Router)
}

// Pinger reports backing store availability for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *slog.Logger
	Config  *Config
	Metrics *observability.Metrics
	DB      Pinger

	ProductHandler   Mounter
	CustomerHandler  Mounter
	SupplierHandler  Mounter
	SalesHandler     Mounter
	PurchaseHandler  Mounter
	FinanceHandler   Mounter
	DashboardHandler Mounter
	AuditHandler     Mounter
	JobHandler       Mounter
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", healthz(params.DB))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	mount(r, "/products", params.ProductHandler)
	mount(r, "/customers", params.CustomerHandler)
	mount(r, "/suppliers", params.SupplierHandler)
	mount(r, "/sales", params.SalesHandler)
	mount(r, "/purchases", params.PurchaseHandler)
	mount(r, "/finance", params.FinanceHandler)
	mount(r, "/dashboard", params.DashboardHandler)
	mount(r, "/audit", params.AuditHandler)
	mount(r, "/jobs", params.JobHandler)

	return r
}

func mount(r chi.Router, prefix string, h Mounter) {
	if h == nil {
		return
	}
	r.Route(prefix, h.MountRoutes)
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": err.Error()})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

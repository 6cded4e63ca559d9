package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	authsvc "github.com/stockroomhq/stockroom-backend/internal/auth"
	"github.com/stockroomhq/stockroom-backend/internal/catalog"
	ordersvc "github.com/stockroomhq/stockroom-backend/internal/orders"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	RoleResolver   middleware.RoleResolver
	AuthService    authsvc.Service
	CatalogService catalog.Service
	OrdersService  ordersvc.Service
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics
}

// NewRouter wires the middleware chain and all route groups. Identity is
// resolved on every /api route; per-route role checks stay in the service
// layer so denied actors get typed forbidden envelopes, not routing 404s.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DBPinger, p.Logger))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.Login(p.AuthService, p.Logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Identity(p.Config.JWT, p.RoleResolver, p.Logger))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(p.CatalogService, p.Logger))
				r.Post("/", controllers.CreateProduct(p.CatalogService, p.Logger))
				r.Get("/{productID}", controllers.GetProduct(p.CatalogService, p.Logger))
				r.Put("/{productID}", controllers.UpdateProduct(p.CatalogService, p.Logger))
				r.Delete("/{productID}", controllers.DeleteProduct(p.CatalogService, p.Logger))
			})

			r.Get("/suppliers", controllers.ListSuppliers(p.CatalogService, p.Logger))
			r.Get("/categories", controllers.ListCategories(p.CatalogService, p.Logger))
			r.Get("/manufacturers", controllers.ListManufacturers(p.CatalogService, p.Logger))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.ListOrders(p.OrdersService, p.Logger))
				r.Get("/{orderID}", controllers.GetOrder(p.OrdersService, p.Logger))
			})
		})
	})

	return r
}

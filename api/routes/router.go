package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harithaceylon/storefront-backend/api/controllers"
	cartcontrollers "github.com/harithaceylon/storefront-backend/api/controllers/cart"
	"github.com/harithaceylon/storefront-backend/api/middleware"
	cartsvc "github.com/harithaceylon/storefront-backend/internal/cart"
	checkoutsvc "github.com/harithaceylon/storefront-backend/internal/checkout"
	product "github.com/harithaceylon/storefront-backend/internal/products"
	"github.com/harithaceylon/storefront-backend/pkg/config"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
	"github.com/harithaceylon/storefront-backend/pkg/metrics"
)

// Deps collects everything the router wires together.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        controllers.Pinger
	RedisPinger     controllers.Pinger
	MetricsRegistry *prometheus.Registry
	HTTPMetrics     *metrics.HTTPMetrics
	CartService     cartsvc.Service
	ProductService  product.Service
	CheckoutService checkoutsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", controllers.SessionCreate(deps.CartService, cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.ProductService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.ProductService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.JWT, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(deps.CartService, logg))
				r.Delete("/", cartcontrollers.CartClear(deps.CartService, logg))
				r.Post("/items", cartcontrollers.CartAddItem(deps.CartService, logg))
				r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(deps.CartService, logg))
				r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(deps.CartService, logg))
				r.Post("/open", cartcontrollers.CartOpen(deps.CartService, logg))
				r.Post("/close", cartcontrollers.CartClose(deps.CartService, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/tokens", controllers.AdminToken(cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(cfg.JWT, logg))
			r.Use(middleware.RequireRole("admin", logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(deps.ProductService, logg))
				r.Post("/", controllers.AdminProductCreate(deps.ProductService, logg))
				r.Patch("/{productId}", controllers.AdminProductUpdate(deps.ProductService, logg))
				r.Delete("/{productId}", controllers.AdminProductDelete(deps.ProductService, logg))
			})
		})
	})

	return r
}

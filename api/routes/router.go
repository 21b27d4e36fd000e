package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nearbuy-market/storefront-gateway/api/controllers"
	"github.com/nearbuy-market/storefront-gateway/api/middleware"
	"github.com/nearbuy-market/storefront-gateway/internal/auth"
	"github.com/nearbuy-market/storefront-gateway/internal/cart"
	"github.com/nearbuy-market/storefront-gateway/internal/session"
	"github.com/nearbuy-market/storefront-gateway/internal/upstream"
	"github.com/nearbuy-market/storefront-gateway/pkg/config"
	"github.com/nearbuy-market/storefront-gateway/pkg/logger"
	"github.com/nearbuy-market/storefront-gateway/pkg/metrics"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	Backend        *upstream.Client
	Sessions       session.Store
	SessionPing    controllers.Pinger
	AuthService    auth.Service
	CartService    cart.Service
	HTTPMetrics    *metrics.HTTPMetrics
	RateLimiter    middleware.RateLimiterStore
	MetricsHandler http.Handler
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.Backend, p.SessionPing))
	})

	if p.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", p.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Session, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, p.RateLimiter, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, p.RateLimiter, logg)).Post("/register", controllers.AuthRegister(p.AuthService, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, logg))
			r.Get("/session", controllers.AuthSession(p.AuthService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoryList(p.Backend, logg))
			r.Get("/{categoryId}", controllers.CategoryFetch(p.Backend, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(p.Backend, logg))
			r.Get("/{productId}", controllers.ProductFetch(p.Backend, logg))
			r.Get("/{productId}/reviews", controllers.ReviewList(p.Backend, p.Sessions, logg))
		})

		r.Get("/retailers/{retailerId}/products", controllers.RetailerProductList(p.Backend, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(p.CartService, logg))
			r.Delete("/", controllers.CartClear(p.CartService, logg))
			r.Get("/count", controllers.CartCount(p.CartService, logg))
			r.Post("/items", controllers.CartAdd(p.CartService, logg))
			r.Put("/items/{itemId}", controllers.CartUpdate(p.CartService, logg))
			r.Delete("/items/{itemId}", controllers.CartRemove(p.CartService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistList(p.Backend, p.Sessions, logg))
			r.Post("/items", controllers.WishlistAdd(p.Backend, p.Sessions, logg))
			r.Delete("/items/{itemId}", controllers.WishlistRemove(p.Backend, p.Sessions, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(p.Backend, p.Sessions, logg))
			r.Post("/", controllers.OrderCreate(p.Backend, p.Sessions, p.CartService, logg))
			r.Get("/{orderId}", controllers.OrderFetch(p.Backend, p.Sessions, logg))
		})

		r.Post("/reviews", controllers.ReviewCreate(p.Backend, p.Sessions, logg))
		r.Post("/promo-codes/validate", controllers.PromoValidate(p.Backend, p.Sessions, logg))

		r.Route("/retailer", func(r chi.Router) {
			r.Post("/register", controllers.RetailerRegister(p.Backend, p.Sessions, logg))
			r.Get("/profile", controllers.RetailerProfileFetch(p.Backend, p.Sessions, logg))
			r.Put("/profile", controllers.RetailerProfileUpdate(p.Backend, p.Sessions, logg))
			r.Post("/products", controllers.RetailerProductCreate(p.Backend, p.Sessions, logg))
			r.Put("/products/{productId}", controllers.RetailerProductUpdate(p.Backend, p.Sessions, logg))
			r.Delete("/products/{productId}", controllers.RetailerProductDelete(p.Backend, p.Sessions, logg))
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/", controllers.FileUpload(p.Backend, p.Sessions, logg))
			r.Get("/{fileId}", controllers.FileFetch(p.Backend, p.Sessions, logg))
		})
	})

	return r
}

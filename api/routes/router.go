package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/s50889/ordesite2-sub001/api/controllers"
	"github.com/s50889/ordesite2-sub001/api/middleware"
	addressessvc "github.com/s50889/ordesite2-sub001/internal/addresses"
	announcementssvc "github.com/s50889/ordesite2-sub001/internal/announcements"
	authsvc "github.com/s50889/ordesite2-sub001/internal/auth"
	cartsvc "github.com/s50889/ordesite2-sub001/internal/cart"
	dashboardsvc "github.com/s50889/ordesite2-sub001/internal/dashboard"
	orderssvc "github.com/s50889/ordesite2-sub001/internal/orders"
	productssvc "github.com/s50889/ordesite2-sub001/internal/products"
	shipmentssvc "github.com/s50889/ordesite2-sub001/internal/shipments"
	"github.com/s50889/ordesite2-sub001/pkg/config"
	"github.com/s50889/ordesite2-sub001/pkg/enums"
	"github.com/s50889/ordesite2-sub001/pkg/logger"
	"github.com/s50889/ordesite2-sub001/pkg/metrics"
	redisclient "github.com/s50889/ordesite2-sub001/pkg/redis"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sessionManager interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          pinger
	Redis       *redisclient.Client
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics
	Sessions    sessionManager

	Auth          authsvc.Service
	Cart          cartsvc.Service
	Products      productssvc.Service
	Orders        orderssvc.Service
	Dashboard     dashboardsvc.Service
	Shipments     shipmentssvc.Service
	Announcements announcementssvc.Service
	Addresses     addressessvc.Service
}

// NewRouter assembles the portal's HTTP surface: the JSON API under /api/v1,
// operational endpoints, and the guarded page shell.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.ResolveSession(cfg.JWT, deps.Sessions, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Health())
		r.Get("/ready", controllers.Ready(deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(signupPolicy, deps.Redis, logg)).
				Post("/signup", controllers.Signup(deps.Auth, cfg.JWT, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.Login(deps.Auth, cfg.JWT, logg))
			r.Post("/logout", controllers.Logout(deps.Auth, cfg.JWT, logg))
			r.With(middleware.RequireAuth(logg)).Get("/me", controllers.Me(deps.Auth, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productID}", controllers.GetProduct(deps.Products, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(logg), middleware.RequireRole(logg, enums.RoleAdmin))
				r.Post("/", controllers.CreateProduct(deps.Products, logg))
				r.Put("/{productID}", controllers.UpdateProduct(deps.Products, logg))
			})
		})
		r.Get("/categories", controllers.ListCategories(deps.Products, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items/{itemID}", controllers.UpdateCartItem(deps.Cart, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.Cart, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg))
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{orderID}", controllers.GetOrder(deps.Orders, logg))
			r.Patch("/{orderID}/cancel", controllers.CancelOrder(deps.Orders, logg))
			r.Get("/{orderID}/shipment", controllers.GetOrderShipment(deps.Shipments, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.RoleSales, enums.RoleAdmin))
				r.Patch("/{orderID}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
				r.Patch("/{orderID}/shipment", controllers.UpdateOrderShipment(deps.Shipments, logg))
			})
		})

		r.With(middleware.RequireAuth(logg)).
			Get("/dashboard", controllers.Dashboard(deps.Dashboard, logg))

		r.Get("/announcements", controllers.ListAnnouncements(deps.Announcements, logg))
		r.Route("/admin/announcements", func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg), middleware.RequireRole(logg, enums.RoleAdmin))
			r.Get("/", controllers.ListAllAnnouncements(deps.Announcements, logg))
			r.Post("/", controllers.CreateAnnouncement(deps.Announcements, logg))
			r.Put("/{announcementID}", controllers.UpdateAnnouncement(deps.Announcements, logg))
			r.Delete("/{announcementID}", controllers.DeleteAnnouncement(deps.Announcements, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(middleware.RequireAuth(logg))
			r.Get("/", controllers.ListAddresses(deps.Addresses, logg))
			r.Post("/", controllers.CreateAddress(deps.Addresses, logg))
			r.Put("/{addressID}", controllers.UpdateAddress(deps.Addresses, logg))
			r.Delete("/{addressID}", controllers.DeleteAddress(deps.Addresses, logg))
		})

		r.With(middleware.RequireAuth(logg), middleware.RequireRole(logg, enums.RoleSales, enums.RoleAdmin)).
			Get("/shipping-statuses", controllers.ListShippingStatuses(deps.Shipments, logg))
	})

	r.Method(http.MethodGet, "/static/*", controllers.StaticAssets(cfg.App.StaticDir))

	// every other non-API path renders the page shell behind the route guard
	r.Group(func(r chi.Router) {
		r.Use(middleware.Guard())
		r.Get("/*", controllers.PortalShell(cfg.App))
	})

	return r
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"rocketboost-admin/app/controller"
	"rocketboost-admin/app/middleware"
	"rocketboost-admin/metrics"
)

// Controllers groups the handlers mounted by NewRouter
type Controllers struct {
	Order    *controller.OrderController
	Service  *controller.ServiceController
	Provider *controller.ProviderController
	User     *controller.UserController
	Stats    *controller.StatsController
	Pricing  *controller.PricingController
	Auth     *controller.AuthController
}

// Options configures the cross-cutting middleware
type Options struct {
	CORSOrigin string
	// Tokens validates bearer tokens; nil disables authentication
	Tokens       middleware.TokenParser
	LoginLimiter *middleware.RateLimiter
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxy bool
}

// rootHandler handles GET /
func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// NewRouter builds the HTTP handler of the admin API
func NewRouter(controllers *Controllers, opts Options) http.Handler {
	r := chi.NewRouter()

	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(metrics.InstrumentHandler)

	r.Get("/", rootHandler)
	r.Get("/ping", pingHandler)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(opts.CORSOrigin))

		if opts.LoginLimiter != nil {
			r.With(opts.LoginLimiter.Handler).Post("/auth/login", controllers.Auth.Login)
		} else {
			r.Post("/auth/login", controllers.Auth.Login)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(opts.Tokens))

			// Orders; static paths before /{id}
			r.Get("/orders", controllers.Order.ListOrders)
			r.Post("/orders/resubmit", controllers.Order.Resubmit)
			r.Post("/orders/bulk", controllers.Order.SubmitBulk)
			r.Post("/orders/refill-bulk", controllers.Order.SubmitRefillBulk)
			r.Patch("/orders/{id}", controllers.Order.UpdateOrder)
			r.Post("/orders/{id}/refill", controllers.Order.Refill)
			r.Get("/orders/{id}/refill-floor", controllers.Order.RefillFloor)

			// Service catalog
			r.Get("/services", controllers.Service.ListServices)
			r.Post("/services", controllers.Service.CreateService)
			r.Patch("/services/{id}", controllers.Service.UpdateService)

			// Providers
			r.Get("/providers", controllers.Provider.ListProviders)
			r.Get("/providers/balances", controllers.Provider.Balances)
			r.Patch("/providers/{code}", controllers.Provider.UpdateProvider)

			// Users and balance
			r.Get("/users", controllers.User.ListUsers)
			r.Post("/users/{id}/topup", controllers.User.TopUp)
			r.Get("/users/{id}/transactions", controllers.User.ListTransactions)
			r.Get("/transactions/{id}/slip", controllers.User.GetSlip)

			// Dashboard
			r.Get("/stats/summary", controllers.Stats.Summary)
			r.Get("/stats/overview", controllers.Stats.Overview)
			r.Get("/stats/quality", controllers.Stats.Quality)

			// Price calculator
			r.Get("/pricing/rates", controllers.Pricing.Rates)
			r.Post("/pricing/quote", controllers.Pricing.Quote)
			r.Post("/pricing/quote/pdf", controllers.Pricing.QuotePDF)
			r.Post("/pricing/quote/png", controllers.Pricing.QuotePNG)
			r.Get("/pricing/refill-floor", controllers.Pricing.RefillFloor)
			r.Get("/messages/quick", controllers.Pricing.QuickMessages)
		})
	})

	return r
}

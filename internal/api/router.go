package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/example/grocer-pickup/internal/api/middleware"
	"github.com/example/grocer-pickup/internal/auth"
	"github.com/example/grocer-pickup/internal/metrics"
)

// NewRouter assembles the HTTP surface: public catalog and auth routes, the
// customer checkout routes, and the admin back office.
func NewRouter(
	handlers *Handlers,
	authHandlers *AuthHandlers,
	jwtService *auth.JWTService,
	m *metrics.ServerMetrics,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if m != nil {
		r.Use(middleware.Metrics(m))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public catalog.
		r.Get("/products", handlers.GetProducts)
		r.Get("/products/{id}", handlers.GetProduct)
		r.Get("/categories", handlers.GetCategories)
		r.Get("/categories/{slug}/products", handlers.GetProductsByCategory)

		// Auth.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandlers.Register)
			r.Post("/login", authHandlers.Login)
			r.Post("/logout", authHandlers.Logout)
			r.Post("/refresh", authHandlers.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(jwtService))
				r.Get("/me", authHandlers.Me)
			})
		})

		// Customer checkout and order history.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtService))
			r.Use(middleware.RequireRole(auth.RoleCustomer, auth.RoleAdmin))

			r.Post("/checkout", handlers.Checkout)
			r.Get("/orders", handlers.GetMyOrders)
		})

		// Back office.
		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth", authHandlers.AdminLogin)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(jwtService))
				r.Use(middleware.RequireRole(auth.RoleAdmin))

				r.Get("/orders", handlers.GetAllOrders)
				r.Get("/orders/stats", handlers.GetOrderStats)
				r.Get("/orders/{reference}", handlers.GetOrderByReference)
				r.Patch("/orders/{reference}", handlers.UpdateOrderByReference)

				r.Get("/products", handlers.AdminGetProducts)
				r.Post("/products", handlers.CreateProduct)
				r.Put("/products/{id}", handlers.UpdateProduct)
				r.Delete("/products/{id}", handlers.DeleteProduct)

				r.Post("/categories", handlers.CreateCategory)
				r.Put("/categories/{id}", handlers.UpdateCategory)
				r.Delete("/categories/{id}", handlers.DeleteCategory)
			})
		})
	})

	return r
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/book-api/internal/api"
	"github.com/phrazzld/book-api/internal/api/middleware"
	"github.com/phrazzld/book-api/internal/domain"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRouter creates the router with the middleware chain and every route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)
	r.Use(middleware.CORS(middleware.PolicyFromConfig(app.config.CORS)))
	if app.limiter != nil {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Limiter:  app.limiter,
			KeyFunc:  middleware.IPKeyFunc,
			FailOpen: app.config.RateLimit.FailOpen,
		}))
	}

	bookHandler := api.NewBookHandler(app.bookService)
	categoryHandler := api.NewCategoryHandler(app.categoryService)
	authHandler := api.NewAuthHandler(app.authService)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	requireUser := chi.Chain(authMiddleware.Authenticate, middleware.RequireRole(domain.RoleUser))
	requireAdmin := chi.Chain(authMiddleware.Authenticate, middleware.RequireRole(domain.RoleAdmin))

	r.Route("/api", func(r chi.Router) {
		r.Get("/error", api.TriggerError)

		r.Post("/auth", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)

		r.Route("/books", func(r chi.Router) {
			r.With(requireUser...).Get("/", bookHandler.ListBooks)
			r.Get("/search", bookHandler.SearchBooks)
			r.Get("/{id}", bookHandler.GetBook)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin...)
				r.Post("/", bookHandler.CreateBook)
				r.Put("/{id}", bookHandler.UpdateBook)
				r.Delete("/{id}", bookHandler.DeleteBook)
			})
		})

		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{id}", categoryHandler.GetCategory)
	})

	if app.config.Server.IsDevelopment() {
		r.Get(api.SwaggerJSONPath, api.SwaggerJSON)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(api.SwaggerJSONPath)))
	}

	r.Get("/health", api.Health)
	r.Handle("/metrics", app.metrics.Handler())

	return r
}

// Package api provides the HTTP API server and handlers for the
// storefront catalog.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/storefrontapp/storefront-server/internal/config"
	"github.com/storefrontapp/storefront-server/internal/domain"
	"github.com/storefrontapp/storefront-server/internal/service"
	"github.com/storefrontapp/storefront-server/internal/validation"
)

// SyncTrigger runs one catalog refresh pass on demand.
type SyncTrigger interface {
	RunOnce(ctx context.Context)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg       *config.Config
	catalog   *service.CatalogService
	auth      *service.AuthService
	admin     *service.AdminService
	sync      SyncTrigger
	validator *validation.Validator
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, catalog *service.CatalogService, auth *service.AuthService, admin *service.AdminService, syncTrigger SyncTrigger, logger *slog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		catalog:   catalog,
		auth:      auth,
		admin:     admin,
		sync:      syncTrigger,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Post("/auth/login", s.handleLogin)

		// Public storefront reads.
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", s.handleListProducts)
			r.Get("/products/{id}", s.handleGetProduct)
			r.Get("/categories", s.handleListCategories)
			r.Get("/menu", s.handleGetMenu)
			r.Get("/pages", s.handleListPages)
			r.Get("/pages/{key}", s.handleGetPage)
			r.Get("/tags", s.handleListTags)
			r.Get("/types", s.handleListTypes)
			r.Get("/levels", s.handleListLevels)
			r.Get("/fb-posts", s.handleListFacebookPosts)
			r.Get("/search", s.handleSearch)
			r.Get("/suggest", s.handleSuggest)
		})

		// Admin back-office (token + role).
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Get("/audit", s.handleListAudit)
			r.With(s.requireAction(domain.ActionUpdate)).Post("/sync", s.handleTriggerSync)

			r.Route("/products", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSaveProduct)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{id}", s.handleSaveProduct)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{id}", s.handleDeleteProduct)
			})
			r.Route("/categories", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSaveCategory)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{key}", s.handleSaveCategory)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{key}", s.handleDeleteCategory)
			})
			r.Route("/menu", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSaveMenuItem)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{key}", s.handleSaveMenuItem)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{key}", s.handleDeleteMenuItem)
			})
			r.Route("/pages", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSavePage)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{key}", s.handleSavePage)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{key}", s.handleDeletePage)
			})
			r.Route("/tags", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSaveTag)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{id}", s.handleSaveTag)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{id}", s.handleDeleteTag)
			})
			r.Route("/types", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSaveType)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{id}", s.handleSaveType)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{id}", s.handleDeleteType)
			})
			r.Route("/levels", func(r chi.Router) {
				r.With(s.requireAction(domain.ActionCreate)).Post("/", s.handleSaveLevel)
				r.With(s.requireAction(domain.ActionUpdate)).Put("/{id}", s.handleSaveLevel)
				r.With(s.requireAction(domain.ActionDelete)).Delete("/{id}", s.handleDeleteLevel)
			})
			r.Route("/users", func(r chi.Router) {
				r.Use(s.requireAction(domain.ActionManageUsers))
				r.Get("/", s.handleListUsers)
				r.Post("/", s.handleCreateUser)
				r.Put("/{id}", s.handleUpdateUser)
				r.Delete("/{id}", s.handleDeleteUser)
			})
		})
	})
}

package api

import (
	"net/http"

	"github.com/dom/league-skinset-finder/internal/api/handlers"
	"github.com/dom/league-skinset-finder/internal/api/middleware"
	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	if cfg.Environment != "test" {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	championHandler := handlers.NewChampionHandler(services.Champion)
	skinsetHandler := handlers.NewSkinsetHandler(services.Skinset)
	finderHandler := handlers.NewFinderHandler(services.Finder)
	streamHandler := handlers.NewStreamHandler(services.Finder)
	adminHandler := handlers.NewAdminHandler(services.Admin, services.Skinset)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/lanes", handlers.Lanes)

		r.Route("/champions", func(r chi.Router) {
			r.Get("/", championHandler.GetAll)
			r.Get("/{id}", championHandler.Get)

			r.With(middleware.AdminAuth(services.Admin)).Post("/sync", championHandler.Sync)
		})

		r.Route("/skinsets", func(r chi.Router) {
			r.Get("/", skinsetHandler.GetAll)
			r.Get("/{id}", skinsetHandler.Get)
		})

		r.Route("/comps", func(r chi.Router) {
			r.Get("/limits", finderHandler.Limits)
			r.Post("/resolve", finderHandler.Resolve)
			r.Get("/stream", streamHandler.Handle)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/token", adminHandler.Token)

			// Protected admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(services.Admin))
				r.Post("/reference", adminHandler.ImportReference)
			})
		})
	})

	return r
}

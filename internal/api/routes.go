package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dhanvarsha/backend/internal/database"
)

// RegisterRoutes sets up all the API endpoints and middleware for the
// application.
func (s *Server) RegisterRoutes(r *chi.Mux) {
	// --- Global Middleware ---
	r.Use(middleware.Logger)    // Logs incoming requests
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500 error

	// The service worker must be served from the site root so its scope
	// covers the whole origin.
	r.Get("/service-worker.js", s.handleServiceWorker)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", s.config.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Get("/health", s.handleHealth)

		// Standard game ledger
		r.Get("/results/today", s.handleListToday(database.GameResults))
		r.Get("/results/previous", s.handleListPrevious(database.GameResults))
		r.Get("/results/recent", s.handleListRecent(database.GameResults))
		r.Get("/results/search", s.handleSearchResults(database.GameResults))
		r.Get("/results/stream", s.handleResultsStream)
		r.Post("/results", s.handleUpsertResult(database.GameResults))
		r.Delete("/results/{id}", s.handleDeleteResult(database.GameResults))

		// Super game ledger (same operations, independent table)
		r.Get("/super-game/recent", s.handleListRecent(database.SuperGameResults))
		r.Post("/super-game", s.handleUpsertResult(database.SuperGameResults))
		r.Delete("/super-game/{id}", s.handleDeleteResult(database.SuperGameResults))

		// Contact submissions
		r.Post("/contact", s.handleCreateContact)
		r.Get("/contact", s.handleListContact)

		// Admin session
		r.Post("/admin/login", s.handleAdminLogin)
		r.Get("/admin/check", s.handleAdminCheck)
		r.Post("/admin/logout", s.handleAdminLogout)
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/admin/change-password", s.handleChangePassword)
		})

		// Push notifications. Note: /push/send is deliberately left open,
		// matching the public-broadcast behavior this service has always
		// had; see DESIGN.md before gating it.
		r.Get("/vapid-public-key", s.handleVapidPublicKey)
		r.Post("/push/subscribe", s.handlePushSubscribe)
		r.Get("/push/count", s.handlePushCount)
		r.Post("/push/send", s.handlePushSend)
	})
}

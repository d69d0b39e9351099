package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RegisterRoutes sets up all the API endpoints and middleware for the
// application.
func (s *Server) RegisterRoutes(r *chi.Mux) {
	// --- Global middleware ---
	r.Use(middleware.Logger)    // Logs incoming requests
	r.Use(middleware.Recoverer) // Recovers from panics and returns a 500

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", s.config.FrontendURL},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		// Account routes
		r.Post("/athletes/register", s.handleRegisterAthlete)
		r.Post("/athletes/login", s.handleLoginAthlete)

		// The event catalog is public: prospective registrants can read
		// the workouts before creating an account.
		r.Get("/events", s.handleListEvents)

		// --- Authenticated routes ---
		// Everything below requires a valid session token; the middleware
		// injects the athlete's identity into the request context.
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/notifications/stream", s.handleStream)

			// Profile
			r.Get("/athletes/me", s.handleGetMyProfile)
			r.Patch("/athletes/me", s.handleUpdateMyProfile)
			r.Delete("/athletes/me", s.handleDeleteMyProfile)

			// Score submission
			r.Get("/events/{eventID}/scores/me", s.handleGetMyScore)
			r.Put("/events/{eventID}/scores/me", s.handleSubmitScore)

			// Leaderboards & statistics
			r.Get("/leaderboard/overall", s.handleOverallLeaderboard)
			r.Get("/leaderboard/{eventID}", s.handleEventLeaderboard)
			r.Get("/events/{eventID}/statistics", s.handleEventStatistics)
		})
	})
}

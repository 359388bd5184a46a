package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Divyansh670/FeedbackHub/internal/middleware"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	// Middleware dependencies.
	Authenticator     middleware.TokenAuthenticator
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	HTTPMetrics       middleware.HTTPMetrics // optional

	// Services.
	AuthService     AuthService
	AuthMetrics     AuthMetrics
	FeedbackService FeedbackService
	UserService     UserService
	StatsService    StatsService
	UserLoader      UserLoader
}

// NewRouter wires all API endpoints and the middleware chain.
//
// Middleware execution order:
//
//	CORS → SecurityHeaders → Recovery → Logging → Metrics → Auth → RateLimit(General)
//
// Login and logout sit outside the authenticated group: login has no token
// yet and gets its own per-IP rate limit, and logout must work even when the
// session behind the token is already gone.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.HTTPMetrics))
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthMetrics)
	feedbackHandler := NewFeedbackHandler(deps.FeedbackService, deps.UserLoader)
	userHandler := NewUserHandler(deps.UserService, deps.UserLoader)
	statsHandler := NewStatsHandler(deps.StatsService, deps.UserLoader)

	// --- Routes without authentication ---

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/auth", func(r chi.Router) {
		// POST /api/auth/login gets the stricter per-IP limit.
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
	})

	// --- Authenticated routes ---
	// Middleware stack: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.Authenticator))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/auth/me", authHandler.Me)

		r.Route("/api/feedback", func(r chi.Router) {
			r.Get("/", feedbackHandler.List)
			r.Post("/", feedbackHandler.Submit)

			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", feedbackHandler.Update)
				r.Post("/acknowledge", feedbackHandler.Acknowledge)
			})
		})

		r.Get("/api/users/team", userHandler.Team)
		r.Get("/api/dashboard/stats", statsHandler.Stats)
	})

	return r
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mindmate-backend/internal/handlers"
	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	activityHandler *handlers.ActivityHandler,
	dashboardHandler *handlers.DashboardHandler,
	chatHandler *handlers.ChatHandler,
	exerciseHandler *handlers.ExerciseHandler,
	userHandler *handlers.UserHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Activity Routes (guest allowed) ────
		r.Route("/activities", func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.Post("/", activityHandler.Log)
			r.Get("/", activityHandler.List)
			r.Get("/today", activityHandler.Today)
			r.Delete("/", activityHandler.Clear)
		})

		// ──── Dashboard Routes (guest allowed) ────
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.Get("/summary", dashboardHandler.Summary)
			r.Get("/insights", dashboardHandler.Insights)
			r.Get("/mood-series", dashboardHandler.MoodSeries)
			r.Get("/breakdown", dashboardHandler.Breakdown)
		})

		// ──── Chat Routes (guest allowed) ────
		r.Route("/chat", func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.Post("/messages", chatHandler.Send)
			r.Get("/history", chatHandler.History)
			r.Delete("/history", chatHandler.Clear)
		})

		// ──── Guided Exercise Routes (guest allowed) ────
		r.Route("/exercises", func(r chi.Router) {
			r.Use(jwtAuth.OptionalMiddleware)
			r.Get("/", exerciseHandler.List)
			r.Post("/start", exerciseHandler.Start)
			r.Get("/state", exerciseHandler.State)
			r.Post("/stop", exerciseHandler.Stop)
		})

		// ──── User & Settings Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Get("/me", userHandler.Me)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.OptionalMiddleware)
				r.Get("/theme", userHandler.GetTheme)
				r.Put("/theme", userHandler.SetTheme)
			})
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}

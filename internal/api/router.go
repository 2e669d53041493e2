package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/yfcm/prayer-chain/internal/api/handlers"
	"github.com/yfcm/prayer-chain/internal/api/middleware"
	"github.com/yfcm/prayer-chain/internal/config"
	"github.com/yfcm/prayer-chain/internal/presence"
	"github.com/yfcm/prayer-chain/internal/service"
	"github.com/yfcm/prayer-chain/internal/websocket"
)

func NewRouter(services *service.Services, tracker *presence.Tracker, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(services.Auth)
	watchHandler := handlers.NewWatchHandler(services.Watch)
	eventHandler := handlers.NewEventHandler(services.Event)
	prayerHandler := handlers.NewPrayerHandler(services.Prayer)
	activityHandler := handlers.NewActivityHandler(services.Activity)
	presenceHandler := handlers.NewPresenceHandler(tracker)
	adminHandler := handlers.NewAdminHandler(services.Auth)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth, cfg)

	authRequired := middleware.Auth(services.Auth, cfg)
	authOptional := middleware.OptionalAuth(services.Auth, cfg)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Get("/me", authHandler.Me)
				r.Put("/me", authHandler.UpdateMe)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Get("/event", eventHandler.Timing)

		r.Get("/themes", eventHandler.Themes)
		r.Get("/themes/{hourBlock}", eventHandler.Theme)

		r.Route("/watches", func(r chi.Router) {
			r.With(authOptional).Get("/", watchHandler.List)
			r.Get("/coverage", watchHandler.Coverage)
			r.With(authRequired).Post("/{hourIdx}/claim", watchHandler.Claim)
		})

		r.Route("/prayers", func(r chi.Router) {
			r.Get("/", prayerHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Post("/", prayerHandler.Create)
				r.Post("/{id}/amen", prayerHandler.Amen)
			})
		})

		r.Get("/activity", activityHandler.Recent)

		r.Route("/presence", func(r chi.Router) {
			r.Get("/", presenceHandler.Count)
			r.Group(func(r chi.Router) {
				r.Use(authRequired)
				r.Post("/heartbeat", presenceHandler.Heartbeat)
				r.Post("/leave", presenceHandler.Leave)
			})
		})

		// Organizer-only routes.
		r.Group(func(r chi.Router) {
			r.Use(authRequired)
			r.Use(middleware.AdminOnly)
			r.Put("/event/start-date", eventHandler.UpdateStartDate)
			r.Put("/themes/{hourBlock}", eventHandler.UpdateTheme)
			r.Get("/admin/users", adminHandler.ListUsers)
			r.Delete("/admin/users/{userID}/watches", watchHandler.ClearUser)
			r.Delete("/prayers/{id}", prayerHandler.Delete)
		})

		r.Get("/ws", wsHandler.Serve)
	})

	return r
}

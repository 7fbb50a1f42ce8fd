package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nitesh-shaw-098/m-indicator-app/internal/notify"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/transit"
	"github.com/nitesh-shaw-098/m-indicator-app/internal/userdata"
)

// RouterConfig holds everything the HTTP layer is wired to
type RouterConfig struct {
	Core          *transit.System
	UserData      *userdata.Service
	Notifications *notify.Feed
	Notifier      TransitionHandler
	Log           *zap.SugaredLogger
	CORSOrigins   []string
	StaticDir     string
}

// NewRouter builds the chi router with every API route
func NewRouter(cfg RouterConfig) http.Handler {
	stations := NewStationHandler(cfg.Core)
	journeys := NewJourneyHandler(cfg.Core, cfg.UserData, cfg.Log)
	liveTrains := NewLiveHandler(cfg.Core, cfg.Notifier)
	users := NewUserDataHandler(cfg.UserData)
	notifications := NewNotificationHandler(cfg.Notifications, cfg.Core)
	health := NewHealthHandler(cfg.UserData, cfg.Core)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(cfg.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", health.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/stations", stations.SearchStations)
		r.Get("/stations/nearest", stations.GetNearestStation)
		r.Get("/stations/{id}", stations.GetStation)
		r.Get("/lines/{line}/stations", stations.GetLineStations)

		r.Get("/schedule", journeys.GetSchedule)
		r.Get("/fares", journeys.GetFare)
		r.Get("/routes", journeys.GetRoutes)

		r.Get("/live/feed", liveTrains.GetFeed)
		r.Get("/live/{line}", liveTrains.GetLine)
		r.Get("/live/{line}/stats", liveTrains.GetStats)
		r.Post("/live/{line}/refresh", liveTrains.RefreshLine)

		r.Get("/favorites", users.GetFavorites)
		r.Post("/favorites", users.AddFavorite)
		r.Delete("/favorites/{index}", users.RemoveFavorite)
		r.Get("/preferences", users.GetPreferences)
		r.Put("/preferences", users.SavePreferences)
		r.Get("/recent-searches", users.GetRecentSearches)

		r.Get("/service-updates", notifications.GetServiceUpdates)
		r.Get("/notifications", notifications.GetNotifications)
		r.Delete("/notifications", notifications.ClearNotifications)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}

func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}

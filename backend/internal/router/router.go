package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itchan-dev/forum/backend/internal/setup"
	mw "github.com/itchan-dev/forum/shared/middleware"
	"github.com/itchan-dev/forum/shared/middleware/metrics"
	rl "github.com/itchan-dev/forum/shared/middleware/ratelimiter"
)

// New creates the chi router with every route of the API.
func New(deps *setup.Dependencies) http.Handler {
	cfg := deps.Config.Public
	h := deps.Handler

	r := chi.NewRouter()
	r.Use(mw.RequestLogger)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{mw.RequestIdHeader},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(cfg.SecureHeaders))

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		if cfg.AuthRateLimit > 0 {
			r.Use(mw.RateLimit(rl.New(cfg.AuthRateLimit, max(cfg.AuthRateLimit, 1), time.Hour), mw.ByIP))
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.NeedAuth())

		r.Get("/threads", h.GetThreads)

		r.Get("/thread", h.GetThread)
		r.Post("/thread", h.CreateThread)
		r.Put("/thread", h.UpdateThread)
		r.Delete("/thread", h.DeleteThread)
		r.Put("/thread/like", h.LikeThread)
		r.Put("/thread/watch", h.WatchThread)

		r.Get("/comments", h.GetComments)
		r.Post("/comment", h.CreateComment)
		r.Put("/comment", h.UpdateComment)
		r.Delete("/comment", h.DeleteComment)
		r.Put("/comment/like", h.LikeComment)

		r.Get("/user", h.GetUser)
		r.Put("/user", h.UpdateUser)
		r.Put("/user/admin", h.SetAdmin)
	})

	return r
}

package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"brandmatch-service/internal/config"
	matchHnd "brandmatch-service/internal/match/handler"
	"brandmatch-service/internal/middleware"
	"brandmatch-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/inspect", matchHnd.Inspect(cfg, logger))
	r.Post("/match", matchHnd.Match(cfg, logger))
	r.Post("/match/export", matchHnd.Export(cfg, logger))

	return r
}

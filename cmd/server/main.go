package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jaroslavdusek1/metasnap/internal/api"
	"github.com/jaroslavdusek1/metasnap/internal/config"
	imagepkg "github.com/jaroslavdusek1/metasnap/internal/image"
	"github.com/jaroslavdusek1/metasnap/internal/logging"
	"github.com/jaroslavdusek1/metasnap/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logging.New(os.Stderr, "error")
		l.Fatal().Err(err).Msg("config failed")
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)

	r := newRouter(cfg, logger)

	logger.Log().Msg("starting server on http://localhost:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func newRouter(cfg config.Config, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	fetcher := &imagepkg.Fetcher{Client: util.NewHTTPClient(cfg.HTTPTimeout)}
	api.RegisterRoutes(r, api.NewHandlers(fetcher), logger)
	return r
}

package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func RegisterRoutes(r *gin.Engine, h *Handlers, logger zerolog.Logger) {
	api := r.Group("/api")
	api.Use(RequestLogger(logger))
	{
		api.GET("/health", health)
		api.GET("/exif", h.exifHandler)
	}
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/shared/metrics"
)

func registerRoutes(r *gin.Engine, deps RouterDeps) {
	r.GET("/", serveShell)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status())
	})

	api.POST("/documents/:slot", deps.DocumentsHandler.Upload)
	api.GET("/documents", deps.DocumentsHandler.Current)

	api.POST("/letters", deps.LettersHandler.Generate)
	api.POST("/letters/open", deps.LettersHandler.Open)

	api.GET("/settings", deps.SettingsHandler.Get)
	api.PUT("/settings", deps.SettingsHandler.Update)
}

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"transformer-load/internal/api/handlers"
	"transformer-load/internal/api/middleware"
	"transformer-load/internal/config"
	"transformer-load/internal/logger"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware, API routes and, when present, the static SPA.
func NewRouter(cfg config.ServerConfig) *gin.Engine {
	log := logger.GetLogger().WithComponent("api")

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.AllowedOrigins...))
	router.Use(middleware.Logger())

	transformerDir := cfg.ResolveTransformerDir()
	diagnosisHandler := handlers.NewDiagnosisHandler(transformerDir)
	transformerHandler := handlers.NewTransformerHandler(transformerDir)
	thresholdHandler := handlers.NewThresholdHandler()
	rankHandler := handlers.NewRankHandler(diagnosisHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/assessment", diagnosisHandler.Assess)
		api.POST("/diagnosis", diagnosisHandler.Diagnose)
		api.POST("/fleet/rank", rankHandler.RankFleet)

		api.GET("/transformers", transformerHandler.ListTransformers)
		api.GET("/thresholds", thresholdHandler.ListThresholds)
	}

	staticDir := cfg.StaticDir
	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", filepath.Join(staticDir, "assets"))
		router.StaticFile("/favicon.ico", filepath.Join(staticDir, "favicon.ico"))

		// SPA routing: everything outside /api falls back to index.html.
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
				return
			}
			c.File(filepath.Join(staticDir, "index.html"))
		})
		log.WithFields(logger.Fields{"dir": staticDir}).Info("serving static files")
	} else {
		log.WithFields(logger.Fields{"dir": staticDir}).Info("static directory not found, skipping static file serving")
	}

	return router
}

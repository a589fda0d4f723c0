package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"dnsveil/internal/api/handlers"
	"dnsveil/internal/api/middleware"
	"dnsveil/internal/config"

	_ "dnsveil/internal/api/docs" // swagger docs
)

// RegisterRoutes mounts every endpoint on the router.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/diagnostics", h.Diagnostics)

	api.GET("/capacity", h.Capacity)
	api.POST("/encode/preview", h.EncodePreview)

	api.GET("/profiles", h.ListProfiles)
	api.POST("/profiles", h.SaveProfile)
	api.GET("/profiles/:name", h.GetProfile)
	api.DELETE("/profiles/:name", h.DeleteProfile)

	api.GET("/journal", h.Journal)
}

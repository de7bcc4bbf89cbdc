package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chronoline/backend/internal/handlers"
)

type RouterConfig struct {
	AllowOrigins    []string
	EventHandler    *handlers.EventHandler
	CategoryHandler *handlers.CategoryHandler
	IngestHandler   *handlers.IngestHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/categories", cfg.CategoryHandler.GetTree)
		api.GET("/events", cfg.EventHandler.List)
		api.GET("/events/:id", cfg.EventHandler.GetByID)
		api.POST("/admin/ingest", cfg.IngestHandler.Ingest)
	}

	return router
}

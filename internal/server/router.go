package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/handlers"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/middleware"
)

type RouterConfig struct {
	Log                 *logger.Logger
	EntryHandler        *handlers.EntryHandler
	StatsHandler        *handlers.StatsHandler
	HeatmapHandler      *handlers.HeatmapHandler
	StackHandler        *handlers.StackHandler
	GamificationHandler *handlers.GamificationHandler
	GoalHandler         *handlers.GoalHandler
	InsightHandler      *handlers.InsightHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Entries
		api.POST("/entries/parse", cfg.EntryHandler.Parse)
		api.POST("/entries", cfg.EntryHandler.Create)
		api.GET("/entries", cfg.EntryHandler.List)
		api.GET("/entries/export", cfg.EntryHandler.Export)
		// Analytics
		api.GET("/stats", cfg.StatsHandler.Get)
		api.GET("/heatmap", cfg.HeatmapHandler.Get)
		// Stacks
		api.GET("/stacks/suggestions", cfg.StackHandler.Suggestions)
		api.GET("/stacks", cfg.StackHandler.List)
		api.POST("/stacks", cfg.StackHandler.Create)
		api.DELETE("/stacks/:id", cfg.StackHandler.Deactivate)
		// Gamification
		api.GET("/gamification", cfg.GamificationHandler.Get)
		// Goals
		api.GET("/goals", cfg.GoalHandler.List)
		api.POST("/goals", cfg.GoalHandler.Create)
		api.PUT("/goals/:id", cfg.GoalHandler.Update)
		api.DELETE("/goals/:id", cfg.GoalHandler.Delete)
		// Insights
		api.GET("/insights", cfg.InsightHandler.Get)
	}

	return router
}

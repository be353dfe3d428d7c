package main

import (
	"fmt"
	"os"

	"github.com/habitloop/habitloop-backend/internal/classifier"
	"github.com/habitloop/habitloop-backend/internal/db"
	"github.com/habitloop/habitloop-backend/internal/handlers"
	"github.com/habitloop/habitloop-backend/internal/logger"
	"github.com/habitloop/habitloop-backend/internal/repos"
	"github.com/habitloop/habitloop-backend/internal/server"
	"github.com/habitloop/habitloop-backend/internal/services"
	"github.com/habitloop/habitloop-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := utils.GetEnv("PORT", "8080", log)

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	entryRepo := repos.NewHabitEntryRepo(theDB, log)
	goalRepo := repos.NewGoalRepo(theDB, log)
	profileRepo := repos.NewUserProfileRepo(theDB, log)
	badgeRepo := repos.NewBadgeRepo(theDB, log)
	stackRepo := repos.NewHabitStackRepo(theDB, log)

	// Oracle is optional: without an API key the rule tables carry
	// classification on their own.
	var oracle services.OracleClient
	oracleClient, err := services.NewOracleClient(log)
	if err != nil {
		log.Warn("Oracle unavailable, using rule-based classification only", "error", err)
	} else {
		oracle = oracleClient
	}

	// Services
	log.Info("Setting up Services from main...")
	var classifierOracle classifier.Oracle
	if oracle != nil {
		classifierOracle = oracle
	}
	entryClassifier := classifier.New(log, classifierOracle)
	goalService := services.NewGoalService(theDB, log, goalRepo, entryRepo)
	entryService := services.NewEntryService(theDB, log, entryRepo, goalService, entryClassifier)
	statsService := services.NewStatsService(theDB, log, entryRepo)
	heatmapService := services.NewHeatmapService(theDB, log, entryRepo)
	stackService := services.NewStackService(theDB, log, stackRepo, entryRepo)
	gamificationService := services.NewGamificationService(theDB, log, entryRepo, goalRepo, profileRepo, badgeRepo)
	insightService := services.NewInsightService(theDB, log, entryRepo, goalRepo, oracle)

	// Handlers
	log.Info("Setting up Handlers from main...")
	entryHandler := handlers.NewEntryHandler(log, entryService)
	statsHandler := handlers.NewStatsHandler(log, statsService)
	heatmapHandler := handlers.NewHeatmapHandler(log, heatmapService)
	stackHandler := handlers.NewStackHandler(log, stackService)
	gamificationHandler := handlers.NewGamificationHandler(log, gamificationService)
	goalHandler := handlers.NewGoalHandler(log, goalService)
	insightHandler := handlers.NewInsightHandler(log, insightService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:                 log,
		EntryHandler:        entryHandler,
		StatsHandler:        statsHandler,
		HeatmapHandler:      heatmapHandler,
		StackHandler:        stackHandler,
		GamificationHandler: gamificationHandler,
		GoalHandler:         goalHandler,
		InsightHandler:      insightHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}

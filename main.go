// main.go
package main

import (
	"context"
	"log"
	"time"

	"book-review/cmd"
	"book-review/internal/data/repository"
	"book-review/internal/wire"
	"book-review/pkg/database"
	"book-review/pkg/rating"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("session_driver", config.Session.Driver),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	if config.Session.Driver == "redis" {
		rdb, err := database.InitRedis(config.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		repos.Session = repository.NewRedisSessionRepository(rdb, logger)
		logger.Info("Redis session store enabled", zap.String("addr", config.Redis.Addr))
	}

	cleanCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repos.Session.CleanExpiredSessions(cleanCtx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	}
	cancel()

	ratings := rating.NewClient(
		config.Rating.URL,
		config.Rating.Key,
		time.Duration(config.Rating.TimeoutSeconds)*time.Second,
	)

	// Wire all dependencies
	app := wire.Wiring(repos, ratings, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	}
}

// Command migrate applies the schema migrations and, with -seed, loads the
// book catalog into an empty books table.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"book-review/internal/data/repository"
	"book-review/internal/seed"
	"book-review/pkg/database"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	seedPath := flag.String("seed", "", "path to books.csv to load into an empty catalog")
	flag.Parse()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name+"-migrate", config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Migrations applied")

	if *seedPath == "" {
		return
	}

	f, err := os.Open(*seedPath)
	if err != nil {
		logger.Fatal("Failed to open seed file", zap.Error(err), zap.String("path", *seedPath))
	}
	defer f.Close()

	repos := repository.NewRepository(db, logger)
	if _, err := seed.NewLoader(repos.Book, logger).Load(ctx, f); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
}

// The token refresh job keeps the Dropbox access token the backup
// scripts depend on from expiring, rewriting the token env file every
// four hours.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/config"
	"github.com/mclemoreauction/tools/internal/dropbox"
)

const refreshInterval = 4 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Default()
	cfg.ApplyEnv()

	client, err := dropbox.NewClient(cfg.Dropbox.AppKey, cfg.Dropbox.AppSecret, cfg.Dropbox.RefreshToken, logger)
	if err != nil {
		logger.Fatal("failed to initialize dropbox client", zap.Error(err))
	}

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := client.RefreshToFile(ctx, cfg.Dropbox.TokenFile); err != nil {
			logger.Error("failed to refresh token", zap.Error(err))
		}
		cancel()
		<-ticker.C
	}
}

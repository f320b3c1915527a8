// The monitor pings the tools site on an interval and emails an alert
// when it stops answering. It runs as its own process so an outage of
// the main service cannot take the watchdog down with it.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/config"
	"github.com/mclemoreauction/tools/internal/mailer"
)

const defaultInterval = time.Hour

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

	url := os.Getenv("MONITOR_URL")
	if url == "" {
		url = "https://tools.mclemoreauction.com"
	}

	m, err := mailer.New(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", zap.Error(err))
	}

	client := &http.Client{Timeout: 30 * time.Second}
	ticker := time.NewTicker(defaultInterval)
	defer ticker.Stop()

	logger.Info("monitor started", zap.String("url", url))
	for {
		checkWebsite(client, m, url, logger)
		<-ticker.C
	}
}

func checkWebsite(client *http.Client, m *mailer.Mailer, url string, logger *zap.Logger) {
	resp, err := client.Get(url)
	if err != nil {
		logger.Error("website unreachable", zap.Error(err))
		alert(m, fmt.Sprintf("Website %s is down. Error: %v", url, err), logger)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("website unhealthy", zap.Int("status", resp.StatusCode))
		alert(m, fmt.Sprintf("Website %s is down. Status code: %d", url, resp.StatusCode), logger)
	}
}

func alert(m *mailer.Mailer, body string, logger *zap.Logger) {
	if err := m.Send("Website Down Alert", body); err != nil {
		logger.Error("failed to send alert email", zap.Error(err))
	}
}

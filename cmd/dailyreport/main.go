// The daily report job emails new QR-code scan counts per auction each
// night at 12:01 AM Central.
package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/config"
	"github.com/mclemoreauction/tools/internal/mailer"
	"github.com/mclemoreauction/tools/internal/scans"
)

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

	store, err := scans.OpenStore(cfg.Server.DataDir)
	if err != nil {
		logger.Fatal("failed to open scan store", zap.Error(err))
	}
	defer store.Close()

	m, err := mailer.New(cfg.SMTP, logger)
	if err != nil {
		logger.Fatal("failed to initialize mailer", zap.Error(err))
	}

	central, err := time.LoadLocation("America/Chicago")
	if err != nil {
		logger.Fatal("failed to load timezone", zap.Error(err))
	}

	c := cron.New(cron.WithLocation(central))
	if _, err := c.AddFunc("1 0 * * *", func() { sendDailyReport(store, m, central, logger) }); err != nil {
		logger.Fatal("failed to schedule report", zap.Error(err))
	}

	logger.Info("daily report scheduler started")
	c.Run()
}

func sendDailyReport(store *scans.Store, m *mailer.Mailer, loc *time.Location, logger *zap.Logger) {
	now := time.Now().In(loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	entries, err := store.DailyReport(startOfDay)
	if err != nil {
		logger.Error("failed to build daily report", zap.Error(err))
		return
	}
	if len(entries) == 0 {
		logger.Info("no new QR scans to report today")
		return
	}

	var b strings.Builder
	b.WriteString("Daily QR Code Scan Report:\n\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "Auction Code: %s, New Scans: %d\n", e.AuctionCode, e.NewScans)
	}

	logger.Info("new scans detected, sending report", zap.Int("auctions", len(entries)))
	if err := m.Send("Daily QR Code Scan Report", b.String()); err != nil {
		logger.Error("failed to send report email", zap.Error(err))
	}
}

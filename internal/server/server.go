package server

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/auction"
	"github.com/mclemoreauction/tools/internal/config"
	"github.com/mclemoreauction/tools/internal/labels"
	"github.com/mclemoreauction/tools/internal/letters"
	"github.com/mclemoreauction/tools/internal/lob"
	"github.com/mclemoreauction/tools/internal/scans"
)

// AuctionAPI is the slice of the AuctionMethod client the handlers use.
type AuctionAPI interface {
	GetDetails(ctx context.Context, auctionCode string) (*auction.Details, error)
	Search(ctx context.Context, query string) ([]auction.Summary, error)
}

// MailAPI is the slice of the Lob client the handlers use.
type MailAPI interface {
	SendBatch(ctx context.Context, addresses []lob.Address, html string, mergeVars func(lob.Address) map[string]string, description string) (lob.BatchResult, error)
}

// LabelRenderer produces label PDFs.
type LabelRenderer interface {
	DetailedSheets(p labels.Params) ([]byte, error)
	StandardLabels(p labels.Params) ([]byte, error)
}

type Server struct {
	cfg       *config.Config
	log       *zap.Logger
	auctions  AuctionAPI
	mail      MailAPI
	labels    LabelRenderer
	templates *letters.Store
	scans     *scans.Store
}

// NewServer wires the service's collaborators from configuration.
func NewServer(cfg *config.Config, log *zap.Logger) (*Server, error) {
	auctionClient, err := auction.NewClient(cfg.Auction.BaseURL, cfg.Auction.APIKey, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auction client: %w", err)
	}

	lobClient, err := lob.NewClient(cfg.Lob.APIKey, lob.Address{
		Name:  cfg.Lob.FromName,
		Line1: cfg.Lob.FromLine1,
		City:  cfg.Lob.FromCity,
		State: cfg.Lob.FromState,
		Zip:   cfg.Lob.FromZip,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lob client: %w", err)
	}

	templateStore, err := letters.OpenStore(cfg.Server.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open letter template store: %w", err)
	}

	scanStore, err := scans.OpenStore(cfg.Server.DataDir)
	if err != nil {
		templateStore.Close()
		return nil, fmt.Errorf("failed to open scan store: %w", err)
	}

	fontPath := os.Getenv("LABEL_FONT_FILE")
	if fontPath == "" {
		fontPath = "fonts/Helvetica.ttf"
	}

	return &Server{
		cfg:       cfg,
		log:       log,
		auctions:  auctionClient,
		mail:      lobClient,
		labels:    labels.NewGenerator(cfg.Auction.SiteURL, fontPath, log),
		templates: templateStore,
		scans:     scanStore,
	}, nil
}

func (s *Server) Close() {
	s.templates.Close()
	s.scans.Close()
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)

	r.POST("/letters/process", s.ProcessCSV)
	r.GET("/letters/template/:code", s.GetTemplate)
	r.PUT("/letters/template/:code", s.PutTemplate)
	r.GET("/letters/default/:code", s.DefaultTemplate)
	r.POST("/letters/send/:code", s.SendLetters)

	r.GET("/auctions/search", s.SearchAuctions)
	r.GET("/auctions/:code", s.AuctionDetails)

	r.POST("/labels/generate", s.GenerateLabels)
	r.GET("/scan/:code/:lot", s.RecordScan)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail writes the error envelope every endpoint shares.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

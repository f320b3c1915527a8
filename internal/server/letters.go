package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/auction"
	"github.com/mclemoreauction/tools/internal/csvproc"
	"github.com/mclemoreauction/tools/internal/letters"
	"github.com/mclemoreauction/tools/internal/lob"
)

// ProcessCSV ingests an uploaded neighbor-address CSV for an auction:
// normalize, filter, dedupe, persist, and report the stats back.
func (s *Server) ProcessCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		fail(c, http.StatusBadRequest, "Only CSV files are allowed")
		return
	}

	auctionCode := strings.TrimSpace(c.PostForm("auction_code"))
	if auctionCode == "" {
		fail(c, http.StatusBadRequest, "Auction code is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	s.log.Info("processing upload",
		zap.String("auction_code", auctionCode),
		zap.String("filename", fileHeader.Filename),
		zap.Int("bytes", len(data)))

	processor := csvproc.NewProcessor(s.log)
	records, stats, err := processor.Process(data)
	if err != nil {
		var formatErr *csvproc.FormatError
		switch {
		case errors.Is(err, csvproc.ErrEmptyFile):
			fail(c, http.StatusBadRequest, "The CSV file is empty")
		case errors.As(err, &formatErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"success":      false,
				"message":      formatErr.Error(),
				"stats":        stats,
				"auction_code": auctionCode,
			})
		case errors.Is(err, csvproc.ErrNoValidRows):
			fail(c, http.StatusBadRequest, err.Error())
		default:
			s.log.Error("failed to process CSV", zap.Error(err))
			fail(c, http.StatusInternalServerError, "Error processing data: "+err.Error())
		}
		return
	}

	if err := letters.SaveProcessed(s.cfg.Server.DataDir, auctionCode, records); err != nil {
		s.log.Error("failed to save processed addresses", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error saving processed addresses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "File processed successfully",
		"stats":        stats,
		"auction_code": auctionCode,
	})
}

func (s *Server) GetTemplate(c *gin.Context) {
	auctionCode := c.Param("code")

	content, err := s.templates.Get(auctionCode)
	if errors.Is(err, letters.ErrTemplateNotFound) {
		fail(c, http.StatusNotFound, "No letter template found for this auction")
		return
	}
	if err != nil {
		s.log.Error("failed to read letter template", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error reading letter template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"auction_code": auctionCode,
		"content":      content,
	})
}

type putTemplateRequest struct {
	Content string `json:"content"`
}

func (s *Server) PutTemplate(c *gin.Context) {
	auctionCode := strings.TrimSpace(c.Param("code"))
	if auctionCode == "" {
		fail(c, http.StatusBadRequest, "Auction code is required")
		return
	}

	var req putTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		fail(c, http.StatusBadRequest, "Letter content is required")
		return
	}

	if err := s.templates.Put(auctionCode, req.Content); err != nil {
		s.log.Error("failed to save letter template", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error saving letter template")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Letter template saved successfully",
		"auction_code": auctionCode,
	})
}

// DefaultTemplate renders the stock letter for an auction so the editor
// has a starting point before anything was saved.
func (s *Server) DefaultTemplate(c *gin.Context) {
	auctionCode := c.Param("code")

	details, err := s.auctions.GetDetails(c.Request.Context(), auctionCode)
	if errors.Is(err, auction.ErrNotFound) {
		fail(c, http.StatusNotFound, "Could not find auction")
		return
	}
	if err != nil {
		s.log.Error("failed to fetch auction details", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error getting auction details")
		return
	}

	content, err := letters.DefaultLetter(details, s.cfg.Auction.SiteURL)
	if err != nil {
		s.log.Error("failed to render default letter", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error generating letter content")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"auction_code": auctionCode,
		"content":      content,
	})
}

// SendLetters mails the stored (or default) letter to every processed
// address of the auction through Lob.
func (s *Server) SendLetters(c *gin.Context) {
	auctionCode := c.Param("code")

	records, err := letters.LoadProcessed(s.cfg.Server.DataDir, auctionCode)
	if errors.Is(err, letters.ErrNoProcessedAddresses) {
		fail(c, http.StatusBadRequest, "No processed data found. Please upload a CSV file first.")
		return
	}
	if err != nil {
		s.log.Error("failed to load processed addresses", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error loading processed addresses")
		return
	}

	html, err := s.templates.Get(auctionCode)
	if errors.Is(err, letters.ErrTemplateNotFound) {
		details, detailsErr := s.auctions.GetDetails(c.Request.Context(), auctionCode)
		if detailsErr != nil {
			fail(c, http.StatusBadRequest, "No letter template saved and auction details are unavailable")
			return
		}
		html, err = letters.DefaultLetter(details, s.cfg.Auction.SiteURL)
	}
	if err != nil {
		s.log.Error("failed to resolve letter content", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error resolving letter content")
		return
	}

	addresses := make([]lob.Address, 0, len(records))
	for _, r := range records {
		addresses = append(addresses, lob.Address{
			Name:  r.Name,
			Line1: r.Address,
			City:  r.City,
			State: r.State,
			Zip:   r.Zip,
		})
	}

	result, err := s.mail.SendBatch(c.Request.Context(), addresses, html,
		func(addr lob.Address) map[string]string {
			return map[string]string{"name": addr.Name}
		},
		"Neighbor Letters - Auction "+auctionCode)
	if err != nil {
		s.log.Error("failed to send letters", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error sending letters: "+err.Error())
		return
	}

	invalid := make([]gin.H, 0, len(result.Failed))
	for _, f := range result.Failed {
		invalid = append(invalid, gin.H{"address": f.Address, "reason": f.Reason})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Letters sent successfully",
		"auction_code": auctionCode,
		"details": gin.H{
			"addresses_sent":    len(result.Sent),
			"invalid_addresses": invalid,
		},
	})
}

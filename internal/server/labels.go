package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/labels"
)

// GenerateLabels renders a lot-label PDF and streams it back as a
// download.
func (s *Server) GenerateLabels(c *gin.Context) {
	auctionCode := c.PostForm("auction_code")

	startLot, err := strconv.Atoi(c.PostForm("starting_lot"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Starting lot must be a number")
		return
	}
	endLot, err := strconv.Atoi(c.PostForm("ending_lot"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Ending lot must be a number")
		return
	}

	params := labels.Params{AuctionCode: auctionCode, StartLot: startLot, EndLot: endLot}
	if err := params.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var pdf []byte
	switch c.DefaultPostForm("label_type", "detailed") {
	case "standard":
		pdf, err = s.labels.StandardLabels(params)
	case "detailed":
		pdf, err = s.labels.DetailedSheets(params)
	default:
		fail(c, http.StatusBadRequest, "Unknown label type")
		return
	}
	if err != nil {
		s.log.Error("failed to generate labels",
			zap.String("auction_code", auctionCode), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error generating labels. Please check your input and try again.")
		return
	}

	filename := fmt.Sprintf("auction_labels_%s.pdf", auctionCode)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// RecordScan logs a QR-code hit and forwards the visitor to the lot
// page. Tracking failures never block the redirect.
func (s *Server) RecordScan(c *gin.Context) {
	auctionCode := c.Param("code")
	lot, err := strconv.Atoi(c.Param("lot"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid lot number")
		return
	}

	if err := s.scans.Record(auctionCode, lot, time.Now()); err != nil {
		s.log.Error("failed to record scan",
			zap.String("auction_code", auctionCode), zap.Int("lot", lot), zap.Error(err))
	}

	target := fmt.Sprintf("%s/auction/%s/lot/%04d", s.cfg.Auction.SiteURL, auctionCode, lot)
	c.Redirect(http.StatusFound, target)
}

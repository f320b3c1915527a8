package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/auction"
)

func (s *Server) AuctionDetails(c *gin.Context) {
	auctionCode := c.Param("code")

	details, err := s.auctions.GetDetails(c.Request.Context(), auctionCode)
	if errors.Is(err, auction.ErrNotFound) {
		fail(c, http.StatusNotFound, "Could not find auction")
		return
	}
	if err != nil {
		s.log.Error("failed to fetch auction details",
			zap.String("auction_code", auctionCode), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error getting auction details")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "auction": details})
}

func (s *Server) SearchAuctions(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "auctions": []auction.Summary{}})
		return
	}

	results, err := s.auctions.Search(c.Request.Context(), query)
	if err != nil {
		s.log.Error("failed to search auctions", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Error searching auctions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "auctions": results})
}

//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mclemoreauction/tools/internal/config"
	"github.com/mclemoreauction/tools/internal/server"
)

// TestFullFlow exercises the service against the real AuctionMethod
// API: upload a CSV, fetch the default letter, save an edited template.
// Letters are not sent; that would cost postage.
func TestFullFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")

	if os.Getenv("AM_API_KEY") == "" {
		t.Skip("Skipping integration test: AM_API_KEY not set")
	}
	if os.Getenv("LOB_API_KEY") == "" {
		t.Skip("Skipping integration test: LOB_API_KEY not set")
	}
	auctionCode := os.Getenv("TEST_AUCTION_CODE")
	if auctionCode == "" {
		t.Skip("Skipping integration test: TEST_AUCTION_CODE not set")
	}

	cfg := config.Default()
	cfg.Server.DataDir = t.TempDir()
	cfg.ApplyEnv()

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	srv, err := server.NewServer(cfg, logger)
	require.NoError(t, err)
	defer srv.Close()
	router := srv.SetupRouter()

	// Auction details resolve for the configured code.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auctions/"+auctionCode, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Upload a small CSV.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "neighbors.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Name,Address,City,State,Zip\nJohn Doe,123 Main St,Columbia,TN,38401\n"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("auction_code", auctionCode))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/letters/process", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	// The default letter renders from live auction details.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/letters/default/"+auctionCode, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

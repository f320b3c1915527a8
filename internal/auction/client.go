package auction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when the auction code does not exist.
var ErrNotFound = errors.New("auction not found")

// APIError is a non-404 failure reported by the AuctionMethod API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("auction API returned status %d: %s", e.StatusCode, e.Message)
}

// Details is the normalized view of one auction used by letters and labels.
// Description is plain text; Manager is extracted from the raw HTML
// before cleaning.
type Details struct {
	AuctionCode string      `json:"auction_code"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location"`
	Manager     ManagerInfo `json:"-"`
}

// Client talks to the AuctionMethod uapi.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(baseURL, apiKey string, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("auction API key is not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}, nil
}

type auctionResponse struct {
	Message string `json:"message"`
	Auction struct {
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Starts      json.Number `json:"starts"`
		Timezone    string      `json:"timezone"`
		Address     string      `json:"address"`
		City        string      `json:"city"`
		State       string      `json:"state"`
		Zip         string      `json:"zip"`
	} `json:"auction"`
}

// GetDetails fetches and normalizes one auction. The HTML description is
// reduced to plain text; the starts timestamp becomes a YYYY-MM-DD date.
func (c *Client) GetDetails(ctx context.Context, auctionCode string) (*Details, error) {
	endpoint := fmt.Sprintf("%s/auction/%s", c.baseURL, url.PathEscape(auctionCode))
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Message: string(body)}
	}

	var resp auctionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode auction response: %w", err)
	}
	if resp.Message != "success" {
		return nil, &APIError{StatusCode: status, Message: resp.Message}
	}

	a := resp.Auction
	date := ""
	if a.Starts != "" {
		if ts, err := strconv.ParseInt(a.Starts.String(), 10, 64); err == nil {
			date = time.Unix(ts, 0).Format("2006-01-02")
		}
	}

	c.log.Info("fetched auction details", zap.String("auction_code", auctionCode))
	return &Details{
		AuctionCode: auctionCode,
		Title:       a.Title,
		Description: CleanDescription(a.Description),
		Date:        date,
		Time:        a.Timezone,
		Location:    fmt.Sprintf("%s, %s, %s %s", a.Address, a.City, a.State, a.Zip),
		Manager:     ExtractManagerInfo(a.Description),
	}, nil
}

type searchResponse struct {
	Message  string `json:"message"`
	Auctions []struct {
		AuctionCode string `json:"auction_code"`
		Title       string `json:"title"`
	} `json:"auctions"`
}

// Summary is one search hit.
type Summary struct {
	AuctionCode string `json:"auction_code"`
	Title       string `json:"title"`
}

func (c *Client) Search(ctx context.Context, query string) ([]Summary, error) {
	endpoint := fmt.Sprintf("%s/auctions?q=%s", c.baseURL, url.QueryEscape(query))
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Message: string(body)}
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]Summary, 0, len(resp.Auctions))
	for _, a := range resp.Auctions {
		results = append(results, Summary{AuctionCode: a.AuctionCode, Title: a.Title})
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("X-ApiKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("auction API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read auction API response: %w", err)
	}
	return body, resp.StatusCode, nil
}

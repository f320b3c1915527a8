// Package dropbox refreshes the short-lived Dropbox access token the
// backup jobs use. The refreshed token is written to an env file that
// other processes source.
package dropbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const tokenURL = "https://api.dropbox.com/oauth2/token"

// Client performs OAuth2 refresh-token grants against Dropbox.
type Client struct {
	appKey       string
	appSecret    string
	refreshToken string
	tokenURL     string
	httpClient   *http.Client
	log          *zap.Logger
}

func NewClient(appKey, appSecret, refreshToken string, log *zap.Logger) (*Client, error) {
	if appKey == "" || appSecret == "" || refreshToken == "" {
		return nil, errors.New("dropbox app key, secret and refresh token are required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		appKey:       appKey,
		appSecret:    appSecret,
		refreshToken: refreshToken,
		tokenURL:     tokenURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		log:          log,
	}, nil
}

// SetTokenURL points the client at a different endpoint. Tests use it.
func (c *Client) SetTokenURL(u string) { c.tokenURL = u }

// Refresh exchanges the refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {c.refreshToken},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.appKey, c.appSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh returned status %d: %s", resp.StatusCode, body)
	}

	var tokenInfo struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenInfo); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenInfo.AccessToken == "" {
		return "", errors.New("token response contained no access token")
	}

	c.log.Info("refreshed Dropbox access token")
	return tokenInfo.AccessToken, nil
}

// RefreshToFile refreshes the token and rewrites the env file consumed
// by the backup scripts.
func (c *Client) RefreshToFile(ctx context.Context, path string) error {
	token, err := c.Refresh(ctx)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("DROPBOX_ACCESS_TOKEN=%q\n", token)
	if err := os.WriteFile(path, []byte(line), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

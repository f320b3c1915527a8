// Package lob is a minimal client for the Lob print-and-mail API,
// covering address verification and letter sending.
package lob

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.lob.com/v1"

// APIError is a failure reported by the Lob API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lob API returned status %d: %s", e.StatusCode, e.Message)
}

// Address is a single mail recipient.
type Address struct {
	Name  string `json:"name"`
	Line1 string `json:"address_line1"`
	City  string `json:"address_city"`
	State string `json:"address_state"`
	Zip   string `json:"address_zip"`
}

// Verification is the result of a deliverability check.
type Verification struct {
	Valid          bool   `json:"valid"`
	Deliverability string `json:"deliverability"`
}

// Letter identifies one letter accepted by Lob.
type Letter struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// BatchResult accumulates per-address outcomes of a batch send. A
// failed address does not abort the rest of the batch.
type BatchResult struct {
	Sent   []Letter
	Failed []BatchFailure
}

type BatchFailure struct {
	Address Address
	Reason  string
}

// Client talks to the Lob API. The API key doubles as the basic-auth
// username, per Lob's authentication scheme.
type Client struct {
	baseURL    string
	apiKey     string
	from       Address
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(apiKey string, from Address, log *zap.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("lob API key is not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}, nil
}

// SetBaseURL points the client at a different endpoint. Tests use it.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

type verificationRequest struct {
	PrimaryLine string `json:"primary_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
}

type verificationResponse struct {
	Deliverability string `json:"deliverability"`
}

// VerifyAddress runs a US verification. An address is valid only when
// Lob reports it as fully deliverable.
func (c *Client) VerifyAddress(ctx context.Context, addr Address) (Verification, error) {
	reqBody := verificationRequest{
		PrimaryLine: addr.Line1,
		City:        addr.City,
		State:       addr.State,
		ZipCode:     addr.Zip,
	}

	var resp verificationResponse
	if err := c.post(ctx, "/us_verifications", "", reqBody, &resp); err != nil {
		return Verification{}, fmt.Errorf("address verification failed: %w", err)
	}

	return Verification{
		Valid:          resp.Deliverability == "deliverable",
		Deliverability: resp.Deliverability,
	}, nil
}

type letterRequest struct {
	Description string            `json:"description"`
	To          Address           `json:"to"`
	From        Address           `json:"from"`
	File        string            `json:"file"`
	Color       bool              `json:"color"`
	MergeVars   map[string]string `json:"merge_variables,omitempty"`
}

// SendLetter submits one letter. mergeVars fill the {{placeholder}}
// slots of the HTML template server-side at Lob.
func (c *Client) SendLetter(ctx context.Context, to Address, html string, mergeVars map[string]string, description string) (Letter, error) {
	reqBody := letterRequest{
		Description: description,
		To:          to,
		From:        c.from,
		File:        html,
		Color:       true,
		MergeVars:   mergeVars,
	}

	var letter Letter
	idempotencyKey := uuid.NewString()
	if err := c.post(ctx, "/letters", idempotencyKey, reqBody, &letter); err != nil {
		return Letter{}, fmt.Errorf("letter creation failed: %w", err)
	}

	c.log.Info("sent letter", zap.String("letter_id", letter.ID), zap.String("to", to.Name))
	return letter, nil
}

// SendBatch verifies and sends a letter per address, collecting
// failures instead of aborting. Undeliverable addresses are reported
// with their deliverability code.
func (c *Client) SendBatch(ctx context.Context, addresses []Address, html string, mergeVars func(Address) map[string]string, description string) (BatchResult, error) {
	var result BatchResult
	for _, addr := range addresses {
		verification, err := c.VerifyAddress(ctx, addr)
		if err != nil {
			return result, err
		}
		if !verification.Valid {
			result.Failed = append(result.Failed, BatchFailure{Address: addr, Reason: verification.Deliverability})
			continue
		}

		vars := map[string]string{}
		if mergeVars != nil {
			vars = mergeVars(addr)
		}
		letter, err := c.SendLetter(ctx, addr, html, vars, description)
		if err != nil {
			result.Failed = append(result.Failed, BatchFailure{Address: addr, Reason: err.Error()})
			continue
		}
		result.Sent = append(result.Sent, letter)
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lob API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read lob API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		msg := string(body)
		if json.Unmarshal(body, &apiResp) == nil && apiResp.Error.Message != "" {
			msg = apiResp.Error.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	return json.Unmarshal(body, out)
}

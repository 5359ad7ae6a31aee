package einvoice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"gstbill/internal/config"
)

// tokenSafetyMargin is subtracted from the provider expiry so a token is
// never used in its final seconds.
const tokenSafetyMargin = 60 * time.Second

// ProviderError carries the error code and message returned by the
// e-invoice provider so handlers can surface it to the client.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("einvoice provider error %s: %s", e.Code, e.Message)
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type GenerateResponse struct {
	IRN       string `json:"Irn"`
	AckNo     string `json:"AckNo"`
	AckDt     string `json:"AckDt"`
	SignedQR  string `json:"SignedQRCode"`
	Status    string `json:"Status"`
	ErrorCode string `json:"ErrorCode,omitempty"`
	ErrorMsg  string `json:"ErrorMessage,omitempty"`
}

type CancelRequest struct {
	IRN    string `json:"Irn"`
	CnlRsn string `json:"CnlRsn"`
	CnlRem string `json:"CnlRem,omitempty"`
}

type CancelResponse struct {
	IRN        string `json:"Irn"`
	CancelDate string `json:"CancelDate"`
	Status     string `json:"Status"`
	ErrorCode  string `json:"ErrorCode,omitempty"`
	ErrorMsg   string `json:"ErrorMessage,omitempty"`
}

// Client talks to the e-invoice registration portal.
type Client struct {
	config     *config.EInvoiceConfig
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg *config.EInvoiceConfig) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		},
	}
}

// bearerToken returns the cached token, authenticating again only when
// the previous token is within the safety margin of expiry.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	payload := map[string]string{
		"username":      c.config.Provider.Username,
		"password":      c.config.Provider.Password,
		"client_id":     c.config.Provider.ClientID,
		"client_secret": c.config.Provider.ClientSecret,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth payload: %w", err)
	}

	url := fmt.Sprintf("%s/auth", c.config.Provider.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("einvoice auth returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}

	c.token = auth.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(auth.ExpiresIn)*time.Second - tokenSafetyMargin)
	return c.token, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s%s", c.config.Provider.BaseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return respBody, fmt.Errorf("einvoice API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// Generate submits an invoice payload and returns the registration result.
func (c *Client) Generate(ctx context.Context, payload *InvoicePayload) (*GenerateResponse, error) {
	respBody, err := c.postJSON(ctx, "/invoice", payload)
	if err != nil {
		return nil, err
	}

	var result GenerateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generate response: %w", err)
	}
	if result.ErrorCode != "" {
		return nil, &ProviderError{Code: result.ErrorCode, Message: result.ErrorMsg}
	}
	return &result, nil
}

// Cancel revokes a registered IRN with the given reason code.
func (c *Client) Cancel(ctx context.Context, irn, reason, remarks string) (*CancelResponse, error) {
	respBody, err := c.postJSON(ctx, "/invoice/cancel", &CancelRequest{IRN: irn, CnlRsn: reason, CnlRem: remarks})
	if err != nil {
		return nil, err
	}

	var result CancelResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cancel response: %w", err)
	}
	if result.ErrorCode != "" {
		return nil, &ProviderError{Code: result.ErrorCode, Message: result.ErrorMsg}
	}
	return &result, nil
}

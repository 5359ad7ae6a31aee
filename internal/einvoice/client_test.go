package einvoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gstbill/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.EInvoiceConfig {
	return &config.EInvoiceConfig{
		Provider: config.ProviderConfig{
			BaseURL:      baseURL,
			Username:     "seller",
			Password:     "secret",
			ClientID:     "client-1",
			ClientSecret: "client-secret",
		},
		HTTP: config.HTTPConfig{TimeoutSeconds: 5},
	}
}

func TestGenerate_Success(t *testing.T) {
	var authCalls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			atomic.AddInt64(&authCalls, 1)
			var creds map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			assert.Equal(t, "seller", creds["username"])
			assert.Equal(t, "client-1", creds["client_id"])
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok-123", TokenType: "Bearer", ExpiresIn: 3600})
		case "/invoice":
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(GenerateResponse{
				IRN:      "a1b2c3d4e5",
				AckNo:    "112010000000123",
				AckDt:    "2025-04-12 11:30:00",
				SignedQR: "signed-qr-data",
				Status:   "ACT",
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	resp, err := client.Generate(context.Background(), &InvoicePayload{Version: "1.1"})
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3d4e5", resp.IRN)
	assert.Equal(t, "112010000000123", resp.AckNo)
	assert.Equal(t, "signed-qr-data", resp.SignedQR)
	assert.EqualValues(t, 1, atomic.LoadInt64(&authCalls))
}

func TestGenerate_ReusesCachedToken(t *testing.T) {
	var authCalls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			atomic.AddInt64(&authCalls, 1)
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok-456", ExpiresIn: 3600})
		case "/invoice":
			json.NewEncoder(w).Encode(GenerateResponse{IRN: "irn-x", Status: "ACT"})
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	for i := 0; i < 3; i++ {
		_, err := client.Generate(context.Background(), &InvoicePayload{})
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, atomic.LoadInt64(&authCalls), "token should be cached across calls")
}

func TestGenerate_ReauthenticatesNearExpiry(t *testing.T) {
	var authCalls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			atomic.AddInt64(&authCalls, 1)
			// Expires inside the safety margin, so every call re-authenticates.
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok-short", ExpiresIn: 30})
		case "/invoice":
			json.NewEncoder(w).Encode(GenerateResponse{IRN: "irn-y", Status: "ACT"})
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	for i := 0; i < 2; i++ {
		_, err := client.Generate(context.Background(), &InvoicePayload{})
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, atomic.LoadInt64(&authCalls))
}

func TestGenerate_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok", ExpiresIn: 3600})
		case "/invoice":
			json.NewEncoder(w).Encode(GenerateResponse{ErrorCode: "2150", ErrorMsg: "Duplicate IRN"})
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), &InvoicePayload{})
	require.Error(t, err)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "2150", provErr.Code)
	assert.Equal(t, "Duplicate IRN", provErr.Message)
}

func TestGenerate_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), &InvoicePayload{})
	assert.ErrorContains(t, err, "status 401")
}

func TestCancel_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok", ExpiresIn: 3600})
		case "/invoice/cancel":
			var req CancelRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "irn-to-cancel", req.IRN)
			assert.Equal(t, "1", req.CnlRsn)
			json.NewEncoder(w).Encode(CancelResponse{IRN: req.IRN, Status: "CNL", CancelDate: "2025-04-13 09:00:00"})
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	resp, err := client.Cancel(context.Background(), "irn-to-cancel", "1", "duplicate entry")
	require.NoError(t, err)
	assert.Equal(t, "CNL", resp.Status)
}

func TestCancel_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok", ExpiresIn: 3600})
		case "/invoice/cancel":
			json.NewEncoder(w).Encode(CancelResponse{ErrorCode: "2270", ErrorMsg: "IRN already cancelled"})
		}
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Cancel(context.Background(), "irn-z", "1", "")
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "2270", provErr.Code)
}

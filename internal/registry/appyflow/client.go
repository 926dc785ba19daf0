// Package appyflow is the client for the appyflow GST verification API, the
// authoritative registry used to confirm tax identifiers.
package appyflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"parakh/internal/config"
	"parakh/internal/domain"
)

// Client implements port.TaxRegistry against POST /api/verifyGST.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a registry client from config.
func NewClient(cfg *config.RegistryConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type verifyRequest struct {
	GSTIN string `json:"gstin"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    *struct {
		GSTIN     string `json:"gstin"`
		TradeName string `json:"tradeName"`
		LegalName string `json:"legalName"`
		Status    string `json:"status"`
		Address   struct {
			Address1 string `json:"address1"`
			Address2 string `json:"address2"`
			City     string `json:"city"`
			State    string `json:"state"`
			Pincode  string `json:"pincode"`
		} `json:"address"`
	} `json:"data,omitempty"`
}

// LookupGSTIN queries the registry for the canonical record of a GSTIN.
// Transport errors, non-200 responses and unknown identifiers all wrap
// domain.ErrLookupFailed; the caller decides how to degrade.
func (c *Client) LookupGSTIN(ctx context.Context, gstin string) (*domain.RegistryRecord, error) {
	bodyBytes, err := json.Marshal(verifyRequest{GSTIN: gstin})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", domain.ErrLookupFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/verifyGST", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", domain.ErrLookupFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling registry: %v", domain.ErrLookupFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrLookupFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: registry returned status %d: %s",
			domain.ErrLookupFailed, resp.StatusCode, string(respBody))
	}

	var payload verifyResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrLookupFailed, err)
	}
	if !payload.Success || payload.Data == nil {
		reason := payload.Error
		if reason == "" {
			reason = "identifier not found"
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrLookupFailed, reason)
	}

	addr := payload.Data.Address
	parts := make([]string, 0, 5)
	for _, p := range []string{addr.Address1, addr.Address2, addr.City, addr.State, addr.Pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return &domain.RegistryRecord{
		GSTIN:     payload.Data.GSTIN,
		TradeName: payload.Data.TradeName,
		LegalName: payload.Data.LegalName,
		Status:    payload.Data.Status,
		Address:   strings.Join(parts, ", "),
	}, nil
}

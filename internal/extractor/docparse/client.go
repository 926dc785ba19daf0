// Package docparse is the HTTP client for the upstream document extraction
// service, which turns an uploaded PO or invoice into a flat field map.
package docparse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"parakh/internal/config"
	"parakh/internal/domain"
	"parakh/internal/port"
)

// Client implements port.DocumentExtractor against the extraction service's
// POST /extract endpoint.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an extraction client from config.
func NewClient(cfg *config.ExtractorConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// extractResponse is the extraction service's JSON payload.
type extractResponse struct {
	Fields map[string]string `json:"fields"`
}

var knownFieldKinds = func() map[domain.FieldKind]bool {
	m := make(map[domain.FieldKind]bool, len(domain.AllFieldKinds))
	for _, k := range domain.AllFieldKinds {
		m[k] = true
	}
	return m
}()

// Extract posts the document to the extraction service and returns its field
// map. Every failure wraps domain.ErrExtractionFailed: with nothing extracted
// there is nothing to reconcile.
func (c *Client) Extract(ctx context.Context, input port.ExtractInput) (domain.FieldSet, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", input.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: building multipart body: %v", domain.ErrExtractionFailed, err)
	}
	if _, err := part.Write(input.FileBytes); err != nil {
		return nil, fmt.Errorf("%w: writing file part: %v", domain.ErrExtractionFailed, err)
	}
	if err := w.WriteField("document_type", string(input.Kind)); err != nil {
		return nil, fmt.Errorf("%w: writing document_type field: %v", domain.ErrExtractionFailed, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing multipart body: %v", domain.ErrExtractionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", domain.ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling extraction service: %v", domain.ErrExtractionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrExtractionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: extraction service returned status %d: %s",
			domain.ErrExtractionFailed, resp.StatusCode, string(respBody))
	}

	var payload extractResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrExtractionFailed, err)
	}

	fields := make(domain.FieldSet, len(payload.Fields))
	for name, value := range payload.Fields {
		kind := domain.FieldKind(name)
		if !knownFieldKinds[kind] {
			// Unknown fields are dropped: the comparison vocabulary is closed.
			continue
		}
		fields[kind] = value
	}
	return fields, nil
}

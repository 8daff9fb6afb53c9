// Package client talks to the descriptor-studio HTTP API and prepares
// descriptor files for it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// HTTPClient calls the descriptor-studio REST API
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a client for baseURL (e.g. "http://localhost:8080").
// When token is non-empty it is sent as a Bearer token on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is an error response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Login exchanges credentials for a token
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	req := domain.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSources returns every stored source, api keys redacted
func (c *HTTPClient) ListSources(ctx context.Context) ([]*domain.RedactedSource, error) {
	var sources []*domain.RedactedSource
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/sources", nil, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func (c *HTTPClient) GetSource(ctx context.Context, id string) (*domain.RedactedSource, error) {
	var source domain.RedactedSource
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/sources/"+url.PathEscape(id), nil, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

func (c *HTTPClient) CreateSource(ctx context.Context, d domain.SourceDescriptor) (*domain.RedactedSource, error) {
	var source domain.RedactedSource
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/sources", d, &source); err != nil {
		return nil, err
	}
	return &source, nil
}

func (c *HTTPClient) DeleteSource(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/sources/"+url.PathEscape(id), nil, nil)
}

// OperatorCatalog fetches the operators allowed per field type
func (c *HTTPClient) OperatorCatalog(ctx context.Context) (domain.OperatorCatalog, error) {
	var catalog domain.OperatorCatalog
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/filters/operators-catalog", nil, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// doJSON performs a request with an optional JSON body and decodes the JSON
// response into result. A nil result discards the body.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// Package postmanapi talks to the Postman REST API and exports workspaces
// to disk in the layout the postman parser reads.
package postmanapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Postman API endpoint.
	DefaultBaseURL = "https://api.getpostman.com"

	// APIKeyHeader is the HTTP header for API key authentication.
	APIKeyHeader = "X-Api-Key"
)

// Client provides read access to the Postman API.
type Client interface {
	// ListWorkspaces returns every workspace visible to the API key.
	ListWorkspaces(ctx context.Context) ([]WorkspaceRef, error)
	// GetWorkspace returns a workspace with its collection and environment refs.
	GetWorkspace(ctx context.Context, id string) (*Workspace, error)
	// GetCollection returns the "collection" payload for uid.
	GetCollection(ctx context.Context, uid string) (json.RawMessage, error)
	// GetEnvironment returns the "environment" payload for uid.
	GetEnvironment(ctx context.Context, uid string) (json.RawMessage, error)
	// GetGlobalVariables returns the global variables document of a workspace.
	GetGlobalVariables(ctx context.Context, workspaceID string) (map[string]any, error)
}

// WorkspaceRef is one entry of the workspace list.
type WorkspaceRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}

// ItemRef references a collection or environment inside a workspace.
type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	UID  string `json:"uid"`
}

// Workspace is the detail view of a workspace.
type Workspace struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type,omitempty"`
	Description  string    `json:"description,omitempty"`
	Collections  []ItemRef `json:"collections,omitempty"`
	Environments []ItemRef `json:"environments,omitempty"`
}

// APIError represents an error response from the Postman API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether the API answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// apiClient implements Client using HTTP.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
}

// ClientOption configures an API client.
type ClientOption func(*apiClient)

// WithTimeout sets the HTTP timeout for the client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *apiClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithAPIKey sets the API key for authentication.
func WithAPIKey(key string) ClientOption {
	return func(c *apiClient) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *apiClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a Postman API client. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWorkspaces returns every workspace visible to the API key.
func (c *apiClient) ListWorkspaces(ctx context.Context) ([]WorkspaceRef, error) {
	var result struct {
		Workspaces []WorkspaceRef `json:"workspaces"`
	}
	if err := c.getJSON(ctx, "/workspaces", &result); err != nil {
		return nil, err
	}
	return result.Workspaces, nil
}

// GetWorkspace returns a workspace by ID.
func (c *apiClient) GetWorkspace(ctx context.Context, id string) (*Workspace, error) {
	var result struct {
		Workspace Workspace `json:"workspace"`
	}
	if err := c.getJSON(ctx, "/workspaces/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result.Workspace, nil
}

// GetCollection returns the collection document for uid.
func (c *apiClient) GetCollection(ctx context.Context, uid string) (json.RawMessage, error) {
	var result struct {
		Collection json.RawMessage `json:"collection"`
	}
	if err := c.getJSON(ctx, "/collections/"+url.PathEscape(uid), &result); err != nil {
		return nil, err
	}
	if len(result.Collection) == 0 {
		return json.RawMessage("{}"), nil
	}
	return result.Collection, nil
}

// GetEnvironment returns the environment document for uid.
func (c *apiClient) GetEnvironment(ctx context.Context, uid string) (json.RawMessage, error) {
	var result struct {
		Environment json.RawMessage `json:"environment"`
	}
	if err := c.getJSON(ctx, "/environments/"+url.PathEscape(uid), &result); err != nil {
		return nil, err
	}
	if len(result.Environment) == 0 {
		return json.RawMessage("{}"), nil
	}
	return result.Environment, nil
}

// GetGlobalVariables returns the global variables of a workspace.
func (c *apiClient) GetGlobalVariables(ctx context.Context, workspaceID string) (map[string]any, error) {
	result := map[string]any{}
	if err := c.getJSON(ctx, "/workspaces/"+url.PathEscape(workspaceID)+"/global-variables", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// getJSON performs a GET and decodes a 200 response into v.
func (c *apiClient) getJSON(ctx context.Context, path string, v any) error {
	resp, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request.
func (c *apiClient) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			StatusCode: 0,
			ErrorCode:  "connection_error",
			Message:    fmt.Sprintf("cannot connect to Postman API at %s: %v", c.baseURL, err),
		}
	}
	return resp, nil
}

// parseError parses an error response. Postman nests the error as
// {"error": {"name": ..., "message": ...}}.
func (c *apiClient) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Error struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorCode:  errResp.Error.Name,
			Message:    errResp.Error.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		ErrorCode:  "unknown_error",
		Message:    fmt.Sprintf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
	}
}

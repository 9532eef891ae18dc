// Package client talks to a running skinset finder server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dom/league-skinset-finder/internal/finder"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

// Response types matching backend

type Player struct {
	Name      string             `json:"name,omitempty"`
	Exclude   bool               `json:"exclude,omitempty"`
	Champions []finder.Candidate `json:"champions"`
}

type ResolveRequest struct {
	Players          []Player `json:"players"`
	ExcludedSkinsets []string `json:"excludedSkinsets,omitempty"`
}

type ResolveResponse struct {
	QueryID      string               `json:"queryId"`
	IndexVersion string               `json:"indexVersion"`
	Players      []string             `json:"players"`
	Count        int                  `json:"count"`
	Cached       bool                 `json:"cached"`
	ElapsedMs    int64                `json:"elapsedMs"`
	Results      []finder.ResultEntry `json:"results"`
}

type Skinset struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Champions []string `json:"champions"`
}

type ImportResult struct {
	Skinsets  int `json:"skinsets"`
	Champions int `json:"champions"`
}

type SyncResult struct {
	Synced  int    `json:"synced"`
	Version string `json:"version"`
}

// Resolve runs a roster through the server's finder
func (c *APIClient) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	var result ResolveResponse
	if err := c.do(ctx, http.MethodPost, "/comps/resolve", jsonBody(req), "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Skinsets lists the skinsets the server knows about
func (c *APIClient) Skinsets(ctx context.Context) ([]Skinset, error) {
	var result struct {
		Skinsets []Skinset `json:"skinsets"`
	}
	if err := c.do(ctx, http.MethodGet, "/skinsets", nil, "", &result); err != nil {
		return nil, err
	}
	return result.Skinsets, nil
}

// Login exchanges the admin password for a bearer token
func (c *APIClient) Login(ctx context.Context, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	body := jsonBody(map[string]string{"password": password})
	if err := c.do(ctx, http.MethodPost, "/admin/token", body, "", &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// ImportReference uploads a reference YAML document
func (c *APIClient) ImportReference(ctx context.Context, token string, document io.Reader) (*ImportResult, error) {
	var result ImportResult
	if err := c.do(ctx, http.MethodPost, "/admin/reference", document, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SyncChampions triggers a Data Dragon sync
func (c *APIClient) SyncChampions(ctx context.Context, token string) (*SyncResult, error) {
	var result SyncResult
	if err := c.do(ctx, http.MethodPost, "/champions/sync", nil, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HTTP helpers

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func jsonBody(v interface{}) io.Reader {
	data, err := json.Marshal(v)
	if err != nil {
		return errReader{err}
	}
	return bytes.NewReader(data)
}

func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader, token string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(bodyBytes))}
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

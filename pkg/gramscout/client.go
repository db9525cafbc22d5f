// Package gramscout provides a client for a running gramscout API server.
//
// Example usage:
//
//	client := gramscout.NewClient("http://localhost:3000")
//
//	if err := client.Login(ctx, "user", "pass"); err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Search(ctx, gramscout.SearchOptions{
//	    Hashtag:      "kahvedukkani",
//	    MaxFollowers: 5000,
//	    City:         "istanbul",
//	})
package gramscout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emreunal/gramscout/internal/types"
)

// Client talks to a gramscout API server over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchOptions describes one discovery run.
type SearchOptions struct {
	Hashtag           string `json:"hashtag"`
	MaxFollowers      int    `json:"max_followers"`
	City              string `json:"city,omitempty"`
	MaxScrollAttempts int    `json:"max_scroll_attempts,omitempty"`
	ResultCap         int    `json:"result_cap,omitempty"`
}

// SearchResult is the outcome of one discovery run.
type SearchResult struct {
	NewAccounts []types.ProfileRecord `json:"new_accounts"`
	TotalFound  int                   `json:"total_found"`
	NewFound    int                   `json:"new_found"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Login authenticates the server's browser session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.post(ctx, "/api/login", body, nil)
}

// Search runs a discovery pass and returns the stored results.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	var envelope struct {
		Success bool         `json:"success"`
		Data    SearchResult `json:"data"`
	}
	if err := c.post(ctx, "/api/search", opts, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Accounts returns every stored record.
func (c *Client) Accounts(ctx context.Context) ([]types.ProfileRecord, error) {
	var out []types.ProfileRecord
	if err := c.get(ctx, "/api/accounts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// History returns the search log, newest first.
func (c *Client) History(ctx context.Context) ([]types.SearchLogEntry, error) {
	var out []types.SearchLogEntry
	if err := c.get(ctx, "/api/history", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Export returns the stored handles, one per line.
func (c *Client) Export(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/export", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readAPIError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear removes all stored records and history.
func (c *Client) Clear(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/clear", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}
	return nil
}

// Logout closes the server's browser session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/logout", nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}

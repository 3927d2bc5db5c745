// Package api implements the HTTP client for the file-manager backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lazyfm/internal/models"
)

// Client talks JSON over HTTP to one file-manager server profile.
type Client struct {
	server     string
	baseURL    string
	token      string
	httpClient *http.Client
}

// Config holds client configuration.
type Config struct {
	Server  string // profile name, for display and logging
	BaseURL string
	Token   string
	Timeout time.Duration
}

// New creates a new client.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		server:  cfg.Server,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// Server returns the profile name this client is bound to.
func (c *Client) Server() string {
	return c.server
}

// apiError is the error envelope the server returns on non-2xx responses.
type apiError struct {
	Error string `json:"error"`
}

// do issues a request with auth applied and decodes out from the response
// body when out is non-nil. Non-2xx responses are normalized into a single
// error value; callers never retry (a failed action surfaces one flash and
// is terminal for that attempt).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", c.server, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", c.server, apiErr.Error)
		}
		return fmt.Errorf("%s: server returned %d", c.server, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

type listResponse struct {
	Entries []models.FileEntry `json:"entries"`
}

// List fetches the listing of dir.
func (c *Client) List(ctx context.Context, dir string) ([]models.FileEntry, error) {
	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/list/"+escapePath(dir), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

type deleteRequest struct {
	Dir   string   `json:"dir"`
	Names []string `json:"names"`
}

// Delete removes the named entries from dir.
func (c *Client) Delete(ctx context.Context, dir string, names []string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/delete", deleteRequest{Dir: dir, Names: names}, nil)
}

type copyRequest struct {
	Path string `json:"path"`
}

// Copy asks the server to duplicate the entry at path next to itself.
func (c *Client) Copy(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/copy", copyRequest{Path: path}, nil)
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Move relocates an entry to another directory.
func (c *Client) Move(ctx context.Context, from, to string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/move", moveRequest{From: from, To: to}, nil)
}

type renameRequest struct {
	Dir  string `json:"dir"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Rename changes an entry's name within dir.
func (c *Client) Rename(ctx context.Context, dir, from, to string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/rename", renameRequest{Dir: dir, From: from, To: to}, nil)
}

type compressRequest struct {
	Dir   string   `json:"dir"`
	Names []string `json:"names"`
}

// Compress requests an archive of the named entries in dir. The server
// performs the compression asynchronously.
func (c *Client) Compress(ctx context.Context, dir string, names []string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/compress", compressRequest{Dir: dir, Names: names}, nil)
}

type downloadURLResponse struct {
	URL string `json:"url"`
}

// DownloadURL resolves a browser-ready download URL for the entry at path.
func (c *Client) DownloadURL(ctx context.Context, path string) (string, error) {
	var resp downloadURLResponse
	q := url.Values{"path": {path}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/download-url?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%s: empty download url", c.server)
	}
	return resp.URL, nil
}

type permissionsResponse struct {
	Capabilities map[string]bool `json:"capabilities"`
}

// Permissions fetches the capability set granted to the authenticated user.
func (c *Client) Permissions(ctx context.Context) (map[string]bool, error) {
	var resp permissionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/permissions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Capabilities, nil
}

// escapePath escapes each segment of a slash-separated path for use in a
// request URL, keeping the separators.
func escapePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

package leaderboard

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
)

// Client is a Store backed by a remote arcade server's JSON API.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the server at base, e.g.
// "http://localhost:3000". A nil hc uses a client with a 10 s timeout.
func NewClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), http: hc}
}

// reply is the body of the save endpoints.
type reply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (c *Client) SaveName(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return c.post(ctx, "/api/save-name", map[string]string{"name": name})
}

func (c *Client) Submit(ctx context.Context, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return c.post(ctx, "/api/save-score", e)
}

// Top fetches the server's top list. The server caps it at TopN.
func (c *Client) Top(ctx context.Context, game string, k int) ([]Entry, error) {
	if k <= 0 {
		k = TopN
	}
	u := c.base + "/api/leaderboard?game=" + url.QueryEscape(game)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot reach %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}
	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot decode leaderboard: %w", err)
	}
	if len(entries) > k {
		entries = entries[:k]
	}
	return entries, nil
}

func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("leaderboard: cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot reach %s: %w", c.base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	var r reply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return fmt.Errorf("leaderboard: cannot decode reply: %w", err)
	}
	if !r.Success {
		return fmt.Errorf("leaderboard: server refused %s: %s", path, r.Error)
	}
	return nil
}

// statusError turns a non-200 reply into an error. 400 maps to ErrInvalid.
func statusError(resp *http.Response) error {
	var r reply
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(body, &r) != nil || r.Error == "" {
		r.Error = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%w: %s", ErrInvalid, r.Error)
	}
	return fmt.Errorf("leaderboard: server returned %d: %s", resp.StatusCode, r.Error)
}

// Package rest is a leaderboard backend for a PostgREST endpoint such as a
// Supabase project. Scores live in one table with columns id, username,
// score and created_at.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// maxErrorBody bounds how much of a failed response is read for the message.
const maxErrorBody = 4 << 10

// Client talks to the scores table over HTTP.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ leaderboard.Backend = (*Client)(nil)

// New builds a client from cfg. A nil httpClient gets one with cfg.Timeout.
func New(cfg config.LeaderboardConfig, httpClient *http.Client) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("rest: %w: missing URL", leaderboard.ErrNotConfigured)
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("rest: invalid URL %q", cfg.URL)
	}
	if !strings.Contains(base.Path, "/rest/v1") {
		base.Path += "/rest/v1"
	}

	table := cfg.Table
	if table == "" {
		table = "scores"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint: base.String() + "/" + url.PathEscape(table),
		apiKey:   cfg.APIKey,
		http:     httpClient,
	}, nil
}

// Endpoint returns the table URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// TopScores fetches the best limit rows.
func (c *Client) TopScores(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "score.desc")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	resp, err := c.do(ctx, http.MethodGet, q, nil, "")
	if err != nil {
		return nil, fmt.Errorf("rest: cannot fetch top scores: %w", err)
	}
	defer resp.Body.Close()

	rows, err := decodeRows(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest: cannot decode top scores: %w", err)
	}
	return rows, nil
}

// Submit inserts a row and returns it as stored.
func (c *Client) Submit(ctx context.Context, username string, score int) (leaderboard.Entry, error) {
	body, err := json.Marshal([]newRow{{Username: username, Score: score}})
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("rest: cannot encode score: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, nil, body, "return=representation")
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("rest: cannot submit score: %w", err)
	}
	defer resp.Body.Close()

	rows, err := decodeRows(resp.Body)
	if err != nil {
		return leaderboard.Entry{}, fmt.Errorf("rest: cannot decode submitted score: %w", err)
	}
	if len(rows) == 0 {
		return leaderboard.Entry{}, fmt.Errorf("rest: insert returned no rows")
	}
	return rows[0], nil
}

// Delete removes the row with id.
func (c *Client) Delete(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("id", "eq."+id)

	resp, err := c.do(ctx, http.MethodDelete, q, nil, "return=representation")
	if err != nil {
		return fmt.Errorf("rest: cannot delete score: %w", err)
	}
	defer resp.Body.Close()

	rows, err := decodeRows(resp.Body)
	if err != nil {
		return fmt.Errorf("rest: cannot decode deleted rows: %w", err)
	}
	if len(rows) == 0 {
		return leaderboard.ErrNotFound
	}
	return nil
}

// CountAbove asks for an exact count of rows with a greater score without
// fetching them.
func (c *Client) CountAbove(ctx context.Context, score int) (int, error) {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("score", "gt."+strconv.Itoa(score))

	resp, err := c.do(ctx, http.MethodHead, q, nil, "count=exact")
	if err != nil {
		return 0, fmt.Errorf("rest: cannot count scores: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	n, err := parseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, fmt.Errorf("rest: cannot count scores: %w", err)
	}
	return n, nil
}

// do sends a request and turns non-2xx responses into *APIError.
func (c *Client) do(ctx context.Context, method string, q url.Values, body []byte, prefer string) (*http.Response, error) {
	u := c.endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newAPIError(resp)
	}
	return resp, nil
}

// parseContentRange extracts the total from "0-9/42" or "*/42".
func parseContentRange(h string) (int, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 {
		return 0, fmt.Errorf("missing total in Content-Range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("server did not count rows (Content-Range %q)", h)
	}
	n, err := strconv.Atoi(total)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("bad total in Content-Range %q", h)
	}
	return n, nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "status %d", e.Status)
	if e.Code != "" {
		fmt.Fprintf(&sb, " (%s)", e.Code)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Details != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Details)
	}
	return sb.String()
}

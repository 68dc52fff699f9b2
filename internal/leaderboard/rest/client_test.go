package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.DefaultLeaderboardConfig()
	cfg.Backend = config.BackendREST
	cfg.URL = srv.URL
	cfg.APIKey = "anon-key"

	c, err := New(cfg, srv.Client())
	require.NoError(t, err)
	return c
}

func assertAuth(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "anon-key", r.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
}

func TestNewRequiresURL(t *testing.T) {
	_, err := New(config.DefaultLeaderboardConfig(), nil)
	assert.ErrorIs(t, err, leaderboard.ErrNotConfigured)

	cfg := config.DefaultLeaderboardConfig()
	cfg.URL = "not a url"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://abc.supabase.co", "https://abc.supabase.co/rest/v1/scores"},
		{"https://abc.supabase.co/", "https://abc.supabase.co/rest/v1/scores"},
		{"https://abc.supabase.co/rest/v1", "https://abc.supabase.co/rest/v1/scores"},
	}
	for _, tc := range tests {
		cfg := config.DefaultLeaderboardConfig()
		cfg.URL = tc.url
		c, err := New(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.Endpoint())
	}
}

func TestTopScores(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertAuth(t, r)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/scores", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "score.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))

		io.WriteString(w, `[
			{"id":"u-1","username":"ann","score":90,"created_at":"2025-03-01T12:00:00.123456+00:00"},
			{"id":"u-2","username":"bo","score":50,"created_at":"2025-03-01T11:00:00"},
			{"id":7,"username":"cy","score":10,"created_at":"2025-03-01 10:00:00"}
		]`)
	})

	entries, err := c.TopScores(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "u-1", entries[0].ID)
	assert.Equal(t, "ann", entries[0].Username)
	assert.Equal(t, 90, entries[0].Score)
	assert.Equal(t, 2025, entries[0].CreatedAt.Year())
	assert.Equal(t, 11, entries[1].CreatedAt.Hour())
	assert.Equal(t, "7", entries[2].ID)
	assert.False(t, entries[2].CreatedAt.IsZero())
}

func TestSubmit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertAuth(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "dee", body[0]["username"])
		assert.EqualValues(t, 42, body[0]["score"])

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `[{"id":"new-id","username":"dee","score":42,"created_at":"2025-03-02T09:30:00Z"}]`)
	})

	e, err := c.Submit(context.Background(), "dee", 42)
	require.NoError(t, err)
	assert.Equal(t, "new-id", e.ID)
	assert.Equal(t, time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC), e.CreatedAt)
}

func TestDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Query().Get("id") != "eq.abc" {
			io.WriteString(w, `[]`)
			return
		}
		io.WriteString(w, `[{"id":"abc","username":"x","score":1,"created_at":"2025-03-02T09:30:00Z"}]`)
	})

	require.NoError(t, c.Delete(context.Background(), "abc"))
	assert.ErrorIs(t, c.Delete(context.Background(), "gone"), leaderboard.ErrNotFound)
}

func TestCountAbove(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		assert.Equal(t, "gt.25", r.URL.Query().Get("score"))
		w.Header().Set("Content-Range", "*/12")
	})

	n, err := c.CountAbove(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		header  string
		want    int
		wantErr bool
	}{
		{"0-9/42", 42, false},
		{"*/0", 0, false},
		{"*/7", 7, false},
		{"0-9/*", 0, true},
		{"", 0, true},
		{"0-9/abc", 0, true},
	}
	for _, tc := range tests {
		got, err := parseContentRange(tc.header)
		if tc.wantErr {
			assert.Error(t, err, "header %q", tc.header)
			continue
		}
		require.NoError(t, err, "header %q", tc.header)
		assert.Equal(t, tc.want, got)
	}
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"code":"PGRST301","message":"JWT expired","details":null,"hint":null}`)
	})

	_, err := c.TopScores(context.Background(), 10)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "PGRST301", apiErr.Code)
	assert.Contains(t, err.Error(), "JWT expired")
}

func TestAPIErrorPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.TopScores(context.Background(), 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestAPIErrorOnHeadUsesStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.CountAbove(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.TopScores(ctx, 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBoardOverREST(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	board := leaderboard.NewBoard(c, nil, time.Second)
	assert.Empty(t, board.Top(context.Background(), 20))
	_, ok := board.Rank(context.Background(), 3)
	assert.False(t, ok)
}

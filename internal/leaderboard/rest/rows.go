package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
)

// newRow is the insert payload; the server fills id and created_at.
type newRow struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// row is a stored score as the server returns it.
type row struct {
	ID        rowID  `json:"id"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

// rowID accepts both uuid strings and integer primary keys.
type rowID string

func (id *rowID) UnmarshalJSON(b []byte) error {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = rowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = rowID(n.String())
	return nil
}

// timestamp layouts accepted for created_at, with and without zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r row) entry() leaderboard.Entry {
	return leaderboard.Entry{
		ID:        string(r.ID),
		Username:  r.Username,
		Score:     r.Score,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

func decodeRows(r io.Reader) ([]leaderboard.Entry, error) {
	var rows []row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, err
	}
	entries := make([]leaderboard.Entry, len(rows))
	for i, rw := range rows {
		entries[i] = rw.entry()
	}
	return entries, nil
}

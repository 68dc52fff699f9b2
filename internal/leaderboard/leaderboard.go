// Package leaderboard defines the scored-entries service the game reports
// to, a catch-all wrapper for it, and an in-memory implementation.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits used by the game and admin views.
const (
	MaxUsernameLen  = 15
	DefaultTopLimit = 20
	AdminListLimit  = 100
)

var (
	// ErrNotConfigured is returned when no backend is available.
	ErrNotConfigured = errors.New("leaderboard: backend not configured")
	// ErrNotFound is returned when deleting an id that does not exist.
	ErrNotFound = errors.New("leaderboard: entry not found")
	// ErrInvalidUsername is returned for names that are empty or too long.
	ErrInvalidUsername = errors.New("leaderboard: invalid username")
)

// Entry is one submitted score.
type Entry struct {
	ID        string
	Username  string
	Score     int
	CreatedAt time.Time
}

// Backend is a store of scored entries. Implementations must be safe for
// concurrent use.
type Backend interface {
	// TopScores returns up to limit entries ordered by score descending.
	TopScores(ctx context.Context, limit int) ([]Entry, error)

	// Submit records a new entry and returns it with id and timestamp set.
	Submit(ctx context.Context, username string, score int) (Entry, error)

	// Delete removes the entry with the given id.
	Delete(ctx context.Context, id string) error

	// CountAbove returns how many entries have a strictly greater score.
	CountAbove(ctx context.Context, score int) (int, error)
}

// ValidateUsername trims name and checks it is 1 to MaxUsernameLen
// characters long.
func ValidateUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return "", fmt.Errorf("%w: empty", ErrInvalidUsername)
	}
	if n > MaxUsernameLen {
		return "", fmt.Errorf("%w: %d characters, max %d", ErrInvalidUsername, n, MaxUsernameLen)
	}
	return name, nil
}

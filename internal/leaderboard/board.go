package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

// Board wraps a Backend and never fails back to the caller: every error is
// logged and turned into an empty result. A nil board or backend is treated as not
// configured.
type Board struct {
	backend Backend
	logger  *log.Logger
	timeout time.Duration
}

// NewBoard creates a board over backend. A zero timeout means calls are
// bounded only by the caller's context.
func NewBoard(backend Backend, logger *log.Logger, timeout time.Duration) *Board {
	if logger == nil {
		logger = log.Default()
	}
	return &Board{
		backend: backend,
		logger:  logger.WithPrefix("leaderboard"),
		timeout: timeout,
	}
}

// Configured reports whether the board has a backend.
func (b *Board) Configured() bool {
	return b != nil && b.backend != nil
}

func (b *Board) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

func (b *Board) ready(op string) bool {
	if b.Configured() {
		return true
	}
	if b == nil {
		return false
	}
	b.logger.Warn(op+" skipped", "error", ErrNotConfigured)
	return false
}

// Top returns up to limit entries, best first, or an empty slice on failure.
func (b *Board) Top(ctx context.Context, limit int) []Entry {
	if !b.ready("top scores") {
		return []Entry{}
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	ctx, cancel := b.context(ctx)
	defer cancel()

	entries, err := b.backend.TopScores(ctx, limit)
	if err != nil {
		b.logger.Error("cannot fetch top scores", "limit", limit, "error", err)
		return []Entry{}
	}
	b.logger.Debug("fetched top scores", "count", len(entries))
	return entries
}

// Submit validates username and records the score. It reports success.
func (b *Board) Submit(ctx context.Context, username string, score int) bool {
	if b == nil {
		return false
	}
	name, err := ValidateUsername(username)
	if err != nil {
		b.logger.Warn("score rejected", "error", err)
		return false
	}
	if !b.ready("submit") {
		return false
	}
	ctx, cancel := b.context(ctx)
	defer cancel()

	entry, err := b.backend.Submit(ctx, name, score)
	if err != nil {
		b.logger.Error("cannot submit score", "username", name, "score", score, "error", err)
		return false
	}
	b.logger.Info("score submitted", "id", entry.ID, "username", name, "score", score)
	return true
}

// Delete removes an entry by id. It reports success.
func (b *Board) Delete(ctx context.Context, id string) bool {
	if !b.ready("delete") {
		return false
	}
	ctx, cancel := b.context(ctx)
	defer cancel()

	if err := b.backend.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			b.logger.Warn("nothing to delete", "id", id)
		} else {
			b.logger.Error("cannot delete score", "id", id, "error", err)
		}
		return false
	}
	b.logger.Info("score deleted", "id", id)
	return true
}

// Rank returns the 1-based position score would take, or (0, false) when
// the backend cannot answer.
func (b *Board) Rank(ctx context.Context, score int) (int, bool) {
	if !b.ready("rank") {
		return 0, false
	}
	ctx, cancel := b.context(ctx)
	defer cancel()

	above, err := b.backend.CountAbove(ctx, score)
	if err != nil {
		b.logger.Error("cannot count scores above", "score", score, "error", err)
		return 0, false
	}
	return above + 1, true
}

// List fetches the admin view: the best AdminListLimit entries, filtered
// and reordered per opts.
func (b *Board) List(ctx context.Context, opts ListOptions) []Entry {
	return opts.Apply(b.Top(ctx, AdminListLimit))
}

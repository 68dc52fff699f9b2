package leaderboard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortOrder selects how admin listings are ordered.
type SortOrder string

const (
	SortScore  SortOrder = "score"  // Highest score first
	SortRecent SortOrder = "recent" // Newest first
)

// ParseSortOrder parses a sort order name. An empty string means SortScore.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortScore:
		return SortScore, nil
	case SortRecent:
		return SortRecent, nil
	default:
		return "", fmt.Errorf("leaderboard: unknown sort order %q (want score or recent)", s)
	}
}

// ListOptions narrows and orders an admin listing.
type ListOptions struct {
	Search string    // Case-insensitive username substring
	Sort   SortOrder // Defaults to SortScore
}

// Apply returns a filtered, sorted copy of entries.
func (o ListOptions) Apply(entries []Entry) []Entry {
	out := Filter(entries, o.Search)
	if o.Sort == SortRecent {
		SortByRecent(out)
	} else {
		SortByScore(out)
	}
	return out
}

// Filter returns the entries whose username contains search, ignoring case.
// The result never aliases entries.
func Filter(entries []Entry, search string) []Entry {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if search == "" || strings.Contains(strings.ToLower(e.Username), search) {
			out = append(out, e)
		}
	}
	return out
}

// SortByScore orders entries by score descending, earlier entries first on ties.
func SortByScore(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// SortByRecent orders entries newest first.
func SortByRecent(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

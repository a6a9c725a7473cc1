package memory

import (
	"context"
	"sync"

	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
)

// WatchlistRepository keeps watchlist entries in process memory. This is the
// default store; entries live for the duration of the session.
type WatchlistRepository struct {
	mu      sync.RWMutex
	entries []watchlist.Entry
}

func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{}
}

func (r *WatchlistRepository) List(_ context.Context) ([]watchlist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]watchlist.Entry(nil), r.entries...), nil
}

func (r *WatchlistRepository) Add(_ context.Context, entry watchlist.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	return nil
}

func (r *WatchlistRepository) Remove(_ context.Context, entryID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.entries {
		if entry.ID == entryID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

package watchlist

import "context"

// Repository describes watchlist persistence needs from use cases. Append and
// remove are the only permitted mutations.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
	Add(ctx context.Context, entry Entry) error
	Remove(ctx context.Context, entryID string) (bool, error)
}

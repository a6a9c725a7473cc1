package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
)

// WatchlistRepository persists watchlist entries across restarts. Selected
// when a database URL is configured; the memory repository is the default.
type WatchlistRepository struct {
	db *sqlx.DB
}

func NewWatchlistRepository(db *sqlx.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) List(ctx context.Context) ([]watchlist.Entry, error) {
	const query = `
		SELECT id, player_id, player_name, club_abbrev, stat, threshold,
		       over_rate, under_rate, avg_time_on_ice, avg_shifts,
		       power_play_influence, market_odds, next_opponent,
		       next_game_home, saved_at
		FROM watchlist_entries
		ORDER BY saved_at, id`

	var rows []watchlistEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select watchlist entries: %w", err)
	}

	out := make([]watchlist.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, tableModelToEntry(row))
	}
	return out, nil
}

func (r *WatchlistRepository) Add(ctx context.Context, entry watchlist.Entry) error {
	const query = `
		INSERT INTO watchlist_entries (
			id, player_id, player_name, club_abbrev, stat, threshold,
			over_rate, under_rate, avg_time_on_ice, avg_shifts,
			power_play_influence, market_odds, next_opponent,
			next_game_home, saved_at
		) VALUES (
			:id, :player_id, :player_name, :club_abbrev, :stat, :threshold,
			:over_rate, :under_rate, :avg_time_on_ice, :avg_shifts,
			:power_play_influence, :market_odds, :next_opponent,
			:next_game_home, :saved_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, entryToTableModel(entry)); err != nil {
		return fmt.Errorf("insert watchlist entry: %w", err)
	}
	return nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, entryID string) (bool, error) {
	const query = `DELETE FROM watchlist_entries WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, entryID)
	if err != nil {
		return false, fmt.Errorf("delete watchlist entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}
	return affected > 0, nil
}

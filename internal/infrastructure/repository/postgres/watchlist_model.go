package postgres

import (
	"database/sql"
	"time"

	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
)

type watchlistEntryTableModel struct {
	ID                 string         `db:"id"`
	PlayerID           int64          `db:"player_id"`
	PlayerName         string         `db:"player_name"`
	ClubAbbrev         string         `db:"club_abbrev"`
	Stat               string         `db:"stat"`
	Threshold          float64        `db:"threshold"`
	OverRate           float64        `db:"over_rate"`
	UnderRate          float64        `db:"under_rate"`
	AvgTimeOnIce       string         `db:"avg_time_on_ice"`
	AvgShifts          float64        `db:"avg_shifts"`
	PowerPlayInfluence float64        `db:"power_play_influence"`
	MarketOdds         sql.NullString `db:"market_odds"`
	NextOpponent       sql.NullString `db:"next_opponent"`
	NextGameHome       bool           `db:"next_game_home"`
	SavedAt            time.Time      `db:"saved_at"`
}

func entryToTableModel(entry watchlist.Entry) watchlistEntryTableModel {
	return watchlistEntryTableModel{
		ID:                 entry.ID,
		PlayerID:           entry.PlayerID,
		PlayerName:         entry.PlayerName,
		ClubAbbrev:         entry.ClubAbbrev,
		Stat:               entry.Stat,
		Threshold:          entry.Threshold,
		OverRate:           entry.OverRate,
		UnderRate:          entry.UnderRate,
		AvgTimeOnIce:       entry.AvgTimeOnIce,
		AvgShifts:          entry.AvgShifts,
		PowerPlayInfluence: entry.PowerPlayInfluence,
		MarketOdds:         toNullString(entry.MarketOdds),
		NextOpponent:       toNullString(entry.NextOpponent),
		NextGameHome:       entry.NextGameHome,
		SavedAt:            entry.SavedAt.UTC(),
	}
}

func tableModelToEntry(row watchlistEntryTableModel) watchlist.Entry {
	return watchlist.Entry{
		ID:                 row.ID,
		PlayerID:           row.PlayerID,
		PlayerName:         row.PlayerName,
		ClubAbbrev:         row.ClubAbbrev,
		Stat:               row.Stat,
		Threshold:          row.Threshold,
		OverRate:           row.OverRate,
		UnderRate:          row.UnderRate,
		AvgTimeOnIce:       row.AvgTimeOnIce,
		AvgShifts:          row.AvgShifts,
		PowerPlayInfluence: row.PowerPlayInfluence,
		MarketOdds:         row.MarketOdds.String,
		NextOpponent:       row.NextOpponent.String,
		NextGameHome:       row.NextGameHome,
		SavedAt:            row.SavedAt,
	}
}

func toNullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

package usecase

import (
	"context"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/domain/schedule"
)

// StatsProvider is the upstream source of club, roster, game log and
// schedule data. Implementations must be safe for concurrent use.
type StatsProvider interface {
	FetchClubs(ctx context.Context) ([]roster.Club, error)
	FetchRoster(ctx context.Context, clubAbbrev, season string) ([]roster.Player, error)
	FetchGameLog(ctx context.Context, playerID int64, season string) ([]gamelog.GameRecord, error)
	FetchClubSchedule(ctx context.Context, clubAbbrev, season string) ([]schedule.Game, error)
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/platform/cache"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
)

// CurrentSeason formats the NHL season containing now. Seasons roll over in
// September, so 2026-08-31 is still the 2025-2026 season.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.September {
		year--
	}
	return fmt.Sprintf("%d%d", year, year+1)
}

type RosterService struct {
	provider    StatsProvider
	cache       *cache.Store
	logger      *logging.Logger
	workerCount int
	now         func() time.Time
}

func NewRosterService(provider StatsProvider, store *cache.Store, logger *logging.Logger, workerCount int) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	return &RosterService{
		provider:    provider,
		cache:       store,
		logger:      logger,
		workerCount: workerCount,
		now:         time.Now,
	}
}

// ListClubs returns all active clubs sorted by abbreviation.
func (s *RosterService) ListClubs(ctx context.Context) ([]roster.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListClubs")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		clubs, err := s.provider.FetchClubs(ctx)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(clubs, func(i, j int) bool { return clubs[i].Abbrev < clubs[j].Abbrev })
		return clubs, nil
	}

	if s.cache == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return out.([]roster.Club), nil
	}

	out, err := s.cache.GetOrLoad(ctx, "clubs", load)
	if err != nil {
		return nil, err
	}
	clubs, ok := out.([]roster.Club)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return clubs, nil
}

// ListPlayers returns the current-season roster of one club, or of every
// club when clubAbbrev is empty. Rosters for all clubs are fetched
// concurrently and the combined list is sorted by player name.
func (s *RosterService) ListPlayers(ctx context.Context, clubAbbrev string) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "RosterService.ListPlayers")
	defer span.End()

	season := CurrentSeason(s.now().UTC())

	clubAbbrev = strings.ToUpper(strings.TrimSpace(clubAbbrev))
	if clubAbbrev != "" {
		return s.clubRoster(ctx, clubAbbrev, season)
	}

	clubs, err := s.ListClubs(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(s.workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	type rosterResult struct {
		club    string
		players []roster.Player
		err     error
	}

	results := make(chan rosterResult, len(clubs))
	var workers sync.WaitGroup
	for _, club := range clubs {
		club := club
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			players, fetchErr := s.clubRoster(ctx, club.Abbrev, season)
			results <- rosterResult{club: club.Abbrev, players: players, err: fetchErr}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit roster fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]roster.Player, 0, len(clubs)*23)
	for row := range results {
		if row.err != nil {
			// One club failing should not blank the whole player list.
			s.logger.WarnContext(ctx, "roster fetch failed, skipping club",
				"club", row.club,
				"season", season,
				"error", row.err,
			)
			continue
		}
		out = append(out, row.players...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no rosters could be fetched", ErrDependencyUnavailable)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *RosterService) clubRoster(ctx context.Context, clubAbbrev, season string) ([]roster.Player, error) {
	load := func(ctx context.Context) (any, error) {
		players, err := s.provider.FetchRoster(ctx, clubAbbrev, season)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(players, func(i, j int) bool { return players[i].Name < players[j].Name })
		return players, nil
	}

	if s.cache == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return out.([]roster.Player), nil
	}

	key := "roster:" + season + ":" + clubAbbrev
	out, err := s.cache.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	players, ok := out.([]roster.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return players, nil
}

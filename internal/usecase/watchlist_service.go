package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/propwatch/nhl-hitrate/internal/domain/metrics"
	"github.com/propwatch/nhl-hitrate/internal/domain/schedule"
	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
	"github.com/propwatch/nhl-hitrate/internal/platform/id"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
)

type SaveWatchInput struct {
	PlayerID   int64
	PlayerName string
	ClubAbbrev string
	Season     string
	Stat       string
	Threshold  float64
	Window     int
	MarketOdds string
}

type WatchlistService struct {
	repo     watchlist.Repository
	analysis *AnalysisService
	provider StatsProvider
	ids      id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewWatchlistService(
	repo watchlist.Repository,
	analysis *AnalysisService,
	provider StatsProvider,
	ids id.Generator,
	logger *logging.Logger,
) *WatchlistService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WatchlistService{
		repo:     repo,
		analysis: analysis,
		provider: provider,
		ids:      ids,
		logger:   logger,
		now:      time.Now,
	}
}

// Save runs the analysis for the requested player and stores its summary as a
// watchlist entry. The upcoming opponent is resolved from the club schedule;
// when that lookup fails the entry is saved without opponent info.
func (s *WatchlistService) Save(ctx context.Context, input SaveWatchInput) (watchlist.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "WatchlistService.Save")
	defer span.End()

	clubAbbrev := strings.ToUpper(strings.TrimSpace(input.ClubAbbrev))
	if clubAbbrev == "" {
		return watchlist.Entry{}, fmt.Errorf("%w: club abbreviation is required", ErrInvalidInput)
	}
	playerName := strings.TrimSpace(input.PlayerName)
	if playerName == "" {
		return watchlist.Entry{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	result, err := s.analysis.Analyze(ctx, AnalysisInput{
		PlayerID:  input.PlayerID,
		Season:    input.Season,
		Stat:      input.Stat,
		Threshold: input.Threshold,
		Window:    input.Window,
		Columns:   metrics.DefaultColumns(),
	})
	if err != nil {
		return watchlist.Entry{}, err
	}

	entryID, err := s.ids.NewID()
	if err != nil {
		return watchlist.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	entry := watchlist.Entry{
		ID:                 entryID,
		PlayerID:           result.PlayerID,
		PlayerName:         playerName,
		ClubAbbrev:         clubAbbrev,
		Stat:               string(result.Stat),
		Threshold:          result.Threshold,
		OverRate:           result.Summary.OverRate,
		UnderRate:          result.Summary.UnderRate,
		AvgTimeOnIce:       result.Summary.AvgTimeOnIce,
		AvgShifts:          result.Summary.AvgShifts,
		PowerPlayInfluence: result.Summary.PowerPlayInfluence,
		MarketOdds:         strings.TrimSpace(input.MarketOdds),
		SavedAt:            s.now().UTC(),
	}

	if next, ok := s.nextOpponent(ctx, clubAbbrev, result.Season); ok {
		entry.NextOpponent = next.Opponent
		entry.NextGameHome = next.Home
	}

	if err := entry.Validate(); err != nil {
		return watchlist.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return watchlist.Entry{}, fmt.Errorf("save watchlist entry: %w", err)
	}
	return entry, nil
}

func (s *WatchlistService) Remove(ctx context.Context, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "WatchlistService.Remove")
	defer span.End()

	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	removed, err := s.repo.Remove(ctx, entryID)
	if err != nil {
		return fmt.Errorf("remove watchlist entry: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: watchlist entry %s", ErrNotFound, entryID)
	}
	return nil
}

// List returns all saved entries ordered by confidence.
func (s *WatchlistService) List(ctx context.Context) ([]watchlist.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "WatchlistService.List")
	defer span.End()

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist entries: %w", err)
	}
	watchlist.SortByConfidence(entries)
	return entries, nil
}

// ListGrouped returns saved entries bucketed by upcoming opponent.
func (s *WatchlistService) ListGrouped(ctx context.Context) ([]watchlist.Group, error) {
	ctx, span := startUsecaseSpan(ctx, "WatchlistService.ListGrouped")
	defer span.End()

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list watchlist entries: %w", err)
	}
	return watchlist.GroupByOpponent(entries), nil
}

func (s *WatchlistService) nextOpponent(ctx context.Context, clubAbbrev, season string) (schedule.NextOpponent, bool) {
	games, err := s.provider.FetchClubSchedule(ctx, clubAbbrev, season)
	if err != nil {
		s.logger.WarnContext(ctx, "next opponent lookup failed, saving entry without opponent",
			"club", clubAbbrev,
			"season", season,
			"error", err,
		)
		return schedule.NextOpponent{}, false
	}
	return schedule.NextGame(games, clubAbbrev, s.now().UTC())
}

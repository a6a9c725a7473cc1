package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
	"github.com/propwatch/nhl-hitrate/internal/domain/metrics"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
)

type AnalysisInput struct {
	PlayerID  int64
	Season    string
	Stat      string
	Threshold float64
	Window    int
	Columns   metrics.Columns
}

type AnalysisResult struct {
	PlayerID  int64
	Season    string
	Stat      gamelog.StatKey
	Threshold float64
	Window    int
	Rows      []metrics.DerivedRow
	Summary   metrics.Summary
	OverTier  metrics.Tier
	UnderTier metrics.Tier
}

type AnalysisService struct {
	provider      StatsProvider
	logger        *logging.Logger
	defaultWindow int
	maxWindow     int
	now           func() time.Time
}

func NewAnalysisService(provider StatsProvider, logger *logging.Logger, defaultWindow, maxWindow int) *AnalysisService {
	if logger == nil {
		logger = logging.Default()
	}
	if defaultWindow < 1 {
		defaultWindow = 10
	}
	if maxWindow < defaultWindow {
		maxWindow = defaultWindow
	}
	return &AnalysisService{
		provider:      provider,
		logger:        logger,
		defaultWindow: defaultWindow,
		maxWindow:     maxWindow,
		now:           time.Now,
	}
}

// Analyze fetches the player's game log, keeps the most recent Window games
// and computes the derived table plus the hit-rate summary.
func (s *AnalysisService) Analyze(ctx context.Context, input AnalysisInput) (AnalysisResult, error) {
	ctx, span := startUsecaseSpan(ctx, "AnalysisService.Analyze")
	defer span.End()

	if input.PlayerID <= 0 {
		return AnalysisResult{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	statKey, err := gamelog.ParseStatKey(strings.TrimSpace(input.Stat))
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if input.Threshold < 0 {
		return AnalysisResult{}, fmt.Errorf("%w: threshold must not be negative", ErrInvalidInput)
	}

	window := input.Window
	if window == 0 {
		window = s.defaultWindow
	}
	if window < 1 {
		return AnalysisResult{}, fmt.Errorf("%w: window must be greater than zero", ErrInvalidInput)
	}
	if window > s.maxWindow {
		return AnalysisResult{}, fmt.Errorf("%w: window must not exceed %d", ErrInvalidInput, s.maxWindow)
	}

	season := strings.TrimSpace(input.Season)
	if season == "" {
		season = CurrentSeason(s.now().UTC())
	}

	records, err := s.provider.FetchGameLog(ctx, input.PlayerID, season)
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("fetch game log: %w", err)
	}

	// The provider returns most-recent-first; truncate before deriving so
	// averages only cover the requested window.
	if len(records) > window {
		records = records[:window]
	}
	if len(records) == 0 {
		return AnalysisResult{}, fmt.Errorf("%w: player_id=%d season=%s", ErrNoGameData, input.PlayerID, season)
	}

	rows := metrics.DeriveRows(records, statKey, input.Columns)
	summary, err := metrics.Summarize(rows, input.Threshold)
	if err != nil {
		if errors.Is(err, metrics.ErrNoGames) {
			return AnalysisResult{}, fmt.Errorf("%w: player_id=%d season=%s", ErrNoGameData, input.PlayerID, season)
		}
		return AnalysisResult{}, err
	}

	return AnalysisResult{
		PlayerID:  input.PlayerID,
		Season:    season,
		Stat:      statKey,
		Threshold: input.Threshold,
		Window:    len(rows),
		Rows:      rows,
		Summary:   summary,
		OverTier:  metrics.TierForRate(summary.OverRate),
		UnderTier: metrics.TierForRate(summary.UnderRate),
	}, nil
}

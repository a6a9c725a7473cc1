package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
	watchlistmock "github.com/propwatch/nhl-hitrate/internal/mocks/domain/watchlist"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
)

func TestWatchlistService_Save_PersistsEntryUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newFakeProvider()
	provider.gameLogs[99] = analysisFixtureRecords()

	repo := watchlistmock.NewRepository(t)
	analysis := NewAnalysisService(provider, logging.NewNop(), 10, 82)
	service := NewWatchlistService(repo, analysis, provider, staticIDGenerator{id: "wl-001"}, logging.NewNop())

	repo.
		On("Add", mock.MatchedBy(func(v context.Context) bool { return v != nil }), mock.MatchedBy(func(entry watchlist.Entry) bool {
			return entry.ID == "wl-001" && entry.PlayerID == 99 && entry.Stat == "points"
		})).
		Return(nil).
		Once()

	entry, err := service.Save(ctx, SaveWatchInput{
		PlayerID:   99,
		PlayerName: "David Hit",
		ClubAbbrev: "bos",
		Season:     "20252026",
		Stat:       "points",
		Threshold:  1.5,
		Window:     3,
	})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if entry.ClubAbbrev != "BOS" {
		t.Fatalf("ClubAbbrev got=%q want=BOS", entry.ClubAbbrev)
	}
}

func TestWatchlistService_Save_RepositoryFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	provider := newFakeProvider()
	provider.gameLogs[99] = analysisFixtureRecords()

	repo := watchlistmock.NewRepository(t)
	analysis := NewAnalysisService(provider, logging.NewNop(), 10, 82)
	service := NewWatchlistService(repo, analysis, provider, staticIDGenerator{id: "wl-002"}, logging.NewNop())

	repoErr := errors.New("insert failed")
	repo.
		On("Add", mock.Anything, mock.Anything).
		Return(repoErr).
		Once()

	_, err := service.Save(ctx, SaveWatchInput{
		PlayerID:   99,
		PlayerName: "David Hit",
		ClubAbbrev: "BOS",
		Season:     "20252026",
		Stat:       "points",
		Threshold:  1.5,
		Window:     3,
	})
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestWatchlistService_Remove_NotFoundUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := watchlistmock.NewRepository(t)
	service := NewWatchlistService(repo, nil, newFakeProvider(), staticIDGenerator{id: "wl-003"}, logging.NewNop())

	repo.
		On("Remove", mock.MatchedBy(func(v context.Context) bool { return v != nil }), "missing-entry").
		Return(false, nil).
		Once()

	err := service.Remove(ctx, "missing-entry")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/domain/schedule"
)

var errFakeUnavailable = errors.New("fake provider unavailable")

type fakeProvider struct {
	mu          sync.Mutex
	clubs       []roster.Club
	clubsErr    error
	rosters     map[string][]roster.Player
	rosterErr   map[string]error
	gameLogs    map[int64][]gamelog.GameRecord
	gameLogErr  error
	schedules   map[string][]schedule.Game
	scheduleErr error

	rosterCalls   map[string]int
	gameLogCalls  int
	scheduleCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		rosters:     make(map[string][]roster.Player),
		rosterErr:   make(map[string]error),
		gameLogs:    make(map[int64][]gamelog.GameRecord),
		schedules:   make(map[string][]schedule.Game),
		rosterCalls: make(map[string]int),
	}
}

func (p *fakeProvider) FetchClubs(context.Context) ([]roster.Club, error) {
	if p.clubsErr != nil {
		return nil, p.clubsErr
	}
	return append([]roster.Club(nil), p.clubs...), nil
}

func (p *fakeProvider) FetchRoster(_ context.Context, clubAbbrev, _ string) ([]roster.Player, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rosterCalls[clubAbbrev]++
	if err := p.rosterErr[clubAbbrev]; err != nil {
		return nil, err
	}
	return append([]roster.Player(nil), p.rosters[clubAbbrev]...), nil
}

func (p *fakeProvider) FetchGameLog(_ context.Context, playerID int64, _ string) ([]gamelog.GameRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gameLogCalls++
	if p.gameLogErr != nil {
		return nil, p.gameLogErr
	}
	return append([]gamelog.GameRecord(nil), p.gameLogs[playerID]...), nil
}

func (p *fakeProvider) FetchClubSchedule(_ context.Context, clubAbbrev, _ string) ([]schedule.Game, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scheduleCalls++
	if p.scheduleErr != nil {
		return nil, p.scheduleErr
	}
	return append([]schedule.Game(nil), p.schedules[clubAbbrev]...), nil
}

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

type sequenceIDGenerator struct {
	ids  []string
	next int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	if g.next >= len(g.ids) {
		return "", errors.New("id sequence exhausted")
	}
	out := g.ids[g.next]
	g.next++
	return out, nil
}

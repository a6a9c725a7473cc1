package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/domain/schedule"
	"github.com/propwatch/nhl-hitrate/internal/infrastructure/repository/memory"
	"github.com/propwatch/nhl-hitrate/internal/platform/id"
	"github.com/propwatch/nhl-hitrate/internal/platform/logging"
	"github.com/propwatch/nhl-hitrate/internal/usecase"
)

type stubProvider struct {
	clubs    []roster.Club
	rosters  map[string][]roster.Player
	gameLogs map[int64][]gamelog.GameRecord
	games    map[string][]schedule.Game
}

func (p *stubProvider) FetchClubs(context.Context) ([]roster.Club, error) {
	return p.clubs, nil
}

func (p *stubProvider) FetchRoster(_ context.Context, clubAbbrev, _ string) ([]roster.Player, error) {
	return p.rosters[clubAbbrev], nil
}

func (p *stubProvider) FetchGameLog(_ context.Context, playerID int64, _ string) ([]gamelog.GameRecord, error) {
	return p.gameLogs[playerID], nil
}

func (p *stubProvider) FetchClubSchedule(_ context.Context, clubAbbrev, _ string) ([]schedule.Game, error) {
	return p.games[clubAbbrev], nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	provider := &stubProvider{
		clubs: []roster.Club{{Abbrev: "BOS", Name: "Boston Bruins"}},
		rosters: map[string][]roster.Player{
			"BOS": {{ID: 99, Name: "David Hit", ClubAbbrev: "BOS", Position: "C"}},
		},
		gameLogs: map[int64][]gamelog.GameRecord{
			99: {
				{GameDate: "2026-01-20", OpponentAbbrev: "MTL", Points: 3, PowerPlayPoints: 2, PowerPlayGoals: 1, Shifts: 22, TimeOnIce: "18:00"},
				{GameDate: "2026-01-18", OpponentAbbrev: "TOR", Points: 1, Shifts: 20, TimeOnIce: "15:30"},
			},
		},
		games: map[string][]schedule.Game{
			"BOS": {{StartAt: time.Now().Add(48 * time.Hour), HomeAbbrev: "BOS", AwayAbbrev: "MTL"}},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rosterService := usecase.NewRosterService(provider, nil, logging.NewNop(), 2)
	analysisService := usecase.NewAnalysisService(provider, logging.NewNop(), 10, 82)
	watchlistService := usecase.NewWatchlistService(
		memory.NewWatchlistRepository(),
		analysisService,
		provider,
		id.NewRandomGenerator(),
		logging.NewNop(),
	)

	handler := NewHandler(rosterService, analysisService, watchlistService, logger)
	return NewRouter(handler, logger, []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status got=%d want=200", rec.Code)
	}
}

func TestRouter_ListClubs(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/clubs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status got=%d want=200, body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one club in data, got=%v", body["data"])
	}
}

func TestRouter_PlayerAnalysis(t *testing.T) {
	router := newTestRouter(t)

	t.Run("happy path", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/99/analysis?stat=points&threshold=1.5&window=2&season=20252026", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status got=%d want=200, body=%s", rec.Code, rec.Body.String())
		}
		body := decodeEnvelope(t, rec)
		data, _ := body["data"].(map[string]any)
		summary, _ := data["summary"].(map[string]any)
		if got, _ := summary["overRate"].(float64); got != 50 {
			t.Fatalf("overRate got=%v want=50", summary["overRate"])
		}
		if got, _ := summary["overTier"].(string); got != "moderate" {
			t.Fatalf("overTier got=%v want=moderate", summary["overTier"])
		}
		rows, _ := data["rows"].([]any)
		if len(rows) != 2 {
			t.Fatalf("expected two rows, got=%d", len(rows))
		}
	})

	t.Run("missing threshold", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/99/analysis?stat=points", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status got=%d want=400", rec.Code)
		}
	})

	t.Run("no game data", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/12345/analysis?stat=points&threshold=0.5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status got=%d want=422, body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("bad player id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/players/abc/analysis?stat=points&threshold=0.5", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status got=%d want=400", rec.Code)
		}
	})
}

func TestRouter_WatchlistLifecycle(t *testing.T) {
	router := newTestRouter(t)

	payload := `{"playerId":99,"playerName":"David Hit","club":"BOS","season":"20252026","stat":"points","threshold":1.5,"window":2,"marketOdds":"o1.5 -110"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/watchlist", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("save status got=%d want=201, body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	entryID, _ := data["id"].(string)
	if entryID == "" {
		t.Fatalf("expected entry id in response, got=%v", data)
	}
	if got, _ := data["nextOpponent"].(string); got != "MTL" {
		t.Fatalf("nextOpponent got=%v want=MTL", data["nextOpponent"])
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/watchlist", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status got=%d want=200", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	if items, _ := body["data"].([]any); len(items) != 1 {
		t.Fatalf("expected one entry, got=%v", body["data"])
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/watchlist?group_by=opponent", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("grouped list status got=%d want=200", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	groups, _ := body["data"].([]any)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got=%v", body["data"])
	}
	group, _ := groups[0].(map[string]any)
	if got, _ := group["opponent"].(string); got != "MTL" {
		t.Fatalf("group opponent got=%v want=MTL", group["opponent"])
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/watchlist?group_by=player", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unsupported group_by status got=%d want=400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/watchlist/"+entryID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status got=%d want=200, body=%s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/watchlist/"+entryID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status got=%d want=404", rec.Code)
	}
}

func TestRouter_SaveWatchlistEntry_RejectsInvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name    string
		payload string
	}{
		{name: "malformed json", payload: `{"playerId":`},
		{name: "unknown field", payload: `{"playerId":99,"playerName":"x","club":"BOS","stat":"points","threshold":1,"bogus":true}`},
		{name: "missing player name", payload: `{"playerId":99,"club":"BOS","stat":"points","threshold":1}`},
		{name: "club too short", payload: `{"playerId":99,"playerName":"x","club":"B","stat":"points","threshold":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/watchlist", strings.NewReader(tc.payload))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status got=%d want=400, body=%s", rec.Code, rec.Body.String())
			}
		})
	}
}

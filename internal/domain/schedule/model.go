package schedule

import (
	"strings"
	"time"
)

// Game is one entry from a club's season schedule.
type Game struct {
	StartAt    time.Time
	HomeAbbrev string
	AwayAbbrev string
}

// NextOpponent describes a club's next scheduled matchup.
type NextOpponent struct {
	Opponent string
	Home     bool
	StartAt  time.Time
}

// NextGame scans a schedule for the earliest game starting after now that
// involves clubAbbrev, and reports the opposing club plus home/away status.
// Returns false when no future game is found.
func NextGame(games []Game, clubAbbrev string, now time.Time) (NextOpponent, bool) {
	clubAbbrev = strings.ToUpper(strings.TrimSpace(clubAbbrev))
	if clubAbbrev == "" {
		return NextOpponent{}, false
	}

	var next NextOpponent
	found := false
	for _, game := range games {
		if game.StartAt.IsZero() || !game.StartAt.After(now) {
			continue
		}

		var opponent NextOpponent
		switch clubAbbrev {
		case strings.ToUpper(game.HomeAbbrev):
			opponent = NextOpponent{Opponent: game.AwayAbbrev, Home: true, StartAt: game.StartAt}
		case strings.ToUpper(game.AwayAbbrev):
			opponent = NextOpponent{Opponent: game.HomeAbbrev, Home: false, StartAt: game.StartAt}
		default:
			continue
		}

		if !found || opponent.StartAt.Before(next.StartAt) {
			next = opponent
			found = true
		}
	}

	return next, found
}

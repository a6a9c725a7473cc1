package watchlist

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is a saved hit-rate summary snapshot. Entries are created and removed
// on explicit user action only; nothing mutates one in place.
type Entry struct {
	ID                 string
	PlayerID           int64
	PlayerName         string
	ClubAbbrev         string
	Stat               string
	Threshold          float64
	OverRate           float64
	UnderRate          float64
	AvgTimeOnIce       string
	AvgShifts          float64
	PowerPlayInfluence float64
	MarketOdds         string
	NextOpponent       string
	NextGameHome       bool
	SavedAt            time.Time
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if e.PlayerID <= 0 {
		return fmt.Errorf("entry player id must be greater than zero")
	}
	if strings.TrimSpace(e.Stat) == "" {
		return fmt.Errorf("entry stat is required")
	}
	return nil
}

// Confidence is the stronger side of the over/under split; the list orders by
// it descending.
func (e Entry) Confidence() float64 {
	if e.OverRate >= e.UnderRate {
		return e.OverRate
	}
	return e.UnderRate
}

// SortByConfidence orders entries by descending confidence, breaking ties by
// save time then ID so listings are deterministic.
func SortByConfidence(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Confidence() != entries[j].Confidence() {
			return entries[i].Confidence() > entries[j].Confidence()
		}
		if !entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].SavedAt.Before(entries[j].SavedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}

// Group is a run of entries sharing an upcoming opponent.
type Group struct {
	Opponent string
	Entries  []Entry
}

const ungroupedOpponent = "TBD"

// GroupByOpponent buckets entries by next opponent, keeping confidence order
// inside each bucket and ordering buckets by their strongest entry. Entries
// without a resolved opponent collect under "TBD" last.
func GroupByOpponent(entries []Entry) []Group {
	ordered := append([]Entry(nil), entries...)
	SortByConfidence(ordered)

	byOpponent := make(map[string]*Group)
	order := make([]string, 0, len(ordered))
	for _, entry := range ordered {
		opponent := strings.TrimSpace(entry.NextOpponent)
		if opponent == "" {
			opponent = ungroupedOpponent
		}
		group, ok := byOpponent[opponent]
		if !ok {
			group = &Group{Opponent: opponent}
			byOpponent[opponent] = group
			order = append(order, opponent)
		}
		group.Entries = append(group.Entries, entry)
	}

	out := make([]Group, 0, len(order))
	for _, opponent := range order {
		if opponent == ungroupedOpponent {
			continue
		}
		out = append(out, *byOpponent[opponent])
	}
	if group, ok := byOpponent[ungroupedOpponent]; ok {
		out = append(out, *group)
	}
	return out
}

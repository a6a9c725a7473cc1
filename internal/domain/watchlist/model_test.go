package watchlist

import (
	"testing"
	"time"
)

func TestSortByConfidence(t *testing.T) {
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: "a", OverRate: 60, UnderRate: 40, SavedAt: base},
		{ID: "b", OverRate: 20, UnderRate: 80, SavedAt: base.Add(time.Minute)},
		{ID: "c", OverRate: 80, UnderRate: 20, SavedAt: base},
		{ID: "d", OverRate: 30, UnderRate: 70, SavedAt: base.Add(2 * time.Minute)},
	}

	SortByConfidence(entries)

	// b and c tie at 80; b saved later, so c wins the tie on save time.
	wantOrder := []string{"c", "b", "d", "a"}
	for i, want := range wantOrder {
		if entries[i].ID != want {
			t.Fatalf("position %d: got=%s want=%s", i, entries[i].ID, want)
		}
	}
}

func TestGroupByOpponent(t *testing.T) {
	entries := []Entry{
		{ID: "a", OverRate: 55, UnderRate: 45, NextOpponent: "BOS"},
		{ID: "b", OverRate: 90, UnderRate: 10, NextOpponent: "MTL"},
		{ID: "c", OverRate: 10, UnderRate: 90, NextOpponent: ""},
		{ID: "d", OverRate: 75, UnderRate: 25, NextOpponent: "BOS"},
	}

	groups := GroupByOpponent(entries)
	if len(groups) != 3 {
		t.Fatalf("unexpected group count: got=%d want=3", len(groups))
	}
	if groups[0].Opponent != "MTL" {
		t.Fatalf("expected strongest group first, got=%s", groups[0].Opponent)
	}
	if groups[1].Opponent != "BOS" || len(groups[1].Entries) != 2 {
		t.Fatalf("unexpected BOS group: %+v", groups[1])
	}
	if groups[1].Entries[0].ID != "d" {
		t.Fatalf("expected confidence order inside group, got=%s", groups[1].Entries[0].ID)
	}
	if groups[2].Opponent != "TBD" {
		t.Fatalf("expected unresolved opponents last, got=%s", groups[2].Opponent)
	}
}

func TestEntryValidate(t *testing.T) {
	valid := Entry{ID: "x", PlayerID: 42, Stat: "points"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, entry := range map[string]Entry{
		"missing id":     {PlayerID: 42, Stat: "points"},
		"missing player": {ID: "x", Stat: "points"},
		"missing stat":   {ID: "x", PlayerID: 42},
	} {
		if err := entry.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

package gamelog

import "fmt"

// StatKey identifies a counting stat that can be analyzed against a threshold.
type StatKey string

const (
	StatPoints          StatKey = "points"
	StatGoals           StatKey = "goals"
	StatAssists         StatKey = "assists"
	StatShots           StatKey = "shots"
	StatHits            StatKey = "hits"
	StatPenaltyMinutes  StatKey = "pim"
	StatPowerPlayPoints StatKey = "powerPlayPoints"
)

var AllStatKeys = map[StatKey]struct{}{
	StatPoints:          {},
	StatGoals:           {},
	StatAssists:         {},
	StatShots:           {},
	StatHits:            {},
	StatPenaltyMinutes:  {},
	StatPowerPlayPoints: {},
}

func ParseStatKey(raw string) (StatKey, error) {
	key := StatKey(raw)
	if _, ok := AllStatKeys[key]; !ok {
		return "", fmt.Errorf("unknown stat key: %q", raw)
	}
	return key, nil
}

// GameRecord is one played game from a skater's game log. Immutable once
// retrieved from the provider.
type GameRecord struct {
	GameDate        string
	OpponentAbbrev  string
	HomeRoad        string
	Points          int
	Goals           int
	Assists         int
	Shots           int
	Hits            int
	PenaltyMinutes  int
	PowerPlayGoals  int
	PowerPlayPoints int
	// PowerPlayShots is zero when the provider does not track the split.
	PowerPlayShots int
	Shifts         int
	TimeOnIce      string
}

// StatValue reads the counting stat selected by key. Unknown keys read as 0;
// callers validate keys with ParseStatKey before building windows.
func StatValue(record GameRecord, key StatKey) float64 {
	switch key {
	case StatPoints:
		return float64(record.Points)
	case StatGoals:
		return float64(record.Goals)
	case StatAssists:
		return float64(record.Assists)
	case StatShots:
		return float64(record.Shots)
	case StatHits:
		return float64(record.Hits)
	case StatPenaltyMinutes:
		return float64(record.PenaltyMinutes)
	case StatPowerPlayPoints:
		return float64(record.PowerPlayPoints)
	default:
		return 0
	}
}

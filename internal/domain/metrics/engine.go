package metrics

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
)

// ErrNoGames marks an empty analysis window. Callers must surface it as a
// distinct "no data" outcome instead of a 0%/100% split.
var ErrNoGames = errors.New("no games in window")

const efficiencyWindowMinutes = 20.0

// Columns enumerates the optional derived columns an analysis computes. The
// three historical dashboard variants differed only in which of these they
// carried, so the set is configuration rather than separate code paths.
type Columns struct {
	Efficiency bool
	Shifts     bool
	PowerPlay  bool
}

func DefaultColumns() Columns {
	return Columns{Efficiency: true, Shifts: true, PowerPlay: true}
}

// DerivedRow is a GameRecord plus the computed per-game columns.
type DerivedRow struct {
	Game           gamelog.GameRecord
	StatValue      float64
	TOIMinutes     float64
	PowerPlayValue float64
	PowerPlayPct   float64
	Efficiency     float64
}

// Summary aggregates a window of derived rows for one stat and threshold.
type Summary struct {
	Games              int
	OverCount          int
	OverRate           float64
	UnderRate          float64
	AvgTimeOnIce       string
	AvgTOIMinutes      float64
	AvgShifts          float64
	AvgEfficiency      float64
	PowerPlayInfluence float64
}

// ParseTimeOnIce converts a "M:SS" string to float minutes. Malformed or
// absent input reads as 0.0; game logs carry this field inconsistently and a
// bad value must not fail the whole analysis.
func ParseTimeOnIce(raw string) float64 {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 {
		return 0
	}
	return float64(minutes) + float64(seconds)/60.0
}

// FormatMinutes converts float minutes back to "M:SS", rounding seconds and
// carrying a 60-second overflow into the minutes component.
func FormatMinutes(totalMinutes float64) string {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	minutes := int(totalMinutes)
	seconds := int(math.Round((totalMinutes - float64(minutes)) * 60))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// PowerPlayShare maps the selected stat to its power-play-only contribution.
// The mapping is a fixed policy, not inferred from the data:
// goals use power-play goals, points use power-play points, assists use
// power-play points minus power-play goals floored at zero, shots use
// power-play shots when the provider tracks them, and all other stats
// contribute nothing.
func PowerPlayShare(record gamelog.GameRecord, key gamelog.StatKey) float64 {
	switch key {
	case gamelog.StatGoals:
		return float64(record.PowerPlayGoals)
	case gamelog.StatPoints, gamelog.StatPowerPlayPoints:
		return float64(record.PowerPlayPoints)
	case gamelog.StatAssists:
		assists := record.PowerPlayPoints - record.PowerPlayGoals
		if assists < 0 {
			assists = 0
		}
		return float64(assists)
	case gamelog.StatShots:
		return float64(record.PowerPlayShots)
	default:
		return 0
	}
}

// DeriveRow computes the per-game columns for one record. Efficiency is the
// stat normalized to a 20-minute rate, zero when time on ice is zero.
func DeriveRow(record gamelog.GameRecord, key gamelog.StatKey, columns Columns) DerivedRow {
	row := DerivedRow{
		Game:       record,
		StatValue:  gamelog.StatValue(record, key),
		TOIMinutes: ParseTimeOnIce(record.TimeOnIce),
	}

	if columns.PowerPlay {
		row.PowerPlayValue = PowerPlayShare(record, key)
		if row.StatValue > 0 {
			row.PowerPlayPct = row.PowerPlayValue / row.StatValue * 100
		}
	}

	if columns.Efficiency && row.TOIMinutes > 0 {
		row.Efficiency = round2(row.StatValue / row.TOIMinutes * efficiencyWindowMinutes)
	}

	return row
}

// DeriveRows derives every record in window order.
func DeriveRows(records []gamelog.GameRecord, key gamelog.StatKey, columns Columns) []DerivedRow {
	rows := make([]DerivedRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, DeriveRow(record, key, columns))
	}
	return rows
}

// Summarize aggregates an already-derived window. The over count uses a
// strict greater-than against the threshold, and under rate is the exact
// complement of over rate. An empty window returns ErrNoGames.
func Summarize(rows []DerivedRow, threshold float64) (Summary, error) {
	if len(rows) == 0 {
		return Summary{}, ErrNoGames
	}

	overCount := 0
	toiTotal := 0.0
	shiftsTotal := 0
	efficiencyTotal := 0.0
	statTotal := 0.0
	powerPlayTotal := 0.0

	for _, row := range rows {
		if row.StatValue > threshold {
			overCount++
		}
		toiTotal += row.TOIMinutes
		shiftsTotal += row.Game.Shifts
		efficiencyTotal += row.Efficiency
		statTotal += row.StatValue
		powerPlayTotal += row.PowerPlayValue
	}

	games := len(rows)
	overRate := float64(overCount) / float64(games) * 100
	avgTOI := toiTotal / float64(games)

	summary := Summary{
		Games:         games,
		OverCount:     overCount,
		OverRate:      overRate,
		UnderRate:     100 - overRate,
		AvgTimeOnIce:  FormatMinutes(avgTOI),
		AvgTOIMinutes: avgTOI,
		AvgShifts:     float64(shiftsTotal) / float64(games),
		AvgEfficiency: efficiencyTotal / float64(games),
	}
	if statTotal > 0 {
		summary.PowerPlayInfluence = powerPlayTotal / statTotal * 100
	}

	return summary, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

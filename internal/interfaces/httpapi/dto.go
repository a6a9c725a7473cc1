package httpapi

import (
	"time"

	"github.com/propwatch/nhl-hitrate/internal/domain/metrics"
	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/domain/watchlist"
	"github.com/propwatch/nhl-hitrate/internal/usecase"
)

type clubDTO struct {
	Abbrev string `json:"abbrev"`
	Name   string `json:"name"`
}

type playerDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Club     string `json:"club"`
	Position string `json:"position"`
}

type derivedRowDTO struct {
	GameDate        string  `json:"gameDate"`
	Opponent        string  `json:"opponent"`
	HomeRoad        string  `json:"homeRoad"`
	StatValue       float64 `json:"statValue"`
	TimeOnIce       string  `json:"timeOnIce"`
	TOIMinutes      float64 `json:"toiMinutes"`
	Shifts          int     `json:"shifts"`
	PowerPlayValue  float64 `json:"powerPlayValue"`
	PowerPlayPct    float64 `json:"powerPlayPct"`
	EfficiencyPer20 float64 `json:"efficiencyPer20"`
}

type summaryDTO struct {
	Games              int     `json:"games"`
	OverCount          int     `json:"overCount"`
	OverRate           float64 `json:"overRate"`
	UnderRate          float64 `json:"underRate"`
	OverTier           string  `json:"overTier"`
	UnderTier          string  `json:"underTier"`
	AvgTimeOnIce       string  `json:"avgTimeOnIce"`
	AvgShifts          float64 `json:"avgShifts"`
	AvgEfficiencyPer20 float64 `json:"avgEfficiencyPer20"`
	PowerPlayInfluence float64 `json:"powerPlayInfluence"`
}

type analysisDTO struct {
	PlayerID  int64           `json:"playerId"`
	Season    string          `json:"season"`
	Stat      string          `json:"stat"`
	Threshold float64         `json:"threshold"`
	Window    int             `json:"window"`
	Rows      []derivedRowDTO `json:"rows"`
	Summary   summaryDTO      `json:"summary"`
}

type watchlistEntryDTO struct {
	ID                 string  `json:"id"`
	PlayerID           int64   `json:"playerId"`
	PlayerName         string  `json:"playerName"`
	Club               string  `json:"club"`
	Stat               string  `json:"stat"`
	Threshold          float64 `json:"threshold"`
	OverRate           float64 `json:"overRate"`
	UnderRate          float64 `json:"underRate"`
	Confidence         float64 `json:"confidence"`
	ConfidenceTier     string  `json:"confidenceTier"`
	AvgTimeOnIce       string  `json:"avgTimeOnIce"`
	AvgShifts          float64 `json:"avgShifts"`
	PowerPlayInfluence float64 `json:"powerPlayInfluence"`
	MarketOdds         string  `json:"marketOdds,omitempty"`
	NextOpponent       string  `json:"nextOpponent,omitempty"`
	NextGameHome       bool    `json:"nextGameHome"`
	SavedAt            string  `json:"savedAt"`
}

type watchlistGroupDTO struct {
	Opponent string              `json:"opponent"`
	Entries  []watchlistEntryDTO `json:"entries"`
}

func clubToDTO(club roster.Club) clubDTO {
	return clubDTO{Abbrev: club.Abbrev, Name: club.Name}
}

func playerToDTO(player roster.Player) playerDTO {
	return playerDTO{
		ID:       player.ID,
		Name:     player.Name,
		Club:     player.ClubAbbrev,
		Position: player.Position,
	}
}

func analysisToDTO(result usecase.AnalysisResult) analysisDTO {
	rows := make([]derivedRowDTO, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, derivedRowDTO{
			GameDate:        row.Game.GameDate,
			Opponent:        row.Game.OpponentAbbrev,
			HomeRoad:        row.Game.HomeRoad,
			StatValue:       row.StatValue,
			TimeOnIce:       row.Game.TimeOnIce,
			TOIMinutes:      row.TOIMinutes,
			Shifts:          row.Game.Shifts,
			PowerPlayValue:  row.PowerPlayValue,
			PowerPlayPct:    row.PowerPlayPct,
			EfficiencyPer20: row.Efficiency,
		})
	}

	return analysisDTO{
		PlayerID:  result.PlayerID,
		Season:    result.Season,
		Stat:      string(result.Stat),
		Threshold: result.Threshold,
		Window:    result.Window,
		Rows:      rows,
		Summary: summaryDTO{
			Games:              result.Summary.Games,
			OverCount:          result.Summary.OverCount,
			OverRate:           result.Summary.OverRate,
			UnderRate:          result.Summary.UnderRate,
			OverTier:           string(result.OverTier),
			UnderTier:          string(result.UnderTier),
			AvgTimeOnIce:       result.Summary.AvgTimeOnIce,
			AvgShifts:          result.Summary.AvgShifts,
			AvgEfficiencyPer20: result.Summary.AvgEfficiency,
			PowerPlayInfluence: result.Summary.PowerPlayInfluence,
		},
	}
}

func watchlistEntryToDTO(entry watchlist.Entry) watchlistEntryDTO {
	return watchlistEntryDTO{
		ID:                 entry.ID,
		PlayerID:           entry.PlayerID,
		PlayerName:         entry.PlayerName,
		Club:               entry.ClubAbbrev,
		Stat:               entry.Stat,
		Threshold:          entry.Threshold,
		OverRate:           entry.OverRate,
		UnderRate:          entry.UnderRate,
		Confidence:         entry.Confidence(),
		ConfidenceTier:     string(metrics.TierForRate(entry.Confidence())),
		AvgTimeOnIce:       entry.AvgTimeOnIce,
		AvgShifts:          entry.AvgShifts,
		PowerPlayInfluence: entry.PowerPlayInfluence,
		MarketOdds:         entry.MarketOdds,
		NextOpponent:       entry.NextOpponent,
		NextGameHome:       entry.NextGameHome,
		SavedAt:            entry.SavedAt.UTC().Format(time.RFC3339),
	}
}

func watchlistEntriesToDTO(entries []watchlist.Entry) []watchlistEntryDTO {
	out := make([]watchlistEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, watchlistEntryToDTO(entry))
	}
	return out
}

func watchlistGroupsToDTO(groups []watchlist.Group) []watchlistGroupDTO {
	out := make([]watchlistGroupDTO, 0, len(groups))
	for _, group := range groups {
		out = append(out, watchlistGroupDTO{
			Opponent: group.Opponent,
			Entries:  watchlistEntriesToDTO(group.Entries),
		})
	}
	return out
}

package nhl

import (
	"strings"
	"time"

	"github.com/propwatch/nhl-hitrate/internal/domain/gamelog"
	"github.com/propwatch/nhl-hitrate/internal/domain/roster"
	"github.com/propwatch/nhl-hitrate/internal/domain/schedule"
)

// localizedText matches the NHL web API convention of wrapping display
// strings in a {"default": "..."} object.
type localizedText struct {
	Default string `json:"default"`
}

type standingsEnvelope struct {
	Standings []standingsRow `json:"standings"`
}

type standingsRow struct {
	TeamAbbrev localizedText `json:"teamAbbrev"`
	TeamName   localizedText `json:"teamName"`
}

type rosterEnvelope struct {
	Forwards   []rosterPlayer `json:"forwards"`
	Defensemen []rosterPlayer `json:"defensemen"`
	Goalies    []rosterPlayer `json:"goalies"`
}

type rosterPlayer struct {
	ID           int64         `json:"id"`
	FirstName    localizedText `json:"firstName"`
	LastName     localizedText `json:"lastName"`
	PositionCode string        `json:"positionCode"`
}

type gameLogEnvelope struct {
	GameLog []gameLogRow `json:"gameLog"`
}

type gameLogRow struct {
	GameDate        string `json:"gameDate"`
	OpponentAbbrev  string `json:"opponentAbbrev"`
	HomeRoadFlag    string `json:"homeRoadFlag"`
	Goals           int    `json:"goals"`
	Assists         int    `json:"assists"`
	Points          int    `json:"points"`
	Shots           int    `json:"shots"`
	Hits            int    `json:"hits"`
	PIM             int    `json:"pim"`
	PowerPlayGoals  int    `json:"powerPlayGoals"`
	PowerPlayPoints int    `json:"powerPlayPoints"`
	PowerPlayShots  int    `json:"powerPlayShots"`
	Shifts          int    `json:"shifts"`
	TOI             string `json:"toi"`
}

type clubScheduleEnvelope struct {
	Games []clubScheduleGame `json:"games"`
}

type clubScheduleGame struct {
	StartTimeUTC string       `json:"startTimeUTC"`
	HomeTeam     scheduleSide `json:"homeTeam"`
	AwayTeam     scheduleSide `json:"awayTeam"`
}

type scheduleSide struct {
	Abbrev string `json:"abbrev"`
}

func mapStandingsToClubs(rows []standingsRow) []roster.Club {
	out := make([]roster.Club, 0, len(rows))
	for _, row := range rows {
		abbrev := strings.ToUpper(strings.TrimSpace(row.TeamAbbrev.Default))
		if abbrev == "" {
			continue
		}
		out = append(out, roster.Club{
			Abbrev: abbrev,
			Name:   strings.TrimSpace(row.TeamName.Default),
		})
	}
	return out
}

func mapRosterToPlayers(envelope rosterEnvelope, clubAbbrev string) []roster.Player {
	groups := [][]rosterPlayer{envelope.Forwards, envelope.Defensemen, envelope.Goalies}
	out := make([]roster.Player, 0, len(envelope.Forwards)+len(envelope.Defensemen)+len(envelope.Goalies))
	for _, group := range groups {
		for _, item := range group {
			if item.ID <= 0 {
				continue
			}
			name := strings.TrimSpace(item.FirstName.Default + " " + item.LastName.Default)
			out = append(out, roster.Player{
				ID:         item.ID,
				Name:       name,
				ClubAbbrev: clubAbbrev,
				Position:   strings.TrimSpace(item.PositionCode),
			})
		}
	}
	return out
}

func mapGameLogToRecords(rows []gameLogRow) []gamelog.GameRecord {
	out := make([]gamelog.GameRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamelog.GameRecord{
			GameDate:        strings.TrimSpace(row.GameDate),
			OpponentAbbrev:  strings.ToUpper(strings.TrimSpace(row.OpponentAbbrev)),
			HomeRoad:        strings.TrimSpace(row.HomeRoadFlag),
			Goals:           row.Goals,
			Assists:         row.Assists,
			Points:          row.Points,
			Shots:           row.Shots,
			Hits:            row.Hits,
			PenaltyMinutes:  row.PIM,
			PowerPlayGoals:  row.PowerPlayGoals,
			PowerPlayPoints: row.PowerPlayPoints,
			PowerPlayShots:  row.PowerPlayShots,
			Shifts:          row.Shifts,
			TimeOnIce:       strings.TrimSpace(row.TOI),
		})
	}
	return out
}

func mapClubScheduleToGames(rows []clubScheduleGame) []schedule.Game {
	out := make([]schedule.Game, 0, len(rows))
	for _, row := range rows {
		startAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row.StartTimeUTC))
		if err != nil {
			continue
		}
		out = append(out, schedule.Game{
			StartAt:    startAt,
			HomeAbbrev: strings.ToUpper(strings.TrimSpace(row.HomeTeam.Abbrev)),
			AwayAbbrev: strings.ToUpper(strings.TrimSpace(row.AwayTeam.Abbrev)),
		})
	}
	return out
}

// Package cleaner turns one season's raw per-game playoff table into player-season records.
package cleaner

import (
	"math"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

const regulationMinutes = 48.0

var requiredColumns = []string{
	playoffs.ColumnPlayer,
	playoffs.ColumnGames,
	playoffs.ColumnMinutes,
	playoffs.ColumnPoints,
}

// Stats counts why rows were kept or dropped during a cleaning pass.
type Stats struct {
	InputRows          int `json:"inputRows"`
	HeaderRows         int `json:"headerRows"`
	MissingPlayer      int `json:"missingPlayer"`
	InvalidNumeric     int `json:"invalidNumeric"`
	NonPositiveMinutes int `json:"nonPositiveMinutes"`
	Kept               int `json:"kept"`
}

// Dropped returns how many input rows did not survive.
func (s Stats) Dropped() int {
	return s.InputRows - s.Kept
}

// Clean validates and normalizes raw into records for season, preserving row order.
func Clean(raw playoffs.RawTable, season int) ([]playoffs.PlayerSeasonRecord, error) {
	records, _, err := CleanWithStats(raw, season)
	return records, err
}

// CleanWithStats is Clean plus per-reason drop counts.
// A table that keeps no rows returns an empty, non-nil slice and a nil error.
func CleanWithStats(raw playoffs.RawTable, season int) ([]playoffs.PlayerSeasonRecord, Stats, error) {
	stats := Stats{InputRows: len(raw.Rows)}
	if missing := missingColumns(raw); len(missing) > 0 {
		return nil, stats, &playoffs.MalformedInputError{Season: season, Missing: missing}
	}

	hasRank := raw.HasColumn(playoffs.ColumnRank)
	teamCol := teamColumn(raw)
	records := make([]playoffs.PlayerSeasonRecord, 0, len(raw.Rows))

	for _, row := range raw.Rows {
		if hasRank && strings.TrimSpace(row[playoffs.ColumnRank]) == playoffs.ColumnRank {
			stats.HeaderRows++
			continue
		}
		player := strings.TrimSpace(row[playoffs.ColumnPlayer])
		if player == "" {
			stats.MissingPlayer++
			continue
		}

		minutes := parseNumber(row[playoffs.ColumnMinutes])
		if !minutes.ok {
			stats.InvalidNumeric++
			continue
		}
		if minutes.value <= 0 {
			stats.NonPositiveMinutes++
			continue
		}
		games := parseGames(row[playoffs.ColumnGames])
		points := parsePoints(row[playoffs.ColumnPoints])
		if !games.ok || !points.ok {
			stats.InvalidNumeric++
			continue
		}

		var team string
		if teamCol != "" {
			team = strings.TrimSpace(row[teamCol])
		}
		records = append(records, newRecord(season, player, team, int(games.value), minutes.value, points.value))
	}

	stats.Kept = len(records)
	return records, stats, nil
}

func newRecord(season int, player, team string, games int, minutes, points float64) playoffs.PlayerSeasonRecord {
	return playoffs.PlayerSeasonRecord{
		Season:         season,
		Player:         player,
		Team:           team,
		Games:          games,
		MinutesPerGame: minutes,
		PointsPerGame:  points,
		TotalPoints:    points * float64(games),
		PointsPer48:    points * regulationMinutes / minutes,
	}
}

func missingColumns(raw playoffs.RawTable) []string {
	var missing []string
	for _, col := range requiredColumns {
		if !raw.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

func teamColumn(raw playoffs.RawTable) string {
	switch {
	case raw.HasColumn(playoffs.ColumnTeam):
		return playoffs.ColumnTeam
	case raw.HasColumn(playoffs.ColumnTeamAlt):
		return playoffs.ColumnTeamAlt
	default:
		return ""
	}
}

// optionalFloat is a coerced cell: ok is false when the cell was absent or unparseable.
type optionalFloat struct {
	value float64
	ok    bool
}

func parseNumber(raw string) optionalFloat {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return optionalFloat{}
	}
	return optionalFloat{value: v, ok: true}
}

func parseGames(raw string) optionalFloat {
	n := parseNumber(raw)
	if !n.ok || n.value < 0 || n.value != math.Trunc(n.value) {
		return optionalFloat{}
	}
	return n
}

func parsePoints(raw string) optionalFloat {
	n := parseNumber(raw)
	if !n.ok || n.value < 0 {
		return optionalFloat{}
	}
	return n
}

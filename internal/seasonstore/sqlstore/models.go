package sqlstore

import (
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// seasonRow marks a season as written, so an empty season is distinguishable from a missing one.
type seasonRow struct {
	Season    int `gorm:"primaryKey;autoIncrement:false"`
	Records   int `gorm:"not null"`
	WrittenAt time.Time
}

func (seasonRow) TableName() string { return "playoff_seasons" }

// recordRow is one stored PlayerSeasonRecord. Ordinal preserves cleaner order within a season.
type recordRow struct {
	ID             uint    `gorm:"primaryKey"`
	Season         int     `gorm:"not null;index:idx_record_season_ordinal,priority:1"`
	Ordinal        int     `gorm:"not null;index:idx_record_season_ordinal,priority:2"`
	Player         string  `gorm:"not null"`
	Team           string  `gorm:"not null;default:''"`
	Games          int     `gorm:"not null"`
	MinutesPerGame float64 `gorm:"not null"`
	PointsPerGame  float64 `gorm:"not null"`
	TotalPoints    float64 `gorm:"not null"`
	PointsPer48    float64 `gorm:"not null"`
}

func (recordRow) TableName() string { return "player_season_records" }

// combinedRow is one entry of the multi-season collection, in caller order.
type combinedRow struct {
	Ordinal        int `gorm:"primaryKey;autoIncrement:false"`
	Season         int `gorm:"not null"`
	Player         string
	Team           string
	Games          int
	MinutesPerGame float64
	PointsPerGame  float64
	TotalPoints    float64
	PointsPer48    float64
}

func (combinedRow) TableName() string { return "combined_records" }

func toRecordRow(ordinal int, r playoffs.PlayerSeasonRecord) recordRow {
	return recordRow{
		Season:         r.Season,
		Ordinal:        ordinal,
		Player:         r.Player,
		Team:           r.Team,
		Games:          r.Games,
		MinutesPerGame: r.MinutesPerGame,
		PointsPerGame:  r.PointsPerGame,
		TotalPoints:    r.TotalPoints,
		PointsPer48:    r.PointsPer48,
	}
}

func (r recordRow) toRecord() playoffs.PlayerSeasonRecord {
	return playoffs.PlayerSeasonRecord{
		Season:         r.Season,
		Player:         r.Player,
		Team:           r.Team,
		Games:          r.Games,
		MinutesPerGame: r.MinutesPerGame,
		PointsPerGame:  r.PointsPerGame,
		TotalPoints:    r.TotalPoints,
		PointsPer48:    r.PointsPer48,
	}
}

func toCombinedRow(ordinal int, r playoffs.PlayerSeasonRecord) combinedRow {
	row := toRecordRow(ordinal, r)
	return combinedRow{
		Ordinal:        ordinal,
		Season:         row.Season,
		Player:         row.Player,
		Team:           row.Team,
		Games:          row.Games,
		MinutesPerGame: row.MinutesPerGame,
		PointsPerGame:  row.PointsPerGame,
		TotalPoints:    row.TotalPoints,
		PointsPer48:    row.PointsPer48,
	}
}

func (r combinedRow) toRecord() playoffs.PlayerSeasonRecord {
	return playoffs.PlayerSeasonRecord{
		Season:         r.Season,
		Player:         r.Player,
		Team:           r.Team,
		Games:          r.Games,
		MinutesPerGame: r.MinutesPerGame,
		PointsPerGame:  r.PointsPerGame,
		TotalPoints:    r.TotalPoints,
		PointsPer48:    r.PointsPer48,
	}
}

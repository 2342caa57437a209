package testutil

import (
	"context"
	"strconv"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers/fixture"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore/memstore"
)

// SampleRecord returns a cleaned record with derived fields filled in.
func SampleRecord(season int, player, team string, games int, minutes, points float64) playoffs.PlayerSeasonRecord {
	return playoffs.PlayerSeasonRecord{
		Season:         season,
		Player:         player,
		Team:           team,
		Games:          games,
		MinutesPerGame: minutes,
		PointsPerGame:  points,
		TotalPoints:    points * float64(games),
		PointsPer48:    points * 48 / minutes,
	}
}

// SampleRecords returns a small two-season record set.
func SampleRecords() []playoffs.PlayerSeasonRecord {
	return []playoffs.PlayerSeasonRecord{
		SampleRecord(2023, "Starter One", "DEN", 20, 38.0, 30.0),
		SampleRecord(2023, "Bench Spark", "MIA", 18, 14.0, 11.0),
		SampleRecord(2023, "Role Player", "BOS", 19, 24.0, 9.0),
		SampleRecord(2024, "Starter Two", "BOS", 19, 37.5, 26.5),
		SampleRecord(2024, "Sixth Man", "DAL", 22, 22.0, 14.0),
	}
}

// SampleRawTable returns a raw season table with one repeated header row and one DNP row.
func SampleRawTable(season int) playoffs.RawTable {
	cols := []string{
		playoffs.ColumnRank, playoffs.ColumnPlayer, playoffs.ColumnTeam,
		playoffs.ColumnGames, playoffs.ColumnMinutes, playoffs.ColumnPoints,
	}
	row := func(rk, player, team, g, mp, pts string) playoffs.RawRow {
		return playoffs.RawRow{
			playoffs.ColumnRank: rk, playoffs.ColumnPlayer: player, playoffs.ColumnTeam: team,
			playoffs.ColumnGames: g, playoffs.ColumnMinutes: mp, playoffs.ColumnPoints: pts,
		}
	}
	return playoffs.RawTable{
		Season:  season,
		Columns: cols,
		Rows: []playoffs.RawRow{
			row("1", "Starter One", "DEN", "20", "38.0", "30.0"),
			row("Rk", "Player", "Tm", "G", "MP", "PTS"),
			row("2", "Bench Spark", "MIA", "18", "14.0", "11.0"),
			row("3", "Deep Bench", "MIA", "2", "0.0", "0.0"),
			row("4", "Role Player", "BOS", strconv.Itoa(19), "24.0", "9.0"),
		},
	}
}

// SampleResult runs the pipeline over the built-in fixture tables for seasons.
func SampleResult(seasons ...int) pipeline.Result {
	if len(seasons) == 0 {
		seasons = []int{2022, 2023, 2024}
	}
	p := pipeline.New(fixture.New(), memstore.New(), pipeline.Config{Seasons: seasons, TopN: 5}, nil, nil)
	res, err := p.Run(context.Background())
	if err != nil {
		panic(err)
	}
	return res
}

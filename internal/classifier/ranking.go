package classifier

import (
	"sort"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// DefaultTopN is the result size for ranking views when none is configured.
const DefaultTopN = 10

// Top returns at most n records of category across every season in classified,
// ordered by points-per-48 descending with ties broken by player name ascending.
func Top(classified []playoffs.ClassifiedRecord, category playoffs.UsageCategory, n int) []playoffs.ClassifiedRecord {
	if n <= 0 {
		return []playoffs.ClassifiedRecord{}
	}
	filtered := FilterCategory(classified, category)
	sort.SliceStable(filtered, func(i, j int) bool {
		return per48Less(filtered[i].PlayerSeasonRecord, filtered[j].PlayerSeasonRecord)
	})
	return limit(filtered, n)
}

// TopMinutesDependent is Top for minutes_dependent player-seasons.
func TopMinutesDependent(classified []playoffs.ClassifiedRecord, n int) []playoffs.ClassifiedRecord {
	return Top(classified, playoffs.CategoryMinutesDependent, n)
}

// TopUnderutilized is Top for underutilized player-seasons.
func TopUnderutilized(classified []playoffs.ClassifiedRecord, n int) []playoffs.ClassifiedRecord {
	return Top(classified, playoffs.CategoryUnderutilized, n)
}

// TopPer48 ranks every player-season by points-per-48 regardless of category.
func TopPer48(records []playoffs.PlayerSeasonRecord, n int) []playoffs.PlayerSeasonRecord {
	if n <= 0 {
		return []playoffs.PlayerSeasonRecord{}
	}
	sorted := append([]playoffs.PlayerSeasonRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return per48Less(sorted[i], sorted[j]) })
	return limit(sorted, n)
}

// TopScorersInSeason ranks one season's records by total points, ties by player name.
func TopScorersInSeason(records []playoffs.PlayerSeasonRecord, season, n int) []playoffs.PlayerSeasonRecord {
	if n <= 0 {
		return []playoffs.PlayerSeasonRecord{}
	}
	var scoped []playoffs.PlayerSeasonRecord
	for _, r := range records {
		if r.Season == season {
			scoped = append(scoped, r)
		}
	}
	sort.SliceStable(scoped, func(i, j int) bool {
		a, b := scoped[i], scoped[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		return tieBreak(a, b)
	})
	return limit(scoped, n)
}

func per48Less(a, b playoffs.PlayerSeasonRecord) bool {
	if a.PointsPer48 != b.PointsPer48 {
		return a.PointsPer48 > b.PointsPer48
	}
	return tieBreak(a, b)
}

func tieBreak(a, b playoffs.PlayerSeasonRecord) bool {
	if a.Player != b.Player {
		return a.Player < b.Player
	}
	if a.Season != b.Season {
		return a.Season < b.Season
	}
	return a.Team < b.Team
}

func limit[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

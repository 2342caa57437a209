// Package aggregator combines cleaned season record sets into a multi-season dataset.
package aggregator

import (
	"fmt"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// Dataset is the combined multi-season view plus its per-season summaries.
type Dataset struct {
	Records   []playoffs.PlayerSeasonRecord `json:"records"`
	Summaries []playoffs.SeasonSummary      `json:"summaries"`
}

// Combine concatenates seasons in the order given and summarizes each season present.
// Seasons are never re-sorted; a season with no records gets no summary row.
func Combine(seasons []playoffs.SeasonRecords) (Dataset, error) {
	total := 0
	for _, s := range seasons {
		total += len(s.Records)
	}

	records := make([]playoffs.PlayerSeasonRecord, 0, total)
	sums := make(map[int]*seasonSum)
	var order []int

	for _, s := range seasons {
		for _, r := range s.Records {
			if err := r.Validate(); err != nil {
				return Dataset{}, fmt.Errorf("combine season %d: %w", s.Season, err)
			}
			records = append(records, r)

			acc, ok := sums[r.Season]
			if !ok {
				acc = &seasonSum{}
				sums[r.Season] = acc
				order = append(order, r.Season)
			}
			acc.add(r.PointsPer48)
		}
	}

	return Dataset{Records: records, Summaries: summarize(order, sums)}, nil
}

// Summarize computes season summaries for an already-combined record sequence.
func Summarize(records []playoffs.PlayerSeasonRecord) []playoffs.SeasonSummary {
	sums := make(map[int]*seasonSum)
	var order []int
	for _, r := range records {
		acc, ok := sums[r.Season]
		if !ok {
			acc = &seasonSum{}
			sums[r.Season] = acc
			order = append(order, r.Season)
		}
		acc.add(r.PointsPer48)
	}
	return summarize(order, sums)
}

// SeasonsOf returns the distinct seasons present in records in first-appearance order.
func SeasonsOf(records []playoffs.PlayerSeasonRecord) []int {
	seen := make(map[int]struct{})
	var seasons []int
	for _, r := range records {
		if _, ok := seen[r.Season]; ok {
			continue
		}
		seen[r.Season] = struct{}{}
		seasons = append(seasons, r.Season)
	}
	return seasons
}

// FilterSeason returns the records belonging to season, preserving order.
func FilterSeason(records []playoffs.PlayerSeasonRecord, season int) []playoffs.PlayerSeasonRecord {
	out := make([]playoffs.PlayerSeasonRecord, 0)
	for _, r := range records {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}

type seasonSum struct {
	total float64
	count int
}

func (s *seasonSum) add(v float64) {
	s.total += v
	s.count++
}

func summarize(order []int, sums map[int]*seasonSum) []playoffs.SeasonSummary {
	summaries := make([]playoffs.SeasonSummary, 0, len(order))
	for _, season := range order {
		acc := sums[season]
		if acc.count == 0 {
			continue
		}
		summaries = append(summaries, playoffs.SeasonSummary{
			Season:         season,
			AvgPointsPer48: acc.total / float64(acc.count),
		})
	}
	return summaries
}

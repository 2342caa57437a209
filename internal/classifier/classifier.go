// Package classifier labels player-seasons with usage categories and builds ranked views.
//
// Cutoffs come from the whole dataset being classified, never from one season or from
// fixed constants:
//
//   - minutes_dependent: minutes at or above the 75th percentile and points-per-48 at or
//     below the median.
//   - underutilized: minutes at or below the median and points-per-48 at or above the
//     75th percentile.
//   - standard: everything else.
package classifier

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// ClassifyRecord labels a single record against precomputed thresholds.
func ClassifyRecord(r playoffs.PlayerSeasonRecord, t Thresholds) playoffs.UsageCategory {
	if r.MinutesPerGame >= t.MinutesHigh && r.PointsPer48 <= t.Per48Median {
		return playoffs.CategoryMinutesDependent
	}
	if r.MinutesPerGame <= t.MinutesLow && r.PointsPer48 >= t.Per48High {
		return playoffs.CategoryUnderutilized
	}
	return playoffs.CategoryStandard
}

// Classify computes thresholds over records and labels every record, preserving order.
func Classify(records []playoffs.PlayerSeasonRecord) ([]playoffs.ClassifiedRecord, Thresholds) {
	t := ComputeThresholds(records)
	out := make([]playoffs.ClassifiedRecord, len(records))
	for i, r := range records {
		out[i] = playoffs.ClassifiedRecord{PlayerSeasonRecord: r, Category: ClassifyRecord(r, t)}
	}
	return out, t
}

// CountByCategory tallies classified records; every category is present in the result.
func CountByCategory(classified []playoffs.ClassifiedRecord) map[playoffs.UsageCategory]int {
	counts := make(map[playoffs.UsageCategory]int, 3)
	for _, c := range playoffs.Categories() {
		counts[c] = 0
	}
	for _, r := range classified {
		counts[r.Category]++
	}
	return counts
}

// FilterCategory keeps records with the given category, preserving order.
func FilterCategory(classified []playoffs.ClassifiedRecord, category playoffs.UsageCategory) []playoffs.ClassifiedRecord {
	out := make([]playoffs.ClassifiedRecord, 0)
	for _, r := range classified {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// ParseCategory accepts the canonical names plus hyphenated/space variants.
func ParseCategory(raw string) (playoffs.UsageCategory, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	c := playoffs.UsageCategory(normalized)
	if !c.Valid() {
		return "", fmt.Errorf("unknown usage category %q", raw)
	}
	return c, nil
}

package classifier

import (
	"math"
	"sort"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// Percentiles used to derive Thresholds from the classified dataset.
const (
	HighPercentile   = 0.75
	MedianPercentile = 0.50
)

// Thresholds are the dataset-relative cutoffs that separate usage categories.
type Thresholds struct {
	MinutesHigh float64 `json:"minutesHigh"`
	MinutesLow  float64 `json:"minutesLow"`
	Per48High   float64 `json:"per48High"`
	Per48Median float64 `json:"per48Median"`
}

// ComputeThresholds derives cutoffs from the full multi-season record set.
// An empty set yields zero thresholds.
func ComputeThresholds(records []playoffs.PlayerSeasonRecord) Thresholds {
	if len(records) == 0 {
		return Thresholds{}
	}
	minutes := make([]float64, len(records))
	per48 := make([]float64, len(records))
	for i, r := range records {
		minutes[i] = r.MinutesPerGame
		per48[i] = r.PointsPer48
	}
	sort.Float64s(minutes)
	sort.Float64s(per48)

	return Thresholds{
		MinutesHigh: percentile(minutes, HighPercentile),
		MinutesLow:  percentile(minutes, MedianPercentile),
		Per48High:   percentile(per48, HighPercentile),
		Per48Median: percentile(per48, MedianPercentile),
	}
}

// percentile interpolates linearly between closest ranks of sorted values.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

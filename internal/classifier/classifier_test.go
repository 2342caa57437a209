package classifier

import (
	"reflect"
	"testing"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// gradient builds n records where minutes rise as points-per-48 falls, alternating seasons.
func gradient(n int) []playoffs.PlayerSeasonRecord {
	out := make([]playoffs.PlayerSeasonRecord, n)
	for i := 0; i < n; i++ {
		season := 2023
		if i%2 == 1 {
			season = 2024
		}
		minutes := 10 + float64(i)
		per48 := 50 - 0.5*float64(i)
		ppg := per48 * minutes / 48
		out[i] = playoffs.PlayerSeasonRecord{
			Season:         season,
			Player:         string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Team:           "TST",
			Games:          5,
			MinutesPerGame: minutes,
			PointsPerGame:  ppg,
			TotalPoints:    ppg * 5,
			PointsPer48:    per48,
		}
	}
	return out
}

func TestPercentileInterpolates(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	if got := percentile(values, 0.75); got != 3.25 {
		t.Fatalf("expected 3.25, got %v", got)
	}
	if got := percentile(values, 0.5); got != 2.5 {
		t.Fatalf("expected 2.5, got %v", got)
	}
	if got := percentile([]float64{7}, 0.75); got != 7 {
		t.Fatalf("expected single value, got %v", got)
	}
	if got := percentile(nil, 0.5); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}

func TestComputeThresholdsUsesWholeDataset(t *testing.T) {
	th := ComputeThresholds(gradient(60))
	want := Thresholds{MinutesHigh: 54.25, MinutesLow: 39.5, Per48High: 42.625, Per48Median: 35.25}
	if th != want {
		t.Fatalf("expected %+v, got %+v", want, th)
	}
	if (ComputeThresholds(nil) != Thresholds{}) {
		t.Fatalf("expected zero thresholds for empty input")
	}
}

func TestClassifyRecord(t *testing.T) {
	th := Thresholds{MinutesHigh: 35, MinutesLow: 20, Per48High: 30, Per48Median: 22}
	cases := []struct {
		name     string
		minutes  float64
		per48    float64
		expected playoffs.UsageCategory
	}{
		{"heavy_minutes_low_rate", 38, 18, playoffs.CategoryMinutesDependent},
		{"heavy_minutes_at_median", 35, 22, playoffs.CategoryMinutesDependent},
		{"light_minutes_high_rate", 12, 34, playoffs.CategoryUnderutilized},
		{"light_minutes_at_cutoffs", 20, 30, playoffs.CategoryUnderutilized},
		{"heavy_minutes_high_rate", 38, 34, playoffs.CategoryStandard},
		{"light_minutes_low_rate", 12, 10, playoffs.CategoryStandard},
		{"middle", 27, 25, playoffs.CategoryStandard},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := playoffs.PlayerSeasonRecord{Player: "p", MinutesPerGame: tc.minutes, PointsPer48: tc.per48}
			if got := ClassifyRecord(r, th); got != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestClassifyCompleteAndStable(t *testing.T) {
	records := gradient(60)
	first, th1 := Classify(records)
	second, th2 := Classify(records)

	if len(first) != len(records) {
		t.Fatalf("expected every record classified, got %d of %d", len(first), len(records))
	}
	for i, c := range first {
		if !c.Category.Valid() {
			t.Fatalf("record %d has invalid category %q", i, c.Category)
		}
		if c.PlayerSeasonRecord != records[i] {
			t.Fatalf("record %d changed during classification", i)
		}
	}
	if th1 != th2 || !reflect.DeepEqual(first, second) {
		t.Fatalf("expected stable classification")
	}

	counts := CountByCategory(first)
	if counts[playoffs.CategoryMinutesDependent] != 15 || counts[playoffs.CategoryUnderutilized] != 15 || counts[playoffs.CategoryStandard] != 30 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestCountByCategoryIncludesZeroes(t *testing.T) {
	counts := CountByCategory(nil)
	for _, c := range playoffs.Categories() {
		if v, ok := counts[c]; !ok || v != 0 {
			t.Fatalf("expected zero count for %s, got %d (present=%v)", c, v, ok)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]playoffs.UsageCategory{
		"minutes_dependent": playoffs.CategoryMinutesDependent,
		"Minutes-Dependent": playoffs.CategoryMinutesDependent,
		" underutilized ":   playoffs.CategoryUnderutilized,
		"STANDARD":          playoffs.CategoryStandard,
	}
	for input, expected := range cases {
		got, err := ParseCategory(input)
		if err != nil || got != expected {
			t.Fatalf("input %q expected %s, got %s err=%v", input, expected, got, err)
		}
	}
	if _, err := ParseCategory("bench"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

package pipeline

import (
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/classifier"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/cleaner"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// SeasonOutcome reports what happened to one requested season during a run.
type SeasonOutcome struct {
	Season  int                          `json:"season"`
	Kept    int                          `json:"kept"`
	Stats   cleaner.Stats                `json:"stats"`
	Err     error                        `json:"-"`
	Warning *playoffs.EmptyResultWarning `json:"-"`
}

// OK reports whether the season produced a stored record set, possibly empty.
func (o SeasonOutcome) OK() bool { return o.Err == nil }

// ErrorMessage returns the failure text, or "" for a successful season.
func (o SeasonOutcome) ErrorMessage() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// WarningMessage returns the warning text, or "".
func (o SeasonOutcome) WarningMessage() string {
	if o.Warning == nil {
		return ""
	}
	return o.Warning.Error()
}

// Result is the output of one pipeline run: the four read-only views plus run metadata.
type Result struct {
	RunID      string    `json:"runId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	Seasons []SeasonOutcome `json:"seasons"`

	Records    []playoffs.PlayerSeasonRecord `json:"records"`
	Summaries  []playoffs.SeasonSummary      `json:"summaries"`
	Classified []playoffs.ClassifiedRecord   `json:"classified"`
	Thresholds classifier.Thresholds         `json:"thresholds"`

	Category playoffs.UsageCategory     `json:"category"`
	TopN     int                        `json:"topN"`
	Ranked   []playoffs.ClassifiedRecord `json:"ranked"`
}

// Failed returns the outcomes of seasons that did not produce records.
func (r Result) Failed() []SeasonOutcome {
	var out []SeasonOutcome
	for _, o := range r.Seasons {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Ranking returns the top n classified records for category from this result.
func (r Result) Ranking(category playoffs.UsageCategory, n int) []playoffs.ClassifiedRecord {
	return classifier.Top(r.Classified, category, n)
}

// Usage returns per-category counts over the classified view.
func (r Result) Usage() map[playoffs.UsageCategory]int {
	return classifier.CountByCategory(r.Classified)
}

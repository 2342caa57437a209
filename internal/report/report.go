// Package report renders pipeline results as an XLSX workbook and PNG charts.
package report

import (
	"errors"
	"fmt"
	"strings"
)

// Chart names a renderable PNG chart.
type Chart string

const (
	ChartTopScorers     Chart = "top-scorers"
	ChartMinutesVsPer48 Chart = "minutes-vs-per48"
	ChartTopPer48       Chart = "top-per48"
)

// WorkbookFile is the file name WriteDir uses for the workbook.
const WorkbookFile = "playoff_efficiency.xlsx"

const defaultChartTopN = 10

// ErrUnknownChart is returned for chart names outside Charts().
var ErrUnknownChart = errors.New("unknown chart")

// ErrEmptyResult is returned when a result carries nothing to render.
var ErrEmptyResult = errors.New("result has no records")

// Charts lists every chart in the order WriteDir renders them.
func Charts() []Chart {
	return []Chart{ChartTopScorers, ChartMinutesVsPer48, ChartTopPer48}
}

// ParseChart resolves a chart name, tolerating a trailing ".png".
func ParseChart(raw string) (Chart, error) {
	name := Chart(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), ".png"))
	for _, c := range Charts() {
		if c == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, raw)
}

// FileName is the PNG file name WriteDir uses for c.
func (c Chart) FileName() string {
	return string(c) + ".png"
}

// Options tunes chart content. Zero values pick defaults.
type Options struct {
	// Season selects the season for single-season charts; 0 means the latest season in the result.
	Season int
	TopN   int
}

func (o Options) topN() int {
	if o.TopN <= 0 {
		return defaultChartTopN
	}
	return o.TopN
}

package report

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/aggregator"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/classifier"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

const (
	chartWidth  = 960
	chartHeight = 600

	plotLeft   = 220.0
	plotRight  = 40.0
	plotTop    = 60.0
	plotBottom = 60.0
)

var (
	colorBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorInk        = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colorGrid       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	colorBar        = color.RGBA{R: 68, G: 114, B: 196, A: 255}
	colorThreshold  = color.RGBA{R: 200, G: 60, B: 60, A: 255}
)

var categoryColors = map[playoffs.UsageCategory]color.Color{
	playoffs.CategoryMinutesDependent: color.RGBA{R: 230, G: 126, B: 34, A: 255},
	playoffs.CategoryUnderutilized:    color.RGBA{R: 39, G: 174, B: 96, A: 255},
	playoffs.CategoryStandard:         color.RGBA{R: 149, G: 165, B: 166, A: 255},
}

// RenderChart draws chart from res as a PNG to out.
func RenderChart(out io.Writer, chart Chart, res pipeline.Result, opts Options) error {
	if len(res.Records) == 0 {
		return ErrEmptyResult
	}

	var (
		dc  *gg.Context
		err error
	)
	switch chart {
	case ChartTopScorers:
		dc, err = topScorersChart(res, opts)
	case ChartTopPer48:
		dc = topPer48Chart(res, opts)
	case ChartMinutesVsPer48:
		dc = minutesVsPer48Chart(res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(out); err != nil {
		return fmt.Errorf("encode %s chart: %w", chart, err)
	}
	return nil
}

// LatestSeason returns the highest season present in records, or 0.
func LatestSeason(records []playoffs.PlayerSeasonRecord) int {
	latest := 0
	for _, s := range aggregator.SeasonsOf(records) {
		if s > latest {
			latest = s
		}
	}
	return latest
}

func topScorersChart(res pipeline.Result, opts Options) (*gg.Context, error) {
	season := opts.Season
	if season == 0 {
		season = LatestSeason(res.Records)
	}
	top := classifier.TopScorersInSeason(res.Records, season, opts.topN())
	if len(top) == 0 {
		return nil, fmt.Errorf("%w: season %d", ErrEmptyResult, season)
	}

	labels := make([]string, len(top))
	values := make([]float64, len(top))
	for i, r := range top {
		labels[i] = r.Player
		values[i] = r.TotalPoints
	}
	dc := newCanvas(fmt.Sprintf("Top %d playoff scorers, %d (total points)", len(top), season))
	drawBars(dc, labels, values, "%.0f")
	return dc, nil
}

func topPer48Chart(res pipeline.Result, opts Options) *gg.Context {
	top := classifier.TopPer48(res.Records, opts.topN())
	labels := make([]string, len(top))
	values := make([]float64, len(top))
	for i, r := range top {
		labels[i] = fmt.Sprintf("%s (%d)", r.Player, r.Season)
		values[i] = r.PointsPer48
	}
	dc := newCanvas(fmt.Sprintf("Top %d points per 48 minutes, all seasons", len(top)))
	drawBars(dc, labels, values, "%.1f")
	return dc
}

func minutesVsPer48Chart(res pipeline.Result) *gg.Context {
	dc := newCanvas("Minutes per game vs points per 48")
	left, top, right, bottom := plotLeft/2, plotTop, float64(chartWidth)-plotRight, float64(chartHeight)-plotBottom

	maxX, maxY := 0.0, 0.0
	for _, r := range res.Classified {
		maxX = math.Max(maxX, r.MinutesPerGame)
		maxY = math.Max(maxY, r.PointsPer48)
	}
	maxX = niceCeil(maxX)
	maxY = niceCeil(maxY)
	px := func(v float64) float64 { return left + v/maxX*(right-left) }
	py := func(v float64) float64 { return bottom - v/maxY*(bottom-top) }

	drawAxes(dc, left, top, right, bottom)
	dc.SetColor(colorInk)
	dc.DrawStringAnchored("MP", (left+right)/2, bottom+36, 0.5, 0.5)
	dc.DrawStringAnchored("PTS/48", left, top-14, 0.5, 0.5)
	for i := 0; i <= 4; i++ {
		x := maxX * float64(i) / 4
		y := maxY * float64(i) / 4
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", x), px(x), bottom+16, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", y), left-8, py(y), 1, 0.5)
	}

	dc.SetColor(colorThreshold)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	dc.DrawLine(px(res.Thresholds.MinutesHigh), top, px(res.Thresholds.MinutesHigh), bottom)
	dc.Stroke()
	dc.DrawLine(left, py(res.Thresholds.Per48Median), right, py(res.Thresholds.Per48Median))
	dc.Stroke()
	dc.SetDash()

	for _, r := range res.Classified {
		dc.SetColor(categoryColors[r.Category])
		dc.DrawCircle(px(r.MinutesPerGame), py(r.PointsPer48), 4)
		dc.Fill()
	}

	for i, c := range playoffs.Categories() {
		y := top + 10 + float64(i)*18
		dc.SetColor(categoryColors[c])
		dc.DrawCircle(right-150, y, 5)
		dc.Fill()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(string(c), right-140, y, 0, 0.5)
	}
	return dc
}

func newCanvas(title string) *gg.Context {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(colorBackground)
	dc.Clear()
	dc.SetColor(colorInk)
	dc.DrawStringAnchored(title, chartWidth/2, plotTop/2, 0.5, 0.5)
	return dc
}

// drawBars draws horizontal bars, first label on top.
func drawBars(dc *gg.Context, labels []string, values []float64, valueFormat string) {
	left, top, right, bottom := plotLeft, plotTop, float64(chartWidth)-plotRight, float64(chartHeight)-plotBottom
	drawAxes(dc, left, top, right, bottom)
	if len(values) == 0 {
		return
	}

	maxV := 0.0
	for _, v := range values {
		maxV = math.Max(maxV, v)
	}
	maxV = niceCeil(maxV)

	slot := (bottom - top) / float64(len(values))
	barH := slot * 0.7
	for i, v := range values {
		y := top + float64(i)*slot + (slot-barH)/2
		w := v / maxV * (right - left - 60)
		dc.SetColor(colorBar)
		dc.DrawRectangle(left, y, w, barH)
		dc.Fill()
		dc.SetColor(colorInk)
		dc.DrawStringAnchored(labels[i], left-8, y+barH/2, 1, 0.5)
		dc.DrawStringAnchored(fmt.Sprintf(valueFormat, v), left+w+6, y+barH/2, 0, 0.5)
	}
}

func drawAxes(dc *gg.Context, left, top, right, bottom float64) {
	dc.SetColor(colorGrid)
	dc.SetLineWidth(1)
	dc.DrawRectangle(left, top, right-left, bottom-top)
	dc.Stroke()
	dc.SetColor(colorInk)
	dc.SetLineWidth(1.5)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()
}

// niceCeil rounds v up to a multiple of 5, never below 5.
func niceCeil(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 5
	}
	return math.Ceil(v/5) * 5
}

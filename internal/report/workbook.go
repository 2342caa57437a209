package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

// Sheet names in workbook order.
const (
	SheetRecords    = "Records"
	SheetSummaries  = "Summaries"
	SheetClassified = "Classified"
	SheetRankings   = "Rankings"
	SheetUsage      = "Usage"
	SheetSeasons    = "Seasons"
)

var recordHeader = []any{"Season", "Player", "Team", "G", "MP", "PTS", "Total PTS", "PTS/48"}

// Workbook builds an in-memory workbook from res. The caller closes the file.
func Workbook(res pipeline.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetRecords); err != nil {
		_ = f.Close()
		return nil, err
	}
	for _, name := range []string{SheetSummaries, SheetClassified, SheetRankings, SheetUsage, SheetSeasons} {
		if _, err := f.NewSheet(name); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := sheetWriter{f: f, headerStyle: headerStyle}
	w.records(res.Records)
	w.summaries(res.Summaries)
	w.classified(SheetClassified, res.Classified)
	w.classified(SheetRankings, res.Ranked)
	w.usage(res.Usage())
	w.seasons(res.Seasons)
	if w.err != nil {
		_ = f.Close()
		return nil, w.err
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook renders res as XLSX to out.
func WriteWorkbook(out io.Writer, res pipeline.Result) error {
	f, err := Workbook(res)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// sheetWriter keeps the first error so sheet builders stay linear.
type sheetWriter struct {
	f           *excelize.File
	headerStyle int
	err         error
}

func (w *sheetWriter) header(sheet string, cols []any) {
	w.row(sheet, 1, cols)
	if w.err != nil {
		return
	}
	w.err = w.f.SetRowStyle(sheet, 1, 1, w.headerStyle)
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) row(sheet string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func recordCells(r playoffs.PlayerSeasonRecord) []any {
	return []any{r.Season, r.Player, r.Team, r.Games, r.MinutesPerGame, r.PointsPerGame, r.TotalPoints, r.PointsPer48}
}

func (w *sheetWriter) records(records []playoffs.PlayerSeasonRecord) {
	w.header(SheetRecords, recordHeader)
	for i, r := range records {
		w.row(SheetRecords, i+2, recordCells(r))
	}
}

func (w *sheetWriter) summaries(summaries []playoffs.SeasonSummary) {
	w.header(SheetSummaries, []any{"Season", "Avg PTS/48"})
	for i, s := range summaries {
		w.row(SheetSummaries, i+2, []any{s.Season, s.AvgPointsPer48})
	}
}

func (w *sheetWriter) classified(sheet string, records []playoffs.ClassifiedRecord) {
	w.header(sheet, append(append([]any{}, recordHeader...), "Category"))
	for i, r := range records {
		w.row(sheet, i+2, append(recordCells(r.PlayerSeasonRecord), string(r.Category)))
	}
}

func (w *sheetWriter) usage(counts map[playoffs.UsageCategory]int) {
	w.header(SheetUsage, []any{"Category", "Count"})
	for i, c := range playoffs.Categories() {
		w.row(SheetUsage, i+2, []any{string(c), counts[c]})
	}
}

func (w *sheetWriter) seasons(outcomes []pipeline.SeasonOutcome) {
	w.header(SheetSeasons, []any{"Season", "Kept", "Dropped", "Error", "Warning"})
	for i, o := range outcomes {
		w.row(SheetSeasons, i+2, []any{o.Season, o.Kept, o.Stats.Dropped(), o.ErrorMessage(), o.WarningMessage()})
	}
}

package providers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
)

// RawFileName is the per-season raw export name read by the csv and http providers.
func RawFileName(season int) string {
	return fmt.Sprintf("nba_playoffs_per_game_%d_raw.csv", season)
}

// DecodeCSV reads a raw per-game table. The first record is the header; every later
// record becomes a RawRow keyed by header. Short records leave trailing columns absent.
func DecodeCSV(r io.Reader, season int) (playoffs.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return playoffs.RawTable{Season: season, Rows: []playoffs.RawRow{}}, nil
	}
	if err != nil {
		return playoffs.RawTable{}, fmt.Errorf("read csv header: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]playoffs.RawRow, 0, 256)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return playoffs.RawTable{}, fmt.Errorf("read csv row %d: %w", len(rows)+2, err)
		}
		row := make(playoffs.RawRow, len(columns))
		for i, col := range columns {
			if i >= len(record) || col == "" {
				continue
			}
			row[col] = record[i]
		}
		rows = append(rows, row)
	}

	return playoffs.RawTable{Season: season, Columns: columns, Rows: rows}, nil
}

// EncodeCSV writes table in the layout DecodeCSV reads.
func EncodeCSV(w io.Writer, table playoffs.RawTable) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

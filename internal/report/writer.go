package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
)

// WriteDir renders the workbook and every chart into dir and returns the written paths.
// A result without records yields only the workbook.
func WriteDir(dir string, res pipeline.Result, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	var written []string
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, res); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, WorkbookFile)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	written = append(written, path)

	if len(res.Records) == 0 {
		return written, nil
	}
	for _, c := range Charts() {
		buf.Reset()
		if err := RenderChart(&buf, c, res, opts); err != nil {
			return written, err
		}
		path := filepath.Join(dir, c.FileName())
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/report"
)

func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_REPORT_RUN", "1")
	main()
}

func setReportEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SEASONS", "2023,2024")
	t.Setenv("PROVIDER_KIND", "fixture")
	t.Setenv("PROVIDER_RPS", "100")
	t.Setenv("STORE_KIND", "memory")
	t.Setenv("METRICS_ENABLED", "false")
}

func TestRunWritesWorkbookAndCharts(t *testing.T) {
	setReportEnv(t)
	dir := t.TempDir()
	var out bytes.Buffer

	if err := run(context.Background(), []string{"-out", dir, "-top", "5"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{report.WorkbookFile}
	for _, c := range report.Charts() {
		want = append(want, c.FileName())
	}
	for _, name := range want {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", name)
		}
	}
	if !bytes.Contains(out.Bytes(), []byte("report written")) {
		t.Fatalf("expected log lines for written reports, got %s", out.String())
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	setReportEnv(t)
	t.Setenv("STORE_KIND", "tape")

	if err := run(context.Background(), nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected config validation error")
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	setReportEnv(t)

	if err := run(context.Background(), []string{"-bogus"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected flag parse error")
	}
}

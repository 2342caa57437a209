// Command report runs the playoff pipeline once and writes the workbook and charts to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/config"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/pipeline"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/report"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/server"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_REPORT_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(out)
	dir := fs.String("out", cfg.ReportDir, "directory to write the workbook and charts into")
	season := fs.Int("season", 0, "season for the top scorers chart (default: latest)")
	topN := fs.Int("top", 0, "rows per bar chart (default: 10)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nba-playoff-report",
		Version: appVersion,
		Output:  out,
	})

	res, err := runPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}

	written, err := report.WriteDir(*dir, res, report.Options{Season: *season, TopN: *topN})
	if err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	for _, path := range written {
		logging.Info(logger, "report written", "path", path)
	}
	for _, o := range res.Failed() {
		logging.Warn(logger, "season skipped", logging.FieldSeason, o.Season, "error", o.ErrorMessage())
	}
	return nil
}

func runPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger) (pipeline.Result, error) {
	pipe, seasons, err := server.BuildPipeline(ctx, cfg, logger, nil)
	if err != nil {
		return pipeline.Result{}, err
	}
	defer func() {
		if err := seasonstore.Close(seasons); err != nil {
			logging.Warn(logger, "season store close failed", "error", err)
		}
	}()

	res, err := pipe.Run(ctx)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("run pipeline: %w", err)
	}
	return res, nil
}

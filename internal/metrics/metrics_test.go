package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("csvdir", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("csvdir", 15*time.Millisecond, errors.New("boom"))
	rec.RecordProviderRetry("csvdir")

	if got := rec.ProviderCalls("csvdir"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("csvdir"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.ProviderRetries("csvdir"); got != 1 {
		t.Fatalf("expected 1 retry, got %d", got)
	}
	if got := rec.LastCallLatency("csvdir"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	if snap := rec.Snapshot("fixture"); snap != (Snapshot{}) {
		t.Fatalf("expected empty snapshot for unknown provider, got %+v", snap)
	}
}

func TestRecorderTracksSeasonCleaning(t *testing.T) {
	rec := NewRecorder()
	rec.RecordSeasonCleaned(2023, 180, 12, nil)
	rec.RecordSeasonCleaned(2023, 0, 0, errors.New("malformed"))

	snap := rec.Season(2023)
	if snap.Cleanings != 2 || snap.Failures != 1 {
		t.Fatalf("unexpected season counters %+v", snap)
	}
	if snap.Kept != 180 || snap.Dropped != 12 {
		t.Fatalf("failed cleaning should not overwrite last good counts, got %+v", snap)
	}
}

func TestRecorderTracksPipelineRuns(t *testing.T) {
	rec := NewRecorder()
	rec.RecordPipelineRun(time.Second, nil)
	rec.RecordPipelineRun(time.Second, errors.New("store down"))

	runs, failed := rec.PipelineRuns()
	if runs != 2 || failed != 1 {
		t.Fatalf("expected 2 runs with 1 failure, got %d/%d", runs, failed)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("csvdir", time.Millisecond, nil)
	rec.RecordSeasonCleaned(2022, 1, 0, nil)
	rec.RecordPipelineRun(time.Millisecond, nil)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if rec.ProviderCalls("csvdir") != 0 || rec.HTTPRequests("/health") != 0 {
		t.Fatalf("nil recorder should report zero")
	}
}

func TestRecordHTTPRequestCountsRoutes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/health", 503, time.Millisecond)
	rec.RecordHTTPRequest("GET", "/seasons/{season}/top-scorers", 200, time.Millisecond)

	if got := rec.HTTPRequests("/health"); got != 2 {
		t.Fatalf("expected 2 health requests, got %d", got)
	}
	if got := rec.HTTPRequests("/seasons/{season}/top-scorers"); got != 1 {
		t.Fatalf("expected 1 top-scorers request, got %d", got)
	}
}

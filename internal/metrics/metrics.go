package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	retries         int
	lastCallLatency time.Duration
}

type seasonStats struct {
	cleanings int
	failures  int
	kept      int
	dropped   int
}

// Recorder captures lightweight, in-memory metrics about provider calls and pipeline runs,
// mirroring them to OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu        sync.Mutex
	providers map[string]*providerStats
	seasons   map[int]*seasonStats
	routes    map[string]int
	runs      int
	runErrors int
	otel      *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		providers: make(map[string]*providerStats),
		seasons:   make(map[int]*seasonStats),
		routes:    make(map[string]int),
		otel:      otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.providerStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordProviderRetry tracks that a provider call is about to be retried.
func (r *Recorder) RecordProviderRetry(provider string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.providerStatsLocked(provider).retries++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderRetry(provider)
	}
}

// RecordSeasonCleaned tracks one season's cleaning outcome. err is non-nil when the
// season failed before producing records.
func (r *Recorder) RecordSeasonCleaned(season, kept, dropped int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.seasons[season]
	if !ok {
		stats = &seasonStats{}
		r.seasons[season] = stats
	}
	stats.cleanings++
	if err != nil {
		stats.failures++
	} else {
		stats.kept = kept
		stats.dropped = dropped
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSeasonCleaned(season, kept, dropped, err)
	}
}

// RecordPipelineRun tracks a full pipeline run.
func (r *Recorder) RecordPipelineRun(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.runs++
	if err != nil {
		r.runErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPipelineRun(duration, err)
	}
}

// RecordHTTPRequest counts a served request under its route pattern.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.routes[path]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordHTTPRequest(method, path, status, duration)
	}
}

// HTTPRequests returns how many requests were recorded for route.
func (r *Recorder) HTTPRequests(route string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.routes[route]
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// ProviderRetries returns how many retries were scheduled for a provider.
func (r *Recorder) ProviderRetries(provider string) int {
	return r.Snapshot(provider).Retries
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot is a copy of the current stats for a provider.
type Snapshot struct {
	Calls           int
	Errors          int
	Retries         int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.providers[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		Retries:         stats.retries,
		LastCallLatency: stats.lastCallLatency,
	}
}

// SeasonSnapshot is a copy of the current cleaning stats for a season.
type SeasonSnapshot struct {
	Cleanings int
	Failures  int
	Kept      int
	Dropped   int
}

// Season returns the cleaning stats recorded for season.
func (r *Recorder) Season(season int) SeasonSnapshot {
	if r == nil {
		return SeasonSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.seasons[season]
	if !ok {
		return SeasonSnapshot{}
	}
	return SeasonSnapshot{
		Cleanings: stats.cleanings,
		Failures:  stats.failures,
		Kept:      stats.kept,
		Dropped:   stats.dropped,
	}
}

// PipelineRuns returns total and failed pipeline runs.
func (r *Recorder) PipelineRuns() (runs, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs, r.runErrors
}

func (r *Recorder) providerStatsLocked(provider string) *providerStats {
	stats, ok := r.providers[provider]
	if !ok {
		stats = &providerStats{}
		r.providers[provider] = stats
	}
	return stats
}

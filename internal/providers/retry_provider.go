package providers

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a RawTableProvider with retry/backoff behavior and records
// every attempt. Final failures are returned as *playoffs.FetchError.
type retryingProvider struct {
	inner        RawTableProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner RawTableProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) RawTableProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner RawTableProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) RawTableProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = NameOf(inner, "provider")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
		rng: rng,
	}
}

func (r *retryingProvider) Name() string { return r.providerName }

func (r *retryingProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	if r.inner == nil {
		return playoffs.RawTable{}, r.wrap(season, ErrProviderUnavailable)
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		attempts = attempt
		start := time.Now()
		table, err := r.inner.FetchTable(ctx, season)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return table, nil
		}
		lastErr = err

		if attempt == r.maxAttempts || !retryable(err) {
			break
		}

		delay := r.computeDelay(err, attempt)
		r.metrics.RecordProviderRetry(r.providerName)
		r.log(ctx, slog.LevelWarn, "provider fetch retry",
			slog.Int(logging.FieldSeason, season),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)

		select {
		case <-ctx.Done():
			return playoffs.RawTable{}, r.wrap(season, ctx.Err())
		case <-time.After(delay):
		}
	}

	r.log(ctx, slog.LevelWarn, "provider fetch failed",
		slog.Int(logging.FieldSeason, season),
		slog.Int("attempts", attempts),
		slog.Any("err", lastErr),
	)
	return playoffs.RawTable{}, r.wrap(season, lastErr)
}

// computeDelay honors an upstream Retry-After and otherwise jitters the backoff into [base/2, base].
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	half := base / 2
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(half) + 1))
	r.rngMu.Unlock()
	return half + jitter
}

func (r *retryingProvider) wrap(season int, err error) error {
	if _, ok := playoffs.AsFetchError(err); ok {
		return err
	}
	return &playoffs.FetchError{Season: season, Provider: r.providerName, Err: err}
}

func (r *retryingProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), level, r.providerName, msg, args...)
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrSeasonNotFound), errors.Is(err, ErrProviderUnavailable):
		return false
	default:
		return true
	}
}

package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/logging"
)

const (
	defaultRPS   = 1.0
	defaultBurst = 1
)

// rateLimitedProvider wraps a RawTableProvider with a token bucket shared by every caller,
// so parallel season fetches stay within the source's quota.
type rateLimitedProvider struct {
	next    RawTableProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a RawTableProvider that allows rps fetches per second with the given burst.
// Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next RawTableProvider, rps float64, burst int, logger *slog.Logger) RawTableProvider {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) Name() string {
	return NameOf(p.next, "rate-limited")
}

func (p *rateLimitedProvider) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return playoffs.RawTable{}, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.Name(), "rate-limited fetch canceled",
			slog.Int(logging.FieldSeason, season))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return playoffs.RawTable{}, ctxErr
		}
		return playoffs.RawTable{}, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.Name(), "rate-limited provider fetch",
		slog.Int(logging.FieldSeason, season))
	return p.next.FetchTable(ctx, season)
}

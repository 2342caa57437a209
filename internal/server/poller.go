package server

import (
	"context"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/poller"
)

// Poller is the slice of the refresh poller the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

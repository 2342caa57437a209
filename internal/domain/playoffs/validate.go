package playoffs

import (
	"fmt"
	"math"
)

// Validate checks the invariants every cleaned record carries.
func (r PlayerSeasonRecord) Validate() error {
	switch {
	case r.Player == "":
		return fmt.Errorf("%w: season %d: empty player", ErrInvariant, r.Season)
	case !finite(r.MinutesPerGame) || r.MinutesPerGame <= 0:
		return fmt.Errorf("%w: season %d player %q: minutes per game %v", ErrInvariant, r.Season, r.Player, r.MinutesPerGame)
	case r.Games < 0:
		return fmt.Errorf("%w: season %d player %q: games %d", ErrInvariant, r.Season, r.Player, r.Games)
	case !finite(r.PointsPerGame) || r.PointsPerGame < 0:
		return fmt.Errorf("%w: season %d player %q: points per game %v", ErrInvariant, r.Season, r.Player, r.PointsPerGame)
	case !finite(r.TotalPoints) || !finite(r.PointsPer48):
		return fmt.Errorf("%w: season %d player %q: non-finite derived metric", ErrInvariant, r.Season, r.Player)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package storetest holds behavior checks shared by every seasonstore backend.
package storetest

import (
	"context"
	"testing"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/seasonstore"
)

// Records returns a record set with awkward float values and an empty team.
func Records(season int) []playoffs.PlayerSeasonRecord {
	return []playoffs.PlayerSeasonRecord{
		{Season: season, Player: "Zed Alpha", Team: "BOS", Games: 7, MinutesPerGame: 36.7, PointsPerGame: 23.1, TotalPoints: 23.1 * 7, PointsPer48: 23.1 * 48 / 36.7},
		{Season: season, Player: "Ana Beta", Games: 3, MinutesPerGame: 1.0 / 3.0, PointsPerGame: 0, TotalPoints: 0, PointsPer48: 0},
		{Season: season, Player: "Luka Dončić", Team: "DAL", Games: 22, MinutesPerGame: 40.1, PointsPerGame: 28.9, TotalPoints: 28.9 * 22, PointsPer48: 28.9 * 48 / 40.1},
	}
}

// Run exercises the Store contract against stores built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) seasonstore.Store) {
	t.Helper()

	t.Run("round_trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		want := Records(2023)
		if err := s.Write(ctx, 2023, want); err != nil {
			t.Fatalf("write: %v", err)
		}
		got, err := s.ReadAll(ctx, []int{2023})
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		assertEqual(t, want, got[2023])
	})

	t.Run("overwrite_replaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if err := s.Write(ctx, 2022, Records(2022)); err != nil {
			t.Fatalf("write: %v", err)
		}
		want := Records(2022)[:1]
		if err := s.Write(ctx, 2022, want); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		got, err := s.ReadAll(ctx, []int{2022})
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		assertEqual(t, want, got[2022])
	})

	t.Run("unwritten_seasons_absent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if err := s.Write(ctx, 2020, Records(2020)); err != nil {
			t.Fatalf("write: %v", err)
		}
		got, err := s.ReadAll(ctx, []int{2019, 2020})
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if _, ok := got[2019]; ok {
			t.Fatalf("expected unwritten season to be absent, got %+v", got[2019])
		}
		if len(got[2020]) != 3 {
			t.Fatalf("expected written season, got %d records", len(got[2020]))
		}
	})

	t.Run("empty_season_round_trip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		if err := s.Write(ctx, 2021, []playoffs.PlayerSeasonRecord{}); err != nil {
			t.Fatalf("write: %v", err)
		}
		got, err := s.ReadAll(ctx, []int{2021})
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		recs, ok := got[2021]
		if !ok || len(recs) != 0 {
			t.Fatalf("expected empty season present, got %+v ok=%v", recs, ok)
		}
	})

	t.Run("combined", func(t *testing.T) {
		s := newStore(t)
		cw, ok := s.(seasonstore.CombinedWriter)
		if !ok {
			t.Skip("store does not keep a combined collection")
		}
		all := append(Records(2023), Records(2024)...)
		if err := cw.WriteCombined(context.Background(), all); err != nil {
			t.Fatalf("write combined: %v", err)
		}
	})
}

func assertEqual(t *testing.T, want, got []playoffs.PlayerSeasonRecord) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("record %d differs:\nwant %+v\ngot  %+v", i, want[i], got[i])
		}
	}
}

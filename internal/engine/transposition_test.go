package engine

import (
	"testing"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/tables"
)

func TestAdjustScoreMateDistanceRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		score int
		ply   int
	}{
		{"mate-for-us shallow", MateScore - 1, 1},
		{"mate-for-us deep", MateScore - 5, 7},
		{"mate-against-us", -MateScore + 3, 2},
		{"ordinary score", 120, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			stored := AdjustScoreToTT(c.score, c.ply)
			got := AdjustScoreFromTT(stored, c.ply)
			if got != c.score {
				t.Errorf("round trip: got %d, want %d (stored=%d)", got, c.score, stored)
			}
		})
	}
}

// TestTTMateDistanceAcrossPlies is the "TT mate-distance" testable
// property: a mate score stored while probing at one ply and later
// retrieved while probing at a shallower ply must report the distance
// relative to the new ply, not the one it was stored at.
func TestTTMateDistanceAcrossPlies(t *testing.T) {
	tt := NewTranspositionTable(1)
	var hash tables.Key = 0xABCD1234

	storePly := 6
	mateDistance := 2 // mate two plies below the node that stored it
	tt.Store(hash, 4, MateScore-storePly-mateDistance, TTExact, board.Move{From: 4, To: 20}, storePly)

	probePly := 2
	probe := tt.Probe(hash, 4, -Infinity, Infinity, probePly)
	if !probe.HasScore {
		t.Fatalf("expected a usable score on exact-depth probe")
	}
	want := MateScore - probePly - mateDistance
	if probe.Score != want {
		t.Errorf("re-probed mate score = %d, want %d (mate distance must be re-expressed relative to the probing ply)", probe.Score, want)
	}
}

func TestTranspositionAlwaysReplace(t *testing.T) {
	tt := NewTranspositionTableWithEntries(1) // single slot forces collisions
	m1 := board.Move{From: 4, To: 20}
	m2 := board.Move{From: 6, To: 21}

	tt.Store(1, 4, 50, TTExact, m1, 0)
	tt.Store(2, 3, -50, TTBeta, m2, 0)

	probe := tt.Probe(2, 3, -Infinity, Infinity, 0)
	if !probe.Found || probe.Move != m2 {
		t.Fatalf("expected the most recent store to win the single slot, got %+v", probe)
	}
}

package mcts

import (
	"testing"

	"github.com/hailam/chessplay/internal/board"
)

func mustPosition(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos := &board.Position{}
	if err := pos.SetFEN(fen); err != nil {
		t.Fatalf("SetFEN(%q): %v", fen, err)
	}
	return pos
}

// TestDeterminismSameSeedSameMove is the MCTS determinism scenario:
// two trees built with the same seed and run for the same simulation
// count from the same position must choose the same move.
func TestDeterminismSameSeedSameMove(t *testing.T) {
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"

	pos1 := mustPosition(t, fen)
	tree1 := NewTree(5000, 1.4, 42)
	move1 := tree1.Search(pos1, 300)

	pos2 := mustPosition(t, fen)
	tree2 := NewTree(5000, 1.4, 42)
	move2 := tree2.Search(pos2, 300)

	if move1 != move2 {
		t.Errorf("same seed produced different moves: %s vs %s", move1, move2)
	}
}

// TestSolePositionMoveShortCircuits checks that a position with only
// one legal move returns it immediately, without needing a populated
// tree (spec's explicit root shortcut). Black has only a king on b8:
// a8 and c8 are covered by the b7 pawn and b7/c7 are covered by the
// white king on c6, leaving Ka7 as the only legal reply.
func TestSolePositionMoveShortCircuits(t *testing.T) {
	pos := mustPosition(t, "1k6/1P6/2K5/8/8/8/8/8 b - - 0 1")

	tree := NewTree(100, 1.4, 7)
	move := tree.Search(pos, 1000)

	want := "b8a7"
	if move.String() != want {
		t.Errorf("sole legal move search = %s, want %s", move, want)
	}
}

// TestSearchLeavesPositionUnchanged checks the simulation loop's
// make/unmake balance: after Search returns, pos must be bitwise
// equivalent (by hash) to before.
func TestSearchLeavesPositionUnchanged(t *testing.T) {
	pos := board.NewPosition()
	before := pos.Hash

	tree := NewTree(2000, 1.4, 99)
	tree.Search(pos, 200)

	if pos.Hash != before {
		t.Errorf("hash changed after Search: before=%d after=%d", before, pos.Hash)
	}
}

// TestSearchReturnsLegalMove checks the returned move is actually
// playable in the given position.
func TestSearchReturnsLegalMove(t *testing.T) {
	pos := board.NewPosition()
	tree := NewTree(2000, 1.4, 13)
	move := tree.Search(pos, 200)

	if !board.MakeMove(pos, move) {
		t.Fatalf("Search returned an illegal move: %s", move)
	}
	board.UnmakeMove(pos, move)
}

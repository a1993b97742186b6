package engine

import (
	"testing"
	"time"

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

// TestScholarsMate is scenario 6: at depth 3 the engine must find
// Qxf7# and report a mate score.
func TestScholarsMate(t *testing.T) {
	pos := mustPosition(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	eng := NewEngine(16)

	result := eng.SearchPosition(pos, 3, UCILimits{}, pos.Side, nil)

	want := "h5f7"
	if result.Move.String() != want {
		t.Errorf("best move = %s, want %s", result.Move, want)
	}
	if !isMateScore(result.Score) || result.Score <= 0 {
		t.Errorf("score = %d, want a positive mate score", result.Score)
	}
}

// TestBackRankMate is scenario 7: at depth 3 the engine must find the
// back-rank mate a1-a8.
func TestBackRankMate(t *testing.T) {
	pos := mustPosition(t, "6k1/5ppp/8/8/8/8/8/R3K3 w Q - 0 1")
	eng := NewEngine(16)

	result := eng.SearchPosition(pos, 3, UCILimits{}, pos.Side, nil)

	want := "a1a8"
	if result.Move.String() != want {
		t.Errorf("best move = %s, want %s", result.Move, want)
	}
}

// TestKRRvsKMate is scenario 8: KRR-vs-K mates at depth 4, with the
// mate score's sign following whose turn it is to move into the mate.
func TestKRRvsKMate(t *testing.T) {
	pos := mustPosition(t, "k7/8/1K6/8/8/8/8/R6R w - - 0 1")
	eng := NewEngine(16)
	result := eng.SearchPosition(pos, 4, UCILimits{}, pos.Side, nil)
	if !isMateScore(result.Score) || result.Score <= 0 {
		t.Fatalf("White to move: score = %d, want a positive mate score", result.Score)
	}

	posBlack := mustPosition(t, "k7/8/1K6/8/8/8/8/R6R b - - 0 1")
	engBlack := NewEngine(16)
	resultBlack := engBlack.SearchPosition(posBlack, 4, UCILimits{}, posBlack.Side, nil)
	if !isMateScore(resultBlack.Score) || resultBlack.Score >= 0 {
		t.Fatalf("Black to move: score = %d, want a negative mate score", resultBlack.Score)
	}
}

// TestEvalStartingPositionIsNearZero is scenario 9.
func TestEvalStartingPositionIsNearZero(t *testing.T) {
	pos := board.NewPosition()
	score := Eval(pos)
	if score < 0 {
		score = -score
	}
	if score >= 50 {
		t.Errorf("|eval(startpos)| = %d, want < 50", score)
	}
}

// TestEvalMaterialAdvantage is scenario 10.
func TestEvalMaterialAdvantage(t *testing.T) {
	up := mustPosition(t, "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	if score := Eval(up); score <= 800 {
		t.Errorf("eval(queen up) = %d, want > 800", score)
	}

	down := mustPosition(t, "4kq2/8/8/8/8/8/8/4K3 w - - 0 1")
	if score := Eval(down); score >= -800 {
		t.Errorf("eval(queen down) = %d, want < -800", score)
	}
}

// TestEvalMatchesFromScratch checks the incremental material/PST
// fields never diverge from a from-scratch recomputation (invariant
// I2), across a short sequence of played moves.
func TestEvalMatchesFromScratch(t *testing.T) {
	pos := board.NewPosition()
	for played := 0; played < 8; played++ {
		var list board.MoveList
		board.GenerateMoves(pos, &list)
		var m board.Move
		made := false
		for i := 0; i < list.Count && !made; i++ {
			m = list.Moves[i]
			made = board.MakeMove(pos, m)
		}
		if !made {
			break
		}
		if got, want := Eval(pos), EvalFromScratch(pos); got != want {
			t.Fatalf("after %s: Eval = %d, EvalFromScratch = %d", m, got, want)
		}
	}
}

// TestMateScoreStableAcrossSearchDepths checks that the same mate in
// one (Qxf7#) found by a depth-3 and a depth-4 search reports the same
// root-relative mate score, i.e. searching deeper does not change the
// mate distance the score encodes.
func TestMateScoreStableAcrossSearchDepths(t *testing.T) {
	pos := mustPosition(t, "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")

	shallow := NewEngine(16)
	resShallow := shallow.SearchPosition(pos, 3, UCILimits{}, pos.Side, nil)
	if !isMateScore(resShallow.Score) {
		t.Fatalf("depth-3 search did not find a mate score: %d", resShallow.Score)
	}

	deeper := NewEngine(16)
	resDeeper := deeper.SearchPosition(pos, 4, UCILimits{}, pos.Side, nil)
	if !isMateScore(resDeeper.Score) {
		t.Fatalf("depth-4 search did not find a mate score: %d", resDeeper.Score)
	}

	// Same mate-in-1 found from two search depths must normalize to the
	// same distance-relative-to-root score.
	if resShallow.Score != resDeeper.Score {
		t.Errorf("mate score changed with search depth: depth3=%d depth4=%d", resShallow.Score, resDeeper.Score)
	}
}

// TestSearchRespectsMoveTime checks the search returns within a small
// multiple of the requested move time rather than running to
// board.MaxPly.
func TestSearchRespectsMoveTime(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	start := time.Now()
	eng.SearchPosition(pos, 0, UCILimits{MoveTime: 50 * time.Millisecond}, pos.Side, nil)
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Errorf("search with 50ms move time took %s", elapsed)
	}
}

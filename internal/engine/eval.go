package engine

import "github.com/hailam/chessplay/internal/board"

// Eval returns a centipawn-like score from the side-to-move's
// perspective. Material and piece-square terms are maintained
// incrementally on the position (board.Position.Material,
// board.Position.PSTScore, including the middlegame/endgame king-PST
// swap); this function only combines and reorients them. No
// pawn-structure, mobility, or king-safety term is modelled, per this
// engine's evaluation scope.
func Eval(pos *board.Position) int {
	us, them := pos.Side, 1-pos.Side
	return (pos.Material[us] + pos.PSTScore[us]) - (pos.Material[them] + pos.PSTScore[them])
}

// EvalFromScratch recomputes material/PST independently of the
// incrementally maintained fields, for tests that assert the two never
// diverge (invariant I2).
func EvalFromScratch(pos *board.Position) int {
	material, pst := pos.ComputeMaterialAndPST()
	us, them := pos.Side, 1-pos.Side
	return (material[us] + pst[us]) - (material[them] + pst[them])
}

package engine

import (
	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/tables"
)

// Move score bands. Score is a single byte (board.Move.Score), used
// only to drive a selection-sort-as-you-advance ordering pass; it is
// scratch space and never persists past the ply that produced it.
const (
	ScoreTTMove        = 255
	ScoreCaptureBase   = 200 // captures occupy 201..206
	ScorePromotionBase = 190 // non-capturing promotions occupy 190..193
	ScoreKiller0       = 150
	ScoreKiller1       = 140
	ScoreQuiet         = 0
)

// victimRank ranks a victim's value for MVV-LVA purposes, 1 (pawn) to
// 5 (queen); a king is never a legal capture target.
func victimRank(pt int) int {
	switch pt {
	case tables.Pawn:
		return 1
	case tables.Knight, tables.Bishop:
		return 2
	case tables.Rook:
		return 3
	case tables.Queen:
		return 5
	default:
		return 0
	}
}

// mvvLva returns a value in [1,6] for the capture score band: the
// victim's rank, plus one more if the attacker is cheaper than the
// victim (Least Valuable Attacker breaks ties within a victim rank).
func mvvLva(victim, attacker int) int {
	v := victimRank(victim)
	if tables.MaterialValue[attacker] < tables.MaterialValue[victim] {
		v++
	}
	if v > 6 {
		v = 6
	}
	if v < 1 {
		v = 1
	}
	return v
}

// promoRank orders non-capturing promotions by the value of the
// promoted piece, within 190..193.
func promoRank(pt int) int {
	switch pt {
	case tables.Knight:
		return 0
	case tables.Bishop:
		return 1
	case tables.Rook:
		return 2
	default: // Queen
		return 3
	}
}

// Orderer holds the move-ordering state that persists across a single
// top-level search: two killer slots per ply, cleared at the start of
// every new search per spec.
type Orderer struct {
	killers [board.MaxPly][2]board.Move
}

// NewOrderer returns a cleared Orderer.
func NewOrderer() *Orderer {
	return &Orderer{}
}

// Clear resets killers for a new top-level search.
func (o *Orderer) Clear() {
	for i := range o.killers {
		o.killers[i][0] = board.NoMove
		o.killers[i][1] = board.NoMove
	}
}

// Score assigns a move's ordering score in place. ttMove, if not
// board.NoMove, is the PV/hash move and always sorts first.
func (o *Orderer) Score(pos *board.Position, m *board.Move, ply int, ttMove board.Move) {
	switch {
	case *m == ttMove:
		m.Score = ScoreTTMove
	case m.IsCapture():
		victimSq := m.To
		if m.IsEnPassant() {
			m.Score = ScoreCaptureBase + uint8(mvvLva(tables.Pawn, pos.Board[m.From].Type()))
			return
		}
		victim := pos.Board[victimSq]
		m.Score = ScoreCaptureBase + uint8(mvvLva(victim.Type(), pos.Board[m.From].Type()))
	case m.IsPromotion():
		m.Score = ScorePromotionBase + uint8(promoRank(m.PromotionPieceType()))
	case *m == o.killers[ply][0]:
		m.Score = ScoreKiller0
	case *m == o.killers[ply][1]:
		m.Score = ScoreKiller1
	default:
		m.Score = ScoreQuiet
	}
}

// ScoreAll scores every move in list[start:start+count] against ply
// and ttMove.
func (o *Orderer) ScoreAll(pos *board.Position, moves []board.Move, ply int, ttMove board.Move) {
	for i := range moves {
		o.Score(pos, &moves[i], ply, ttMove)
	}
}

// PickMove selects the highest-scored move at or after index within
// moves[:count] and swaps it into index, the selection-sort-as-you-
// advance pattern the search loop uses so only as much sorting as the
// search actually consumes is ever done.
func PickMove(moves []board.Move, count int, index int) {
	best := index
	for j := index + 1; j < count; j++ {
		if moves[j].Score > moves[best].Score {
			best = j
		}
	}
	if best != index {
		moves[index], moves[best] = moves[best], moves[index]
	}
}

// UpdateKillers records a quiet move that caused a beta cutoff at
// ply. Slot 0 shifts to slot 1 and m fills slot 0, unless m is already
// slot 0.
func (o *Orderer) UpdateKillers(m board.Move, ply int) {
	if ply >= board.MaxPly {
		return
	}
	m.Score = 0 // compare and store by from/to/flags only, as Score does
	if o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

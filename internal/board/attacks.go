package board

import "github.com/hailam/chessplay/internal/tables"

// IsSquareAttacked reports whether sq is attacked by any piece of
// bySide, testing knight, pawn (color-aware diagonal approach), king,
// and slider rays in turn. Used for legality after a trial make_move
// and for castling's transit/destination checks.
func IsSquareAttacked(p *Position, sq Square, bySide int) bool {
	isq := int(sq)

	for _, off := range tables.KnightOffsets {
		t := isq + off
		if Square(t).OffBoard() {
			continue
		}
		pc := p.Board[t]
		if pc.Type() == tables.Knight && pc.Color() == bySide {
			return true
		}
	}

	// Pawn attacks: a pawn of bySide attacks sq along its own capture
	// offsets, so we look from sq backwards along bySide's capture
	// direction (equivalently, forward along the opposite side).
	for _, off := range tables.PawnCaptureOffsets[bySide] {
		t := isq - off
		if Square(t).OffBoard() {
			continue
		}
		pc := p.Board[t]
		if pc.Type() == tables.Pawn && pc.Color() == bySide {
			return true
		}
	}

	for _, off := range tables.KingOffsets {
		t := isq + off
		if Square(t).OffBoard() {
			continue
		}
		pc := p.Board[t]
		if pc.Type() == tables.King && pc.Color() == bySide {
			return true
		}
	}

	for _, off := range tables.BishopOffsets {
		t := isq + off
		for !Square(t).OffBoard() {
			pc := p.Board[t]
			if !pc.IsEmpty() {
				if pc.Color() == bySide && (pc.Type() == tables.Bishop || pc.Type() == tables.Queen) {
					return true
				}
				break
			}
			t += off
		}
	}

	for _, off := range tables.RookOffsets {
		t := isq + off
		for !Square(t).OffBoard() {
			pc := p.Board[t]
			if !pc.IsEmpty() {
				if pc.Color() == bySide && (pc.Type() == tables.Rook || pc.Type() == tables.Queen) {
					return true
				}
				break
			}
			t += off
		}
	}

	return false
}

// InCheck reports whether side's king is currently attacked.
func InCheck(p *Position, side int) bool {
	return IsSquareAttacked(p, p.KingSq[side], 1-side)
}

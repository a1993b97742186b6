package board

import "github.com/hailam/chessplay/internal/tables"

// MakeMove applies m unconditionally, then checks whether the
// side-that-moved's king is attacked; if so it unmakes and reports
// illegal. This is the sole authority on legality — the generator
// only produces pseudo-legal moves.
func MakeMove(pos *Position, m Move) bool {
	side := pos.Side
	opp := 1 - side
	oldEndgame := pos.IsEndgame()

	undo := &pos.UndoStack[pos.UndoPly]
	undo.CastleRights = pos.CastleRights
	undo.EPSquare = pos.EPSquare
	undo.FiftyClock = pos.FiftyClock
	undo.Hash = pos.Hash
	undo.Material = pos.Material
	undo.PSTScore = pos.PSTScore
	undo.Captured = NoPiece
	undo.CapturedSq = NoSquare

	pos.HashHistory[pos.HashHistCount] = pos.Hash
	pos.HashHistCount++

	moving := pos.Board[m.From]
	movingType := moving.Type()

	if movingType == tables.Pawn || m.IsCapture() {
		pos.FiftyClock = 0
	} else {
		pos.FiftyClock++
	}

	pos.Hash ^= tables.ZobristPiece[side][movingType][m.From]
	pos.PSTScore[side] -= tables.PieceSquareValue(movingType, side, int(m.From), oldEndgame)
	pos.Board[m.From] = NoPiece

	switch {
	case m.IsEnPassant():
		capSq := Square(int(m.To) - tables.PawnPushOffset[side])
		capPiece := pos.Board[capSq]
		undo.Captured = capPiece
		undo.CapturedSq = capSq
		pos.Hash ^= tables.ZobristPiece[opp][tables.Pawn][capSq]
		pos.Material[opp] -= tables.MaterialValue[tables.Pawn]
		pos.PSTScore[opp] -= tables.PieceSquareValue(tables.Pawn, opp, int(capSq), oldEndgame)
		pos.Board[capSq] = NoPiece
	case m.IsCapture():
		capPiece := pos.Board[m.To]
		undo.Captured = capPiece
		undo.CapturedSq = m.To
		pos.Hash ^= tables.ZobristPiece[opp][capPiece.Type()][m.To]
		pos.Material[opp] -= tables.MaterialValue[capPiece.Type()]
		pos.PSTScore[opp] -= tables.PieceSquareValue(capPiece.Type(), opp, int(m.To), oldEndgame)
	}

	if m.IsPromotion() {
		promoType := m.PromotionPieceType()
		pos.Board[m.To] = NewPiece(promoType, side)
		pos.Hash ^= tables.ZobristPiece[side][promoType][m.To]
		pos.Material[side] += tables.MaterialValue[promoType] - tables.MaterialValue[tables.Pawn]
		pos.PSTScore[side] += tables.PieceSquareValue(promoType, side, int(m.To), oldEndgame)
	} else {
		pos.Board[m.To] = moving
		pos.Hash ^= tables.ZobristPiece[side][movingType][m.To]
		pos.PSTScore[side] += tables.PieceSquareValue(movingType, side, int(m.To), oldEndgame)
	}

	if movingType == tables.King {
		pos.KingSq[side] = m.To
	}

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		rook := pos.Board[rookFrom]
		pos.Hash ^= tables.ZobristPiece[side][tables.Rook][rookFrom]
		pos.PSTScore[side] -= tables.PieceSquareValue(tables.Rook, side, int(rookFrom), oldEndgame)
		pos.Board[rookFrom] = NoPiece
		pos.Board[rookTo] = rook
		pos.Hash ^= tables.ZobristPiece[side][tables.Rook][rookTo]
		pos.PSTScore[side] += tables.PieceSquareValue(tables.Rook, side, int(rookTo), oldEndgame)
	}

	// A capture or promotion can move total material across the
	// endgame threshold mid-move; when that happens both kings'
	// already-baked PST terms were computed against the stale table
	// and must be rebased so pst_score keeps matching a from-scratch
	// recompute (invariant I2).
	newEndgame := pos.IsEndgame()
	if newEndgame != oldEndgame {
		for c := 0; c < 2; c++ {
			pos.PSTScore[c] += tables.PieceSquareValue(tables.King, c, int(pos.KingSq[c]), newEndgame) -
				tables.PieceSquareValue(tables.King, c, int(pos.KingSq[c]), oldEndgame)
		}
	}

	pos.Hash ^= tables.ZobristCastle[pos.CastleRights]
	pos.CastleRights &= tables.CastleMask[m.From] & tables.CastleMask[m.To]
	pos.Hash ^= tables.ZobristCastle[pos.CastleRights]

	if pos.EPSquare != NoSquare {
		pos.Hash ^= tables.ZobristEP[pos.EPSquare.File()]
	}
	if m.IsDoublePush() {
		pos.EPSquare = Square(int(m.From) + tables.PawnDoublePushSkipOffset[side])
		pos.Hash ^= tables.ZobristEP[pos.EPSquare.File()]
	} else {
		pos.EPSquare = NoSquare
	}

	pos.Side = opp
	pos.Hash ^= tables.ZobristSide
	pos.Ply++
	pos.UndoPly++

	if InCheck(pos, side) {
		UnmakeMove(pos, m)
		return false
	}
	return true
}

// castleRookSquares returns the rook's from/to squares for a castling
// move, derived from the king's from/to squares (king-side: rook_from
// = from+3, rook_to = from+1; queen-side: rook_from = from-4, rook_to
// = from-1).
func castleRookSquares(m Move) (from, to Square) {
	if m.To.File() == 6 {
		return Square(int(m.From) + 3), Square(int(m.From) + 1)
	}
	return Square(int(m.From) - 4), Square(int(m.From) - 1)
}

// UnmakeMove pops the top Undo record and restores exactly the
// pre-move state by reading it back verbatim; hash, material, and PST
// are never recomputed here, only the board is restored from piece
// identity.
func UnmakeMove(pos *Position, m Move) {
	pos.UndoPly--
	undo := pos.UndoStack[pos.UndoPly]
	pos.HashHistCount--
	pos.Ply--

	pos.Side = 1 - pos.Side
	side := pos.Side

	if m.IsCastle() {
		rookFrom, rookTo := castleRookSquares(m)
		rook := pos.Board[rookTo]
		pos.Board[rookTo] = NoPiece
		pos.Board[rookFrom] = rook
	}

	if m.IsPromotion() {
		pos.Board[m.To] = NoPiece
		pos.Board[m.From] = NewPiece(tables.Pawn, side)
	} else {
		piece := pos.Board[m.To]
		pos.Board[m.To] = NoPiece
		pos.Board[m.From] = piece
		if piece.Type() == tables.King {
			pos.KingSq[side] = m.From
		}
	}

	if m.IsEnPassant() {
		pos.Board[undo.CapturedSq] = undo.Captured
	} else if m.IsCapture() {
		pos.Board[m.To] = undo.Captured
	}

	pos.CastleRights = undo.CastleRights
	pos.EPSquare = undo.EPSquare
	pos.FiftyClock = undo.FiftyClock
	pos.Hash = undo.Hash
	pos.Material = undo.Material
	pos.PSTScore = undo.PSTScore
}

// MakeNull passes the turn without moving a piece: clears the
// en-passant square, toggles side, and pushes an Undo like any other
// make. Used by null-move pruning.
func MakeNull(pos *Position) {
	undo := &pos.UndoStack[pos.UndoPly]
	undo.CastleRights = pos.CastleRights
	undo.EPSquare = pos.EPSquare
	undo.FiftyClock = pos.FiftyClock
	undo.Hash = pos.Hash
	undo.Material = pos.Material
	undo.PSTScore = pos.PSTScore
	undo.Captured = NoPiece
	undo.CapturedSq = NoSquare

	pos.HashHistory[pos.HashHistCount] = pos.Hash
	pos.HashHistCount++

	if pos.EPSquare != NoSquare {
		pos.Hash ^= tables.ZobristEP[pos.EPSquare.File()]
		pos.EPSquare = NoSquare
	}
	pos.Side = 1 - pos.Side
	pos.Hash ^= tables.ZobristSide
	pos.Ply++
	pos.UndoPly++
}

// UnmakeNull reverses MakeNull.
func UnmakeNull(pos *Position) {
	pos.UndoPly--
	undo := pos.UndoStack[pos.UndoPly]
	pos.HashHistCount--
	pos.Ply--

	pos.Side = 1 - pos.Side
	pos.EPSquare = undo.EPSquare
	pos.Hash = undo.Hash
	pos.FiftyClock = undo.FiftyClock
	pos.CastleRights = undo.CastleRights
	pos.Material = undo.Material
	pos.PSTScore = undo.PSTScore
}

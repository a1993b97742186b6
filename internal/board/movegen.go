package board

import "github.com/hailam/chessplay/internal/tables"

// GenerateMoves writes all pseudo-legal moves for the side to move
// into list. Legality (own king not left in check) is not checked
// here; make_move is the sole authority on legality.
func GenerateMoves(pos *Position, list *MoveList) {
	list.Count = generate(pos, list.Moves[:], false)
}

// GenerateCaptures writes exactly the capture + promotion subset,
// used by quiescence search.
func GenerateCaptures(pos *Position, list *MoveList) {
	list.Count = generate(pos, list.Moves[:], true)
}

// GenerateAt generates pseudo-legal moves directly into the
// position's shared move buffer at the given search ply, the
// allocation-free path used by the search. It returns the start
// offset and count, and records MoveBufIdx[ply+1] so the next ply's
// generation starts past this one's output.
func GenerateAt(pos *Position, ply int, capturesOnly bool) (start, count int) {
	start = pos.MoveBufIdx[ply]
	n := generate(pos, pos.MoveBuf[start:], capturesOnly)
	if ply+1 <= MaxPly {
		pos.MoveBufIdx[ply+1] = start + n
	}
	return start, n
}

func addMove(out []Move, n *int, m Move) {
	if *n < len(out) {
		out[*n] = m
		*n++
	}
}

func generate(pos *Position, out []Move, capturesOnly bool) int {
	n := 0
	side := pos.Side

	for sq := 0; sq < 128; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		pc := pos.Board[sq]
		if pc.IsEmpty() || pc.Color() != side {
			continue
		}
		from := Square(sq)
		switch pc.Type() {
		case tables.Pawn:
			generatePawnMoves(pos, from, side, capturesOnly, out, &n)
		case tables.Knight:
			generateLeaperMoves(pos, from, side, tables.KnightOffsets[:], capturesOnly, out, &n)
		case tables.Bishop:
			generateSliderMoves(pos, from, side, tables.BishopOffsets[:], capturesOnly, out, &n)
		case tables.Rook:
			generateSliderMoves(pos, from, side, tables.RookOffsets[:], capturesOnly, out, &n)
		case tables.Queen:
			generateSliderMoves(pos, from, side, tables.BishopOffsets[:], capturesOnly, out, &n)
			generateSliderMoves(pos, from, side, tables.RookOffsets[:], capturesOnly, out, &n)
		case tables.King:
			generateLeaperMoves(pos, from, side, tables.KingOffsets[:], capturesOnly, out, &n)
			if !capturesOnly {
				generateCastleMoves(pos, from, side, out, &n)
			}
		}
	}
	return n
}

var promoCodes = [4]uint8{PromoKnight, PromoBishop, PromoRook, PromoQueen}

func addPromotions(out []Move, n *int, from, to Square, baseFlags uint8) {
	for _, code := range promoCodes {
		addMove(out, n, Move{From: from, To: to, Flags: withPromoCode(baseFlags|FlagPromotion, code)})
	}
}

func generatePawnMoves(pos *Position, from Square, side int, capturesOnly bool, out []Move, n *int) {
	isq := int(from)
	push := tables.PawnPushOffset[side]
	promoRank := tables.PawnPromoRank[side]
	startRank := tables.PawnStartRank[side]

	to := Square(isq + push)
	if !to.OffBoard() && pos.Board[to].IsEmpty() {
		if to.Rank() == promoRank {
			addPromotions(out, n, from, to, 0)
		} else if !capturesOnly {
			addMove(out, n, Move{From: from, To: to})
			if from.Rank() == startRank {
				to2 := Square(isq + 2*push)
				if pos.Board[to2].IsEmpty() {
					addMove(out, n, Move{From: from, To: to2, Flags: FlagDoublePush})
				}
			}
		}
	}

	for _, off := range tables.PawnCaptureOffsets[side] {
		t := Square(isq + off)
		if t.OffBoard() {
			continue
		}
		if t == pos.EPSquare {
			addMove(out, n, Move{From: from, To: t, Flags: FlagCapture | FlagEnPassant})
			continue
		}
		target := pos.Board[t]
		if target.IsEmpty() || target.Color() == side {
			continue
		}
		if t.Rank() == promoRank {
			addPromotions(out, n, from, t, FlagCapture)
		} else {
			addMove(out, n, Move{From: from, To: t, Flags: FlagCapture})
		}
	}
}

func generateLeaperMoves(pos *Position, from Square, side int, offsets []int, capturesOnly bool, out []Move, n *int) {
	isq := int(from)
	for _, off := range offsets {
		t := Square(isq + off)
		if t.OffBoard() {
			continue
		}
		target := pos.Board[t]
		if target.IsEmpty() {
			if !capturesOnly {
				addMove(out, n, Move{From: from, To: t})
			}
		} else if target.Color() != side {
			addMove(out, n, Move{From: from, To: t, Flags: FlagCapture})
		}
	}
}

func generateSliderMoves(pos *Position, from Square, side int, offsets []int, capturesOnly bool, out []Move, n *int) {
	isq := int(from)
	for _, off := range offsets {
		t := Square(isq + off)
		for !t.OffBoard() {
			target := pos.Board[t]
			if target.IsEmpty() {
				if !capturesOnly {
					addMove(out, n, Move{From: from, To: t})
				}
			} else {
				if target.Color() != side {
					addMove(out, n, Move{From: from, To: t, Flags: FlagCapture})
				}
				break
			}
			t = Square(int(t) + off)
		}
	}
}

const (
	sqA1 = 0x00
	sqE1 = 0x04
	sqF1 = 0x05
	sqG1 = 0x06
	sqH1 = 0x07
	sqD1 = 0x03
	sqC1 = 0x02
	sqB1 = 0x01
	sqA8 = 0x70
	sqE8 = 0x74
	sqF8 = 0x75
	sqG8 = 0x76
	sqH8 = 0x77
	sqD8 = 0x73
	sqC8 = 0x72
	sqB8 = 0x71
)

func generateCastleMoves(pos *Position, kingSq Square, side int, out []Move, n *int) {
	opp := 1 - side
	if side == tables.White {
		if pos.CastleRights&tables.CastleWK != 0 &&
			pos.Board[sqF1].IsEmpty() && pos.Board[sqG1].IsEmpty() &&
			!IsSquareAttacked(pos, sqE1, opp) && !IsSquareAttacked(pos, sqF1, opp) && !IsSquareAttacked(pos, sqG1, opp) {
			addMove(out, n, Move{From: kingSq, To: sqG1, Flags: FlagCastle})
		}
		if pos.CastleRights&tables.CastleWQ != 0 &&
			pos.Board[sqD1].IsEmpty() && pos.Board[sqC1].IsEmpty() && pos.Board[sqB1].IsEmpty() &&
			!IsSquareAttacked(pos, sqE1, opp) && !IsSquareAttacked(pos, sqD1, opp) && !IsSquareAttacked(pos, sqC1, opp) {
			addMove(out, n, Move{From: kingSq, To: sqC1, Flags: FlagCastle})
		}
		return
	}
	if pos.CastleRights&tables.CastleBK != 0 &&
		pos.Board[sqF8].IsEmpty() && pos.Board[sqG8].IsEmpty() &&
		!IsSquareAttacked(pos, sqE8, opp) && !IsSquareAttacked(pos, sqF8, opp) && !IsSquareAttacked(pos, sqG8, opp) {
		addMove(out, n, Move{From: kingSq, To: sqG8, Flags: FlagCastle})
	}
	if pos.CastleRights&tables.CastleBQ != 0 &&
		pos.Board[sqD8].IsEmpty() && pos.Board[sqC8].IsEmpty() && pos.Board[sqB8].IsEmpty() &&
		!IsSquareAttacked(pos, sqE8, opp) && !IsSquareAttacked(pos, sqD8, opp) && !IsSquareAttacked(pos, sqC8, opp) {
		addMove(out, n, Move{From: kingSq, To: sqC8, Flags: FlagCastle})
	}
}

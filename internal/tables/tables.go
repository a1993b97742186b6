// Package tables holds the static lookup data the rest of the engine
// treats as a read-only collaborator: material values, piece-square
// tables, Zobrist numbers, and the 0x88 offset/mask tables used by the
// move generator and attack test. Nothing here mutates after init.
package tables

// Key is the Zobrist hash width used throughout the engine. On a
// severely memory-constrained target this narrows to uint16 (a one-in-
// 64k collision chance per probe, acceptable given the always-replace
// transposition table); widening to uint64 is likewise a one-line
// change here with no other code affected.
type Key = uint32

// Piece type indices, 1-based so 0 can mean "no piece type" without a
// separate sentinel.
const (
	Pawn = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	White = 0
	Black = 1
)

// MaterialValue is indexed by piece type (1..6); index 0 is unused.
var MaterialValue = [7]int{0, 100, 320, 330, 500, 900, 20000}

// Piece-square tables, one entry per square, indexed from White's side
// with index 0 = a1: the first row of each literal is rank 1, the last
// is rank 8. PSTIndexWhite/PSTIndexBlack convert a 0x88 square into
// this layout for the side in question.
var (
	PawnPST = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	KnightPST = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}

	BishopPST = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}

	RookPST = [64]int{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}

	QueenPST = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}

	KingMidPST = [64]int{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}

	KingEndPST = [64]int{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}
)

// pstByType indexes a non-king piece-square table by piece type.
var pstByType = [7]*[64]int{
	Pawn:   &PawnPST,
	Knight: &KnightPST,
	Bishop: &BishopPST,
	Rook:   &RookPST,
	Queen:  &QueenPST,
}

// PSTIndexWhite converts a 0x88 square into the visual table layout
// for White.
func PSTIndexWhite(sq0x88 int) int {
	rank := sq0x88 >> 4
	file := sq0x88 & 7
	return rank*8 + file
}

// PSTIndexBlack converts a 0x88 square into the visual table layout
// for Black (vertical mirror of PSTIndexWhite).
func PSTIndexBlack(sq0x88 int) int {
	rank := sq0x88 >> 4
	file := sq0x88 & 7
	return (7-rank)*8 + file
}

// PieceSquareValue returns the PST bonus for a piece of the given type
// and color on sq (a 0x88 index). pt must be in [Pawn,King]; for King
// pass isEndgame to pick between the middlegame and endgame tables.
func PieceSquareValue(pt int, color int, sq0x88 int, isEndgame bool) int {
	idx := PSTIndexWhite(sq0x88)
	if color == Black {
		idx = PSTIndexBlack(sq0x88)
	}
	if pt == King {
		if isEndgame {
			return KingEndPST[idx]
		}
		return KingMidPST[idx]
	}
	return pstByType[pt][idx]
}

// PhaseWeight is the game-phase contribution of each piece type. No
// code in the engine reads it: the endgame predicate
// (board.Position.IsEndgame) compares material totals instead.
var PhaseWeight = [7]int{0, 0, 1, 1, 2, 4, 0}

// Knight move offsets (0x88 deltas).
var KnightOffsets = [8]int{-33, -31, -18, -14, 14, 18, 31, 33}

// Bishop and rook direction offsets (0x88 deltas); king/queen moves
// use the union of both.
var BishopOffsets = [4]int{-17, -15, 15, 17}
var RookOffsets = [4]int{-16, -1, 1, 16}

// KingOffsets is the union of bishop and rook offsets.
var KingOffsets = [8]int{-17, -15, 15, 17, -16, -1, 1, 16}

// PawnPushOffset and PawnCaptureOffsets are indexed by color.
var PawnPushOffset = [2]int{16, -16}
var PawnCaptureOffsets = [2][2]int{{15, 17}, {-15, -17}}
var PawnStartRank = [2]int{1, 6}
var PawnPromoRank = [2]int{7, 0}
var PawnDoublePushSkipOffset = [2]int{16, -16}

// Castling rights bit masks. Bit order: WK, WQ, BK, BQ.
const (
	CastleWK uint8 = 1 << 0
	CastleWQ uint8 = 1 << 1
	CastleBK uint8 = 1 << 2
	CastleBQ uint8 = 1 << 3
	CastleAll uint8 = CastleWK | CastleWQ | CastleBK | CastleBQ
)

// CastleMask is indexed by 0x88 square; ANDing a side's castling
// rights with CastleMask[sq] on any move touching sq (as origin or
// destination) extinguishes rights made stale by that square moving.
var CastleMask [128]uint8

func init() {
	for i := range CastleMask {
		CastleMask[i] = CastleAll
	}
	const (
		a1 = 0x00
		e1 = 0x04
		h1 = 0x07
		a8 = 0x70
		e8 = 0x74
		h8 = 0x77
	)
	CastleMask[a1] = CastleAll &^ CastleWQ
	CastleMask[e1] = CastleAll &^ (CastleWK | CastleWQ)
	CastleMask[h1] = CastleAll &^ CastleWK
	CastleMask[a8] = CastleAll &^ CastleBQ
	CastleMask[e8] = CastleAll &^ (CastleBK | CastleBQ)
	CastleMask[h8] = CastleAll &^ CastleBK
}

// Zobrist numbers. Generated once at init with a fixed-seed PRNG so
// every build of this engine hashes identically, the same way the
// teacher engine's zobrist.go guarantees reproducible keys.
var (
	ZobristPiece   [2][7][128]Key
	ZobristSide    Key
	ZobristCastle  [16]Key
	ZobristEP      [8]Key
)

// prng is a xorshift64* generator, fixed-seeded for reproducibility.
type prng struct{ state uint64 }

func newPRNG(seed uint64) *prng { return &prng{state: seed} }

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func (p *prng) nextKey() Key { return Key(p.next()) }

func init() {
	rng := newPRNG(0x9E3779B97F4A7C15)

	for c := 0; c < 2; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := 0; sq < 128; sq++ {
				if sq&0x88 != 0 {
					continue
				}
				ZobristPiece[c][pt][sq] = rng.nextKey()
			}
		}
	}
	for i := range ZobristCastle {
		ZobristCastle[i] = rng.nextKey()
	}
	for i := range ZobristEP {
		ZobristEP[i] = rng.nextKey()
	}
	ZobristSide = rng.nextKey()
}

package board

import "github.com/hailam/chessplay/internal/tables"

// Resource limits. All engine state is statically sized; no dynamic
// allocation occurs once a Position is constructed.
const (
	MaxPly       = 64   // deepest negamax recursion / move_buf_idx entries
	MaxGameMoves = 1024 // undo stack / hash history depth
	MoveBufSize  = 4096 // flat move pool shared across all search plies
)

// UndoInfo captures everything make_move mutates that unmake_move
// cannot reconstruct from the move alone.
type UndoInfo struct {
	Captured     Piece
	CapturedSq   Square // post-EP: the actual captured pawn's square
	CastleRights uint8
	EPSquare     Square
	FiftyClock   int
	Hash         tables.Key
	Material     [2]int
	PSTScore     [2]int
}

// Position is the game state: the mailbox board plus all
// incrementally maintained state (material, PST, hash, king squares)
// and the flat, statically sized buffers (undo stack, move pool, hash
// history) that keep make/unmake and move generation allocation-free.
type Position struct {
	Board        [128]Piece
	Side         int
	CastleRights uint8
	EPSquare     Square
	FiftyClock   int
	Ply          int // total half-moves played since the last set_fen

	Hash tables.Key

	KingSq   [2]Square
	Material [2]int
	PSTScore [2]int

	UndoStack [MaxGameMoves]UndoInfo
	UndoPly   int // depth of undo stack; equals number of unmatched makes

	MoveBuf    [MoveBufSize]Move
	MoveBufIdx [MaxPly + 1]int // start offset into MoveBuf at each search ply

	HashHistory   [MaxGameMoves]tables.Key
	HashHistCount int
}

// NewPosition returns a Position set to the standard starting
// position.
func NewPosition() *Position {
	p := &Position{}
	if err := p.SetFEN(StartFEN); err != nil {
		panic("board: start FEN must always parse: " + err.Error())
	}
	return p
}

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// IsEndgame reports whether both sides' non-king material fits within
// a queen-plus-minor budget, the predicate used to switch the king PST
// from middlegame to endgame weighting.
func (p *Position) IsEndgame() bool {
	endgameBudget := tables.MaterialValue[tables.Queen] + tables.MaterialValue[tables.Bishop]
	king := tables.MaterialValue[tables.King]
	return p.Material[tables.White]-king <= endgameBudget && p.Material[tables.Black]-king <= endgameBudget
}

// ComputeHashFromScratch recomputes the Zobrist hash from the current
// board, side, castle rights, and en-passant square, ignoring the
// incrementally maintained Hash field. Used by the hash-identity test.
func (p *Position) ComputeHashFromScratch() tables.Key {
	var h tables.Key
	for sq := 0; sq < 128; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		pc := p.Board[sq]
		if pc.IsEmpty() {
			continue
		}
		h ^= tables.ZobristPiece[pc.Color()][pc.Type()][sq]
	}
	h ^= tables.ZobristCastle[p.CastleRights]
	if p.EPSquare != NoSquare {
		h ^= tables.ZobristEP[p.EPSquare.File()]
	}
	if p.Side == tables.Black {
		h ^= tables.ZobristSide
	}
	return h
}

// ComputeMaterialAndPST recomputes material[2] and pst_score[2] from
// scratch for both colors. Used by set_fen and the material-identity
// test. Material is tallied in a first pass so the endgame predicate
// (which reads material) is correct before any PST term is added.
func (p *Position) ComputeMaterialAndPST() (material [2]int, pst [2]int) {
	for sq := 0; sq < 128; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		pc := p.Board[sq]
		if pc.IsEmpty() {
			continue
		}
		material[pc.Color()] += tables.MaterialValue[pc.Type()]
	}
	endgameBudget := tables.MaterialValue[tables.Queen] + tables.MaterialValue[tables.Bishop]
	king := tables.MaterialValue[tables.King]
	endgame := material[tables.White]-king <= endgameBudget && material[tables.Black]-king <= endgameBudget
	for sq := 0; sq < 128; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		pc := p.Board[sq]
		if pc.IsEmpty() {
			continue
		}
		c := pc.Color()
		pst[c] += tables.PieceSquareValue(pc.Type(), c, sq, endgame)
	}
	return
}

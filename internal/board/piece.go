package board

import "github.com/hailam/chessplay/internal/tables"

// Piece is a packed byte: bits 0-2 are the piece type (1=Pawn..6=King),
// bit 7 is color (0=White, 1=Black). Zero means "no piece". The attack
// test, move encoding, and hash indexing all read these bits directly,
// so Piece is never decomposed into a struct.
type Piece uint8

const colorBit = 1 << 7

// NoPiece is an empty square.
const NoPiece Piece = 0

// NewPiece packs a piece type and color into a Piece.
func NewPiece(pt int, color int) Piece {
	p := Piece(pt)
	if color == tables.Black {
		p |= colorBit
	}
	return p
}

// Type returns the piece type, 0 if p is NoPiece.
func (p Piece) Type() int { return int(p & 0x07) }

// Color returns the piece's color (tables.White or tables.Black).
// Only meaningful when p != NoPiece.
func (p Piece) Color() int {
	if p&colorBit != 0 {
		return tables.Black
	}
	return tables.White
}

// IsEmpty reports whether the square holding p has no piece.
func (p Piece) IsEmpty() bool { return p == NoPiece }

var pieceLetters = [7]byte{0, 'P', 'N', 'B', 'R', 'Q', 'K'}

// Letter renders p as an uppercase (white) or lowercase (black) FEN
// piece letter, or ' ' for an empty square.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return ' '
	}
	l := pieceLetters[p.Type()]
	if p.Color() == tables.Black {
		l += 'a' - 'A'
	}
	return l
}

// PieceFromLetter parses a single FEN piece letter into a Piece.
func PieceFromLetter(c byte) (Piece, bool) {
	color := tables.White
	if c >= 'a' && c <= 'z' {
		color = tables.Black
		c -= 'a' - 'A'
	}
	for pt := tables.Pawn; pt <= tables.King; pt++ {
		if pieceLetters[pt] == c {
			return NewPiece(pt, color), true
		}
	}
	return NoPiece, false
}

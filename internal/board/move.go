package board

import "fmt"

// Move flag bits, per the packed-move contract.
const (
	FlagCapture     uint8 = 0x01
	FlagCastle      uint8 = 0x02
	FlagEnPassant   uint8 = 0x04
	FlagDoublePush  uint8 = 0x08
	FlagPromotion   uint8 = 0x10
	promoPieceShift       = 5
	promoPieceMask  uint8 = 0x03 << promoPieceShift
)

// Promotion piece codes packed into flags bits 5-6.
const (
	PromoKnight uint8 = 0
	PromoBishop uint8 = 1
	PromoRook   uint8 = 2
	PromoQueen  uint8 = 3
)

var promoPieceType = [4]int{2, 3, 4, 5} // Knight, Bishop, Rook, Queen

// Move is the four-byte packed move: from, to, flags, score. Score is
// scratch space written by the move orderer and never persists past
// the ply that produced the move.
type Move struct {
	From  Square
	To    Square
	Flags uint8
	Score uint8
}

// NoMove is the zero value, used as a "no move" sentinel (e.g. empty
// PV, no hash move). Square 0 with no flags is a valid-looking but
// never-generated move (a1-a1), so callers compare against NoMove by
// value, not by From==To.
var NoMove = Move{}

// IsCapture reports whether m removes an opponent piece, including en
// passant.
func (m Move) IsCapture() bool { return m.Flags&FlagCapture != 0 }

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool { return m.Flags&FlagCastle != 0 }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m.Flags&FlagEnPassant != 0 }

// IsDoublePush reports whether m is a two-square pawn push.
func (m Move) IsDoublePush() bool { return m.Flags&FlagDoublePush != 0 }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flags&FlagPromotion != 0 }

// PromotionPieceType returns the promoted-to piece type (tables.Knight
// .. tables.Queen); only valid when IsPromotion().
func (m Move) PromotionPieceType() int {
	return promoPieceType[(m.Flags&promoPieceMask)>>promoPieceShift]
}

func withPromoCode(flags uint8, code uint8) uint8 {
	return flags&^promoPieceMask | (code << promoPieceShift)
}

var promoLetter = [4]byte{'n', 'b', 'r', 'q'}

// String renders m in long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		code := (m.Flags & promoPieceMask) >> promoPieceShift
		s += string(promoLetter[code])
	}
	return s
}

// ParseMove parses a wire-format move ("e2e4", "e7e8q") against the
// current position, filling in flags by consulting the board. It
// returns the pseudo-legal move if one matching from/to/promotion
// exists among the position's generated moves.
func ParseMove(pos *Position, s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %w", s, err)
	}
	var promo uint8
	hasPromo := len(s) == 5
	if hasPromo {
		switch s[4] {
		case 'n':
			promo = PromoKnight
		case 'b':
			promo = PromoBishop
		case 'r':
			promo = PromoRook
		case 'q':
			promo = PromoQueen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece in %q", s)
		}
	}

	var moves MoveList
	GenerateMoves(pos, &moves)
	for i := 0; i < moves.Count; i++ {
		cand := moves.Moves[i]
		if cand.From != from || cand.To != to {
			continue
		}
		if cand.IsPromotion() != hasPromo {
			continue
		}
		if hasPromo && (cand.Flags&promoPieceMask)>>promoPieceShift != promo {
			continue
		}
		return cand, nil
	}
	return NoMove, fmt.Errorf("no pseudo-legal move %q in this position", s)
}

// MaxMoves bounds a single position's pseudo-legal move count; chess's
// true maximum is 218, rounded up generously since this array is also
// reused as scratch space by some callers.
const MaxMoves = 256

// MoveList is a fixed-capacity, non-allocating move buffer used by the
// generator for a single ply.
type MoveList struct {
	Moves [MaxMoves]Move
	Count int
}

// Add appends m if capacity remains; excess moves are silently
// dropped, per the engine's capacity-overflow policy.
func (l *MoveList) Add(m Move) {
	if l.Count < MaxMoves {
		l.Moves[l.Count] = m
		l.Count++
	}
}

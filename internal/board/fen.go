package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hailam/chessplay/internal/tables"
)

// SetFEN parses the six-field FEN string and rebuilds the position
// from scratch: board, side, castle rights, en-passant target, and
// fifty-move clock, then recomputes material, PST, king squares, and
// hash. The full-move number field is not read (GetFEN derives it from
// Ply, which SetFEN resets to 0). The undo stack and hash history are
// cleared, matching a fresh game state.
//
// On a malformed string the position may be left partially mutated;
// the core makes no promise about mid-parse state on bad input, so
// callers that care should keep their own copy to fall back to.
func (p *Position) SetFEN(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fmt.Errorf("board: invalid fen %q: need at least 4 fields", fen)
	}

	var newBoard [128]Piece
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return fmt.Errorf("board: invalid fen %q: expected 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pc, ok := PieceFromLetter(byte(c))
			if !ok {
				return fmt.Errorf("board: invalid fen %q: bad piece letter %q", fen, c)
			}
			if file > 7 {
				return fmt.Errorf("board: invalid fen %q: rank %d overflows", fen, rank+1)
			}
			newBoard[NewSquare(file, rank)] = pc
			file++
		}
		if file != 8 {
			return fmt.Errorf("board: invalid fen %q: rank %d has %d files", fen, rank+1, file)
		}
	}

	var side int
	switch fields[1] {
	case "w":
		side = tables.White
	case "b":
		side = tables.Black
	default:
		return fmt.Errorf("board: invalid fen %q: bad side %q", fen, fields[1])
	}

	var castleRights uint8
	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				castleRights |= tables.CastleWK
			case 'Q':
				castleRights |= tables.CastleWQ
			case 'k':
				castleRights |= tables.CastleBK
			case 'q':
				castleRights |= tables.CastleBQ
			default:
				return fmt.Errorf("board: invalid fen %q: bad castle rights %q", fen, fields[2])
			}
		}
	}

	epSquare := NoSquare
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return fmt.Errorf("board: invalid fen %q: bad ep square: %w", fen, err)
		}
		epSquare = sq
	}

	fiftyClock := 0
	if len(fields) >= 5 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			fiftyClock = n
		}
	}

	*p = Position{
		Board:        newBoard,
		Side:         side,
		CastleRights: castleRights,
		EPSquare:     epSquare,
		FiftyClock:   fiftyClock,
	}

	for sq := 0; sq < 128; sq++ {
		if sq&0x88 != 0 {
			continue
		}
		pc := p.Board[sq]
		if !pc.IsEmpty() && pc.Type() == tables.King {
			p.KingSq[pc.Color()] = Square(sq)
		}
	}

	p.Material, p.PSTScore = p.ComputeMaterialAndPST()
	p.Hash = p.ComputeHashFromScratch()

	return nil
}

// GetFEN renders the position in standard FEN notation. A
// re-SetFEN(GetFEN()) round-trips to a semantically identical state.
func (p *Position) GetFEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.Board[NewSquare(file, rank)]
			if pc.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Side == tables.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastleRights == 0 {
		sb.WriteByte('-')
	} else {
		if p.CastleRights&tables.CastleWK != 0 {
			sb.WriteByte('K')
		}
		if p.CastleRights&tables.CastleWQ != 0 {
			sb.WriteByte('Q')
		}
		if p.CastleRights&tables.CastleBK != 0 {
			sb.WriteByte('k')
		}
		if p.CastleRights&tables.CastleBQ != 0 {
			sb.WriteByte('q')
		}
	}

	sb.WriteByte(' ')
	if p.EPSquare == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EPSquare.String())
	}

	fmt.Fprintf(&sb, " %d %d", p.FiftyClock, p.Ply/2+1)

	return sb.String()
}

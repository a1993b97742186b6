package engine

import (
	"sync/atomic"
	"time"

	"github.com/hailam/chessplay/internal/board"
)

// Search-wide score constants.
const (
	Infinity  = 30000
	MateScore = 29000
	DrawScore = 0
)

// pvTable is the triangular principal-variation table: pvTable[ply][k]
// holds the PV starting at ply, and length[ply] tracks how much of row
// ply is live. On an alpha-raise the child's row is copied up and
// extended with the move that raised it.
type pvTable struct {
	length [board.MaxPly + 1]int
	moves  [board.MaxPly + 1][board.MaxPly + 1]board.Move
}

func (pv *pvTable) update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	for next := ply + 1; next < pv.length[ply+1]; next++ {
		pv.moves[ply][next] = pv.moves[ply+1][next]
	}
	pv.length[ply] = pv.length[ply+1]
	if pv.length[ply] <= ply {
		pv.length[ply] = ply + 1
	}
}

func (pv *pvTable) line(ply int) []board.Move {
	if pv.length[ply] <= ply {
		return nil
	}
	return append([]board.Move(nil), pv.moves[ply][ply:pv.length[ply]]...)
}

// Searcher runs negamax with iterative-deepening driven externally
// (by Engine.SearchPosition), sharing one transposition table and one
// move orderer across a whole run's depths. It is not safe for
// concurrent use — this engine is single-threaded per spec §5.
type Searcher struct {
	tt      *TranspositionTable
	orderer *Orderer

	nodes    uint64
	stopFlag atomic.Bool
	deadline time.Time
	hasLimit bool

	pv pvTable
}

// NewSearcher returns a Searcher sharing tt across searches (so the TT
// survives iterative-deepening iterations and successive SearchPosition
// calls, as a real engine's hash table does).
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{tt: tt, orderer: NewOrderer()}
}

// Reset clears killers and node/stop state for a new top-level
// search, per spec's "killers are cleared at the start of each
// top-level search".
func (s *Searcher) Reset() {
	s.nodes = 0
	s.stopFlag.Store(false)
	s.orderer.Clear()
}

// SetDeadline arms (or disarms, with a zero time.Time) the wall-clock
// budget polled every 1024 nodes during RunDepth.
func (s *Searcher) SetDeadline(deadline time.Time) {
	s.deadline = deadline
	s.hasLimit = !deadline.IsZero()
}

// Stop requests the in-flight search to unwind as soon as it is next
// polled.
func (s *Searcher) Stop() { s.stopFlag.Store(true) }

// Stopped reports whether the stop flag has latched, from a timeout or
// an explicit Stop call.
func (s *Searcher) Stopped() bool { return s.stopFlag.Load() }

// Nodes returns the number of nodes visited since the last Reset.
func (s *Searcher) Nodes() uint64 { return s.nodes }

// PV returns the principal variation found by the most recent RunDepth
// call, root-first.
func (s *Searcher) PV() []board.Move { return s.pv.line(0) }

// RunDepth searches pos to depth from the root (ply 0) with a full
// (-Infinity, Infinity) window, returning the root score. A timeout
// mid-search latches the stop flag and returns 0, which the caller
// must recognize as "discard this iteration" per spec §4.8.
func (s *Searcher) RunDepth(pos *board.Position, depth int) int {
	return s.negamax(pos, depth, 0, -Infinity, Infinity, true)
}

// isMateScore reports whether score encodes a forced mate (|score| >
// MateScore - board.MaxPly per spec's mate-score definition).
func isMateScore(score int) bool {
	if score < 0 {
		score = -score
	}
	return score > MateScore-board.MaxPly
}

// pollClock checks the wall clock every 1024 nodes (per spec §4.8) and
// latches the stop flag once the deadline has passed.
func (s *Searcher) pollClock() bool {
	if s.stopFlag.Load() {
		return true
	}
	if !s.hasLimit {
		return false
	}
	if s.nodes&1023 == 0 && !time.Now().Before(s.deadline) {
		s.stopFlag.Store(true)
		return true
	}
	return false
}

// negamax is the alpha-beta search core. ply==0 is the root: a TT hit
// there never short-circuits on score, so a PV move is always
// produced.
func (s *Searcher) negamax(pos *board.Position, depth, ply, alpha, beta int, doNull bool) int {
	if s.pollClock() {
		return 0
	}

	s.pv.length[ply] = ply

	if ply > 0 {
		if board.IsRepetition(pos) || pos.FiftyClock >= 100 {
			return DrawScore
		}
	}

	// Probe extracts the best move for ordering regardless of depth;
	// HasScore is only set when the stored depth covers this request
	// and the window makes the bound usable. ply==0 must never
	// short-circuit on score so a PV move is always produced.
	probe := s.tt.Probe(pos.Hash, depth, alpha, beta, ply)
	var ttMove board.Move
	if probe.HasMove {
		ttMove = probe.Move
	}
	if ply > 0 && probe.HasScore {
		return probe.Score
	}

	if depth <= 0 {
		return s.quiescence(pos, ply, alpha, beta)
	}

	s.nodes++
	if s.nodes&1023 == 0 {
		s.pollClock()
	}

	inCheck := board.InCheck(pos, pos.Side)
	if inCheck {
		depth++
	}

	// Null-move pruning: pass the turn and search with a reduced depth;
	// a beta cutoff there means the position is at least that good even
	// giving the opponent a free move, so it is pruned here too.
	if doNull && !inCheck && depth >= 3 && ply > 0 && !pos.IsEndgame() {
		r := 3
		if depth > 6 {
			r = 4
		}
		// This node has not generated yet, so the null child's moves
		// start where this node's will, not at a stale offset.
		pos.MoveBufIdx[ply+1] = pos.MoveBufIdx[ply]
		board.MakeNull(pos)
		score := -s.negamax(pos, depth-1-r, ply+1, -beta, -beta+1, false)
		board.UnmakeNull(pos)
		if s.stopFlag.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	start, count := board.GenerateAt(pos, ply, false)
	moves := pos.MoveBuf[start : start+count]
	s.orderer.ScoreAll(pos, moves, ply, ttMove)

	origAlpha := alpha
	legalCount := 0
	var bestMove board.Move
	bestScore := -Infinity - 1

	for i := 0; i < count; i++ {
		PickMove(moves, count, i)
		m := moves[i]

		if !board.MakeMove(pos, m) {
			continue
		}
		legalCount++

		var score int
		if legalCount > 4 && depth >= 3 && !inCheck && !m.IsCapture() && !m.IsPromotion() {
			reduced := -s.negamax(pos, depth-2, ply+1, -alpha-1, -alpha, true)
			if reduced > alpha {
				score = -s.negamax(pos, depth-1, ply+1, -beta, -alpha, true)
			} else {
				score = reduced
			}
		} else {
			score = -s.negamax(pos, depth-1, ply+1, -beta, -alpha, true)
		}

		board.UnmakeMove(pos, m)

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				s.pv.update(ply, m)
				if score >= beta {
					if !m.IsCapture() {
						s.orderer.UpdateKillers(m, ply)
					}
					s.tt.Store(pos.Hash, depth, beta, TTBeta, m, ply)
					return beta
				}
			}
		}
	}

	if legalCount == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return DrawScore
	}

	flag := TTAlpha
	if alpha > origAlpha {
		flag = TTExact
	}
	s.tt.Store(pos.Hash, depth, bestScore, flag, bestMove, ply)
	return bestScore
}

// quiescence extends the search with captures and promotions only,
// terminating when none remain, to avoid the horizon effect at the
// leaves of the main search.
func (s *Searcher) quiescence(pos *board.Position, ply, alpha, beta int) int {
	s.nodes++
	if s.nodes&1023 == 0 {
		s.pollClock()
	}
	if s.stopFlag.Load() {
		return 0
	}

	s.pv.length[ply] = ply

	standPat := Eval(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	start, count := board.GenerateAt(pos, ply, true)
	moves := pos.MoveBuf[start : start+count]
	s.orderer.ScoreAll(pos, moves, ply, board.NoMove)

	for i := 0; i < count; i++ {
		PickMove(moves, count, i)
		m := moves[i]

		if !board.MakeMove(pos, m) {
			continue
		}
		score := -s.quiescence(pos, ply+1, -beta, -alpha)
		board.UnmakeMove(pos, m)

		if s.stopFlag.Load() {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			s.pv.update(ply, m)
		}
	}

	return alpha
}

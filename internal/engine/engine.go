package engine

import (
	"time"

	"github.com/hailam/chessplay/internal/board"
)

// SearchInfo is reported to the front end after every completed
// iterative-deepening iteration, the source data for a UCI `info`
// line.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int // permille of hash table occupied
}

// SearchResult is the final outcome of a SearchPosition call: the move
// the front end should play.
type SearchResult struct {
	Move  board.Move
	Score int
	PV    []board.Move
	Depth int
}

// Engine ties a transposition table, a searcher, and a time manager
// together over a single *board.Position, the entry point the UCI
// front end drives. It is the alpha-beta half of the two cooperating
// cores this module implements; internal/mcts is the independent MCTS
// half, sharing only board and move generation with this package.
type Engine struct {
	TT       *TranspositionTable
	searcher *Searcher
	timeMan  *TimeManager

	bestMoveStability int
	lastBestMove      board.Move
}

// NewEngine returns an Engine with a transposition table sized to
// hashMB megabytes, the unconstrained-host configuration.
func NewEngine(hashMB int) *Engine {
	tt := NewTranspositionTable(hashMB)
	return &Engine{TT: tt, searcher: NewSearcher(tt), timeMan: NewTimeManager()}
}

// NewConstrainedEngine returns an Engine whose transposition table has
// exactly ttEntries slots (rounded down to a power of two), the path
// used on the ≤64 KB target where TT size is chosen by entry count
// (≈512) rather than megabytes.
func NewConstrainedEngine(ttEntries uint64) *Engine {
	tt := NewTranspositionTableWithEntries(ttEntries)
	return &Engine{TT: tt, searcher: NewSearcher(tt), timeMan: NewTimeManager()}
}

// NewGame resets per-game state: clears the transposition table and
// best-move stability tracking.
func (e *Engine) NewGame() {
	e.TT.Clear()
	e.bestMoveStability = 0
	e.lastBestMove = board.NoMove
}

// Stop requests the in-flight search to stop at its next clock poll.
func (e *Engine) Stop() { e.searcher.Stop() }

// Nodes returns the node count of the most recent SearchPosition call.
func (e *Engine) Nodes() uint64 { return e.searcher.Nodes() }

// SearchPosition runs iterative deepening on pos from depth 1 up to
// maxDepth (0 meaning board.MaxPly), reporting each completed
// iteration to onInfo. limits.MoveTime, if set, is a hard per-move
// budget with no time-manager allocation; otherwise limits.Time/Inc
// drive the 1/30-remaining+half-increment allocator, narrowed or
// widened between iterations by best-move stability. A zero limits
// (no MoveTime, no Time, not Infinite) runs to maxDepth with no
// deadline, per spec §4.8's max_time_ms==0 case.
func (e *Engine) SearchPosition(pos *board.Position, maxDepth int, limits UCILimits, side int, onInfo func(SearchInfo)) SearchResult {
	if maxDepth <= 0 || maxDepth > board.MaxPly {
		maxDepth = board.MaxPly
	}

	e.searcher.Reset()

	useTimeManager := !limits.Infinite && limits.MoveTime == 0 && limits.Time[side] > 0
	switch {
	case limits.MoveTime > 0:
		e.searcher.SetDeadline(time.Now().Add(limits.MoveTime))
	case useTimeManager:
		e.timeMan.Init(limits, side)
		e.searcher.SetDeadline(time.Now().Add(e.timeMan.maximumTime))
	default:
		e.searcher.SetDeadline(time.Time{})
	}

	start := time.Now()
	var best SearchResult
	changes := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if useTimeManager && depth > 1 && e.timeMan.PastOptimum() {
			break
		}

		score := e.searcher.RunDepth(pos, depth)
		stopped := e.searcher.Stopped()
		pv := e.searcher.PV()
		if stopped && depth > 1 {
			break
		}

		bestMove := board.NoMove
		if len(pv) > 0 {
			bestMove = pv[0]
		}
		if bestMove == e.lastBestMove {
			e.bestMoveStability++
		} else {
			changes++
			e.bestMoveStability = 0
		}
		e.lastBestMove = bestMove

		best = SearchResult{Move: bestMove, Score: score, PV: pv, Depth: depth}
		if onInfo != nil {
			onInfo(SearchInfo{
				Depth:    depth,
				Score:    score,
				Nodes:    e.searcher.Nodes(),
				Time:     time.Since(start),
				PV:       pv,
				HashFull: e.TT.HashFull(),
			})
		}

		if useTimeManager {
			if changes >= 2 {
				e.timeMan.AdjustForInstability(changes)
			} else {
				e.timeMan.AdjustForStability(e.bestMoveStability)
			}
		}

		if isMateScore(score) || stopped {
			break
		}
	}

	return best
}

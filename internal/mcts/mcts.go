// Package mcts implements a pure Monte-Carlo Tree Search engine used
// as an Elo baseline alongside the alpha-beta engine in
// internal/engine. It shares the board and move generator with that
// engine but never its evaluator or transposition table: a rollout's
// only signal is how games randomly played out to their end.
//
// The teacher engine has no analog of this subsystem, so its shape
// follows spec.md §4.7 directly, in the same
// plain, allocation-free-where-practical style the rest of this module
// uses (a fixed node pool addressed by index, no pointers between
// nodes), reusing the teacher's xorshift PRNG pattern (internal/tables'
// Zobrist generator) for reproducibility.
package mcts

import (
	"math"

	"github.com/hailam/chessplay/internal/board"
)

// NoNode is the sentinel "no node" index, used for a root's parent and
// for an unallocated child slot.
const NoNode uint32 = 0xFFFFFFFF

// MaxChildren caps how many children a single expansion allocates,
// bounding one node's branching factor against the pool.
const MaxChildren = 64

// MaxRolloutPly bounds a single rollout's length; per spec a rollout
// that reaches the cap without a decisive or drawn result scores 0.5,
// the same as a detected draw.
const MaxRolloutPly = 200

// node is one pool-allocated MCTS tree node.
type node struct {
	move        board.Move
	parent      uint32
	children    [MaxChildren]uint32
	numChildren int
	visits      uint32
	wins        float64 // cumulative result from the perspective of the player to move at parent
	side        int     // side to move at this node
	expanded    bool
}

// Tree is a fixed-size node pool plus the UCT search over it. Pool
// exhaustion refuses further expansion (nodes beyond capacity are
// simply not allocated), matching the engine's no-dynamic-allocation
// design.
type Tree struct {
	nodes []node
	used  int

	c   float64 // UCT exploration constant
	rng *xorshift32

	rolloutBuf [MaxRolloutPly]board.Move // scratch space reused across rollouts
}

// DefaultPoolSize is the ≈100k-entry pool size used on unconstrained
// hosts; the constrained target would size this far smaller.
const DefaultPoolSize = 100_000

// NewTree returns a Tree with poolSize node slots, exploration
// constant c (√2 if c<=0), and a PRNG seeded with seed for
// reproducible rollouts.
func NewTree(poolSize int, c float64, seed uint32) *Tree {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	if c <= 0 {
		c = math.Sqrt2
	}
	return &Tree{
		nodes: make([]node, poolSize),
		c:     c,
		rng:   newXorshift32(seed),
	}
}

// alloc returns a fresh node index, or NoNode if the pool is
// exhausted.
func (t *Tree) alloc() uint32 {
	if t.used >= len(t.nodes) {
		return NoNode
	}
	idx := uint32(t.used)
	t.used++
	t.nodes[idx] = node{parent: NoNode}
	return idx
}

// Search runs numSimulations MCTS simulations from pos's current
// position and returns the root child move with the highest visit
// count. If only one legal move exists at the root, it is returned
// immediately without running any simulations, per spec.
func (t *Tree) Search(pos *board.Position, numSimulations int) board.Move {
	var rootMoves board.MoveList
	board.GenerateMoves(pos, &rootMoves)
	if legalMove, ok := soleLegalMove(pos, &rootMoves); ok {
		return legalMove
	}

	t.used = 0
	root := t.alloc()
	t.nodes[root] = node{parent: NoNode, side: pos.Side}

	for i := 0; i < numSimulations; i++ {
		t.simulate(pos, root)
	}

	return t.bestRootMove(root)
}

// soleLegalMove reports whether exactly one of list's pseudo-legal
// moves is actually legal, returning it if so.
func soleLegalMove(pos *board.Position, list *board.MoveList) (board.Move, bool) {
	var found board.Move
	count := 0
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if board.MakeMove(pos, m) {
			board.UnmakeMove(pos, m)
			count++
			found = m
			if count > 1 {
				return board.NoMove, false
			}
		}
	}
	return found, count == 1
}

func (t *Tree) bestRootMove(root uint32) board.Move {
	best := board.NoMove
	bestVisits := int64(-1)
	r := &t.nodes[root]
	for i := 0; i < r.numChildren; i++ {
		child := &t.nodes[r.children[i]]
		if int64(child.visits) > bestVisits {
			bestVisits = int64(child.visits)
			best = child.move
		}
	}
	return best
}

// simulate runs one select/expand/rollout/backpropagate cycle from
// root, restoring pos to its pre-simulation state before returning.
func (t *Tree) simulate(pos *board.Position, root uint32) {
	path := t.selectLeaf(pos, root)
	leaf := path[len(path)-1]

	if !t.nodes[leaf].expanded {
		t.expand(pos, leaf)
		if t.nodes[leaf].numChildren > 0 {
			child := t.nodes[leaf].children[0]
			if board.MakeMove(pos, t.nodes[child].move) {
				path = append(path, child)
				leaf = child
			}
		}
	}

	leafSide := pos.Side
	result := t.rollout(pos)
	t.backpropagate(path, result, leafSide)

	for i := len(path) - 1; i > 0; i-- {
		board.UnmakeMove(pos, t.nodes[path[i]].move)
	}
}

// selectLeaf walks from root while a node is expanded and has
// children, picking the UCT-maximizing child at each step and applying
// its move. It returns the full path of node indices visited, root
// first.
func (t *Tree) selectLeaf(pos *board.Position, root uint32) []uint32 {
	path := []uint32{root}
	cur := root

	for t.nodes[cur].expanded && t.nodes[cur].numChildren > 0 {
		child := t.selectChild(cur)
		m := t.nodes[child].move
		if !board.MakeMove(pos, m) {
			// A move recorded at expansion time turned out illegal
			// here (should not happen, since expansion only keeps
			// moves verified legal by trial-make, but the spec's
			// penalize-and-stop contract is honored defensively).
			t.nodes[child].visits++
			t.nodes[child].wins--
			break
		}
		path = append(path, child)
		cur = child
	}
	return path
}

// selectChild picks the child of parent maximizing UCT =
// wins/visits + c*sqrt(ln(parent.visits)/visits); an unvisited child
// scores +Inf so every child is tried once before any is revisited.
func (t *Tree) selectChild(parent uint32) uint32 {
	p := &t.nodes[parent]
	best := p.children[0]
	bestScore := math.Inf(-1)
	logParent := math.Log(float64(p.visits))

	for i := 0; i < p.numChildren; i++ {
		idx := p.children[i]
		c := &t.nodes[idx]
		var score float64
		if c.visits == 0 {
			score = math.Inf(1)
		} else {
			score = c.wins/float64(c.visits) + t.c*math.Sqrt(logParent/float64(c.visits))
		}
		if score > bestScore {
			bestScore = score
			best = idx
		}
	}
	return best
}

// expand generates pos's legal moves (by trial-make filtering) and
// allocates one child per legal move, capped by MaxChildren and pool
// capacity, then marks leaf expanded.
func (t *Tree) expand(pos *board.Position, leaf uint32) {
	var list board.MoveList
	board.GenerateMoves(pos, &list)

	childSide := 1 - pos.Side
	n := 0
	for i := 0; i < list.Count && n < MaxChildren; i++ {
		m := list.Moves[i]
		if !board.MakeMove(pos, m) {
			continue
		}
		board.UnmakeMove(pos, m)

		idx := t.alloc()
		if idx == NoNode {
			break
		}
		t.nodes[idx] = node{move: m, parent: leaf, side: childSide}
		t.nodes[leaf].children[n] = idx
		n++
	}
	t.nodes[leaf].numChildren = n
	t.nodes[leaf].expanded = true
}

// rollout plays uniformly random legal moves from pos's current
// position up to MaxRolloutPly plies, undoing every move before
// returning, and reports the game's result from the perspective of the
// side to move at the rollout's starting position: 1 = that side won,
// 0 = that side lost, 0.5 = draw, stalemate, fifty-move, repetition, or
// depth cap.
func (t *Tree) rollout(pos *board.Position) float64 {
	perspective := pos.Side
	played := 0

	for ply := 0; ply < MaxRolloutPly; ply++ {
		var list board.MoveList
		board.GenerateMoves(pos, &list)

		m, ok := t.pickRandomLegalMove(pos, &list)
		if !ok {
			result := t.terminalResult(pos, perspective)
			t.unwindRollout(pos, played)
			return result
		}
		board.MakeMove(pos, m)
		t.rolloutBuf[played] = m
		played++

		if pos.FiftyClock >= 100 || board.IsRepetition(pos) {
			t.unwindRollout(pos, played)
			return 0.5
		}
	}

	t.unwindRollout(pos, played)
	return 0.5
}

func (t *Tree) unwindRollout(pos *board.Position, played int) {
	for i := played - 1; i >= 0; i-- {
		board.UnmakeMove(pos, t.rolloutBuf[i])
	}
}

// pickRandomLegalMove does a two-pass count-then-pick over list's
// pseudo-legal moves, trial-making each to find the legal ones, and
// returns a uniformly chosen legal move.
func (t *Tree) pickRandomLegalMove(pos *board.Position, list *board.MoveList) (board.Move, bool) {
	legalCount := 0
	for i := 0; i < list.Count; i++ {
		if board.MakeMove(pos, list.Moves[i]) {
			board.UnmakeMove(pos, list.Moves[i])
			legalCount++
		}
	}
	if legalCount == 0 {
		return board.NoMove, false
	}

	target := int(t.rng.next() % uint32(legalCount))
	seen := 0
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if !board.MakeMove(pos, m) {
			continue
		}
		board.UnmakeMove(pos, m)
		if seen == target {
			return m, true
		}
		seen++
	}
	return board.NoMove, false
}

// terminalResult scores a position with no legal moves for the side to
// move: checkmate is a loss for whichever side is mated, stalemate is
// a draw.
func (t *Tree) terminalResult(pos *board.Position, perspective int) float64 {
	if board.InCheck(pos, pos.Side) {
		if pos.Side == perspective {
			return 0
		}
		return 1
	}
	return 0.5
}

// backpropagate walks path from root to leaf, adding result (if that
// node's side-to-move's opponent is leafSide, i.e. the node's parent
// moved the rollout's side) or 1-result otherwise, to each node's
// wins, per the node's "perspective of the player about to move at
// this node's parent" convention.
func (t *Tree) backpropagate(path []uint32, result float64, leafSide int) {
	for _, idx := range path {
		n := &t.nodes[idx]
		n.visits++
		parentMover := 1 - n.side
		if parentMover == leafSide {
			n.wins += result
		} else {
			n.wins += 1 - result
		}
	}
}

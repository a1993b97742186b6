// Package uci implements the text protocol the Host UI speaks to this
// engine over: a line-oriented command loop reading stdin and writing
// `info`/`bestmove` lines to stdout, in the same shape and style as
// the teacher's own internal/uci package.
package uci

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessplay/internal/board"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/mcts"
)

// EngineKind selects which of the two cooperating cores a `go`
// command drives.
type EngineKind int

const (
	AlphaBeta EngineKind = iota
	MCTS
)

// UCI holds one game's worth of protocol state: the position, the
// alpha-beta engine, and the MCTS tree, either of which `go` can
// drive depending on Kind.
type UCI struct {
	ab   *engine.Engine
	tree *mcts.Tree
	Kind EngineKind

	MCTSSimulations int

	position *board.Position
	searching bool
}

// New returns a UCI handler over ab (the alpha-beta engine) and tree
// (the MCTS engine), starting from the standard initial position.
func New(ab *engine.Engine, tree *mcts.Tree) *UCI {
	return &UCI{
		ab:              ab,
		tree:            tree,
		MCTSSimulations: 10000,
		position:        board.NewPosition(),
	}
}

// Run drives the UCI main loop until "quit" or EOF.
func (u *UCI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.ab.Stop()
		case "quit":
			return
		case "d":
			fmt.Println(u.position.GetFEN())
		case "perft":
			u.handlePerft(args)
		}
	}
}

func (u *UCI) handleUCI() {
	fmt.Println("id name chessplay")
	fmt.Println("id author chessplay")
	fmt.Println()
	fmt.Println("option name Hash type spin default 16 min 1 max 4096")
	fmt.Println("option name Engine type combo default AlphaBeta var AlphaBeta var MCTS")
	fmt.Println("option name MCTSSimulations type spin default 10000 min 1 max 1000000")
	fmt.Println("uciok")
}

func (u *UCI) handleNewGame() {
	u.ab.NewGame()
	u.position = board.NewPosition()
}

// handlePosition handles "position [startpos|fen <fen>] [moves ...]".
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var moveStart int
	switch args[0] {
	case "startpos":
		u.position = board.NewPosition()
		moveStart = 1
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		pos := &board.Position{}
		if err := pos.SetFEN(strings.Join(args[1:end], " ")); err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid fen: %v\n", err)
			return
		}
		u.position = pos
		moveStart = end
	default:
		return
	}

	for i := moveStart; i < len(args); i++ {
		if args[i] == "moves" {
			continue
		}
		m, err := board.ParseMove(u.position, args[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid move %q: %v\n", args[i], err)
			return
		}
		if !board.MakeMove(u.position, m) {
			fmt.Fprintf(os.Stderr, "info string illegal move %q\n", args[i])
			return
		}
	}
}

func (u *UCI) handleGo(args []string) {
	limits := parseGoLimits(args)
	depth := limits.Depth

	switch u.Kind {
	case MCTS:
		u.goMCTS()
	default:
		u.goAlphaBeta(depth, limits)
	}
}

func (u *UCI) goAlphaBeta(depth int, limits engine.UCILimits) {
	u.searching = true
	result := u.ab.SearchPosition(u.position, depth, limits, u.position.Side, u.sendInfo)
	u.searching = false
	fmt.Printf("bestmove %s\n", result.Move.String())
}

func (u *UCI) goMCTS() {
	u.searching = true
	m := u.tree.Search(u.position, u.MCTSSimulations)
	u.searching = false
	fmt.Printf("bestmove %s\n", m.String())
}

// parseGoLimits parses "go"'s wire-format options into an
// engine.UCILimits, whose Depth field carries the search-depth cap.
func parseGoLimits(args []string) engine.UCILimits {
	var limits engine.UCILimits

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				limits.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.ParseUint(args[i+1], 10, 64)
				limits.Nodes = n
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			limits.Infinite = true
		case "wtime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Time[0] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "btime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Time[1] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "winc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Inc[0] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "binc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Inc[1] = time.Duration(ms) * time.Millisecond
				i++
			}
		}
	}

	return limits
}

// sendInfo renders one completed iterative-deepening iteration as a
// UCI "info" line.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string
	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	if info.Score > engine.MateScore-board.MaxPly {
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -(engine.MateScore - board.MaxPly) {
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}
	if len(info.PV) > 0 {
		strs := make([]string, len(info.PV))
		for i, m := range info.PV {
			strs[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(strs, " "))
	}

	fmt.Printf("info %s\n", strings.Join(parts, " "))
}

// handlePerft runs the debug "perft <depth>" verb over the current
// position.
func (u *UCI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := board.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

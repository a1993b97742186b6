// Command uci is the UCI-protocol front end: it loads config.toml (if
// present), builds both cooperating cores, lets the config select which
// one `go` drives, and runs the protocol loop over stdin/stdout.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hailam/chessplay/internal/config"
	"github.com/hailam/chessplay/internal/engine"
	"github.com/hailam/chessplay/internal/mcts"
	"github.com/hailam/chessplay/internal/uci"
)

var configPath = flag.String("config", "config.toml", "path to a TOML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[uci] loading %s: %v", *configPath, err)
	}

	ab := engine.NewEngine(cfg.HashMB)
	tree := mcts.NewTree(mcts.DefaultPoolSize, cfg.MCTSExploration, uint32(time.Now().UnixNano()))

	protocol := uci.New(ab, tree)
	protocol.MCTSSimulations = cfg.MCTSSimulations
	if cfg.Engine == "mcts" {
		protocol.Kind = uci.MCTS
	}

	protocol.Run()
}

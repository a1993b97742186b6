// Package config loads cmd/uci's optional config.toml, following the
// teacher's DifficultySettings map pattern for in-engine tunables and
// reusing github.com/BurntSushi/toml for the file itself, the same
// dependency Mgrdich-TermChess (the pack's terminal chess front end)
// uses for its own binary configuration.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI front end's defaults. Every field has a
// sensible zero-config value; config.toml only needs to override what
// a particular deployment wants changed.
type Config struct {
	HashMB          int     `toml:"hash_mb"`
	DefaultDepth    int     `toml:"default_depth"`
	DefaultMoveTime int     `toml:"default_move_time_ms"`
	MCTSSimulations int     `toml:"mcts_simulations"`
	MCTSExploration float64 `toml:"mcts_exploration"`
	Engine          string  `toml:"engine"` // "alphabeta" or "mcts"
}

// Default returns the configuration used when no config.toml is
// present or a field is left unset in one that is.
func Default() Config {
	return Config{
		HashMB:          16,
		DefaultDepth:    0, // 0 means "run to board.MaxPly or the time budget"
		DefaultMoveTime: 0,
		MCTSSimulations: 10000,
		MCTSExploration: 1.41421356, // sqrt(2)
		Engine:          "alphabeta",
	}
}

// Load reads path (if it exists) and overlays it onto Default(). A
// missing file is not an error: the zero-config defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

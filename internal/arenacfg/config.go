// Package arenacfg loads the TOML configuration shared by the arena
// CLI launchers cmd/reversi-arena and cmd/reversi-arena-server
// (cmd/reversi-arena-client takes only flags), the way the wider example pack's FrankyGo
// engine configures itself with github.com/BurntSushi/toml rather than
// hand-rolled flag parsing for anything beyond a handful of top-level
// switches.
package arenacfg

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk shape of an arena run.
type Config struct {
	// Engine1 and Engine2 are argv vectors for the two engines under
	// test; the arena appends "BLACK"/"WHITE" itself per game.
	Engine1 []string `toml:"engine1"`
	Engine2 []string `toml:"engine2"`

	// Games is the number of games play_n should run; must be even.
	Games int `toml:"games"`

	// MoveTimeoutMS is the per-move timeout in milliseconds; 0 means
	// the protocol default of 5000ms.
	MoveTimeoutMS int `toml:"move_timeout_ms"`

	// Network holds settings for the TCP-based arena; only used by
	// cmd/reversi-arena-server.
	Network NetworkConfig `toml:"network"`
}

// NetworkConfig configures the distributed arena.
type NetworkConfig struct {
	Port         int `toml:"port"`
	GamesPerIter int `toml:"games_per_iter"`
}

// MoveTimeout returns the configured per-move timeout, defaulting to 5s
// per the engine stdio protocol's documented default.
func (c Config) MoveTimeout() time.Duration {
	if c.MoveTimeoutMS <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.MoveTimeoutMS) * time.Millisecond
}

// Load reads and parses a TOML config file from path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("arenacfg: load %s: %w", path, err)
	}
	return cfg, nil
}

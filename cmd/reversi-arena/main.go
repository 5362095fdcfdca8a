// Command reversi-arena pits two engine binaries against each other
// locally over stdio, playing a configured number of games and printing
// a humanized summary.
package main

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hailam/reversi-arena/internal/arena"
	"github.com/hailam/reversi-arena/internal/arenacfg"
	"github.com/hailam/reversi-arena/internal/arenalog"
)

func main() {
	configPath := flag.String("config", "arena.toml", "path to the arena TOML config")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	arenalog.Init(*verbose)
	log := arenalog.For("cmd.reversi-arena")

	cfg, err := arenacfg.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	games := cfg.Games
	if games == 0 {
		games = 2
	}

	a := arena.NewLocalArena(cfg.Engine1, cfg.Engine2)
	a.SetMoveTimeout(cfg.MoveTimeout())

	log.Infof("playing %d games: %v vs %v", games, cfg.Engine1, cfg.Engine2)
	if err := a.PlayN(games); err != nil {
		log.Fatalf("play_n: %v", err)
	}

	stats := a.Stats()
	pieces := a.Pieces()
	fmt.Printf("engine1: %s wins, %s losses, %s draws\n",
		humanize.Comma(int64(stats.Win)), humanize.Comma(int64(stats.Lose)), humanize.Comma(int64(stats.Draw)))
	fmt.Printf("total pieces: engine1=%s engine2=%s\n",
		humanize.Comma(int64(pieces.Own)), humanize.Comma(int64(pieces.Opponent)))
}

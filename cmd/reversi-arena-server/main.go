// Command reversi-arena-server runs the TCP side of the distributed
// arena: it waits for two reversi-arena-client connections, then
// referees games between them.
package main

import (
	"flag"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hailam/reversi-arena/internal/arena/netarena"
	"github.com/hailam/reversi-arena/internal/arenacfg"
	"github.com/hailam/reversi-arena/internal/arenalog"
)

func main() {
	configPath := flag.String("config", "arena.toml", "path to the arena TOML config")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	arenalog.Init(*verbose)
	log := arenalog.For("cmd.reversi-arena-server")

	cfg, err := arenacfg.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Network.Port)
	server, err := netarena.Listen(addr)
	if err != nil {
		log.Fatalf("listen %s: %v", addr, err)
	}
	defer server.Close()
	server.SetMoveTimeout(cfg.MoveTimeout())

	log.Infof("listening on %s, waiting for two clients", server.Addr())
	if err := server.AcceptClients(); err != nil {
		log.Fatalf("accept clients: %v", err)
	}

	games := cfg.Network.GamesPerIter
	if games == 0 {
		games = 2
	}
	if err := server.PlayN(games); err != nil {
		log.Fatalf("play_n: %v", err)
	}

	stats := server.Stats()
	pieces := server.Pieces()
	fmt.Printf("first client: %s wins, %s losses, %s draws\n",
		humanize.Comma(int64(stats.Win)), humanize.Comma(int64(stats.Lose)), humanize.Comma(int64(stats.Draw)))
	fmt.Printf("total pieces: first=%s second=%s\n",
		humanize.Comma(int64(pieces.Own)), humanize.Comma(int64(pieces.Opponent)))
}

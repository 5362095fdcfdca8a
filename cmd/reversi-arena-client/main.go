// Command reversi-arena-client connects to a reversi-arena-server and
// bridges its moves to two locally spawned copies of an engine binary,
// one playing Black and one playing White. The server assigns which
// color plays each game, so this client takes no color flag.
package main

import (
	"flag"

	"github.com/hailam/reversi-arena/internal/arena/netarena"
	"github.com/hailam/reversi-arena/internal/arenalog"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7788", "reversi-arena-server address")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	arenalog.Init(*verbose)
	log := arenalog.For("cmd.reversi-arena-client")

	engineCmd := flag.Args()
	if len(engineCmd) == 0 {
		log.Fatalf("usage: reversi-arena-client [flags] -- <engine-binary> [engine-args...]")
	}

	client := netarena.NewNetworkArenaClient(*addr, engineCmd)
	log.Infof("connecting to %s, engine=%v", *addr, engineCmd)
	if err := client.Run(netarena.SpawnLocalEngines); err != nil {
		log.Fatalf("run: %v", err)
	}
}

package netarena

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/hailam/reversi-arena/internal/arena"
	"github.com/hailam/reversi-arena/internal/arenalog"
	"github.com/hailam/reversi-arena/internal/board"
)

var clientLog = arenalog.For("netarena.client")

const (
	serverReadTimeout = 60 * time.Second
	engineReadTimeout = 5 * time.Second
)

// NetworkArenaClient connects to a NetworkArenaServer and spawns two
// local engine processes from the same command, one playing Black and
// one playing White, each completing its own ping/pong handshake —
// mirroring LocalArena's two-EngineProcess model rather than folding
// both colors onto a single process, since the server's "black"/"white"
// move commands are meant to reach two independently addressed children.
type NetworkArenaClient struct {
	addr      string
	engineCmd []string
}

func NewNetworkArenaClient(addr string, engineCmd []string) *NetworkArenaClient {
	return &NetworkArenaClient{addr: addr, engineCmd: engineCmd}
}

// engineHandle is the subset of internal/arena's process API this
// client drives; declared as an interface so tests can substitute a
// fake engine without spawning a real child process. *arena.EngineProcess
// satisfies it directly.
type engineHandle interface {
	WriteLine(string) error
	ReadLineTimeout(time.Duration) (string, error)
	Quit()
}

// engineHandles holds the two color-addressed engine processes a
// client drives.
type engineHandles struct {
	black engineHandle
	white engineHandle
}

func (e engineHandles) forColor(t board.Turn) engineHandle {
	if t == board.White {
		return e.white
	}
	return e.black
}

// SpawnLocalEngines starts one engine process per color from argv, each
// completing its own ping/pong handshake; production callers pass this
// as Run's spawn argument, tests pass a fake.
func SpawnLocalEngines(argv []string) (engineHandles, error) {
	black, err := arena.StartEngine(argv, board.Black)
	if err != nil {
		return engineHandles{}, fmt.Errorf("netarena: spawn black engine: %w", err)
	}
	white, err := arena.StartEngine(argv, board.White)
	if err != nil {
		black.Quit()
		return engineHandles{}, fmt.Errorf("netarena: spawn white engine: %w", err)
	}
	return engineHandles{black: black, white: white}, nil
}

// Run dials the server and drives the bridge loop until the server
// sends the quit super-command or the connection fails. spawn is
// called once to start both local engines; production callers pass
// SpawnLocalEngines, tests pass a fake.
func (c *NetworkArenaClient) Run(spawn func([]string) (engineHandles, error)) error {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return fmt.Errorf("netarena: dial %s: %w", c.addr, err)
	}
	nc := newNetClient(conn)
	defer nc.close()

	engines, err := spawn(c.engineCmd)
	if err != nil {
		return fmt.Errorf("netarena: spawn engines: %w", err)
	}
	defer engines.black.Quit()
	defer engines.white.Quit()

	return c.loop(nc, engines)
}

func (c *NetworkArenaClient) loop(nc *netClient, engines engineHandles) error {
	var mirror board.Board

	for {
		line, err := nc.readLine(serverReadTimeout)
		if err != nil {
			return err
		}

		body, ok := parseSuper(line)
		if !ok {
			return fmt.Errorf("netarena: client: expected super-command, got %q", line)
		}

		switch body {
		case cmdIsReady:
			if err := nc.writeLine(respReadyOK); err != nil {
				return err
			}
			continue
		case cmdNewGame:
			mirror = board.NewBoard()
			if err := nc.writeLine(respOK); err != nil {
				return err
			}
			continue
		case cmdQuit:
			return nc.writeLine(respOK)
		}

		if mover, delta, ok := parseMoveCommand(body); ok {
			reply, err := c.handleMoveCommand(&mirror, mover, delta, engines.forColor(mover))
			if err != nil {
				return err
			}
			if err := nc.writeLine(reply); err != nil {
				return err
			}
			continue
		}

		// stats and pieces broadcasts carry no state this client needs
		// to track; acknowledge and move on.
		clientLog.Debugf("server broadcast: %s", body)
		if err := nc.writeLine(respOK); err != nil {
			return err
		}
	}
}

// handleMoveCommand applies delta to mirror, then asks the engine
// addressed by mover for a move (or passes on its behalf if it has
// none) and returns the reply to send the server.
func (c *NetworkArenaClient) handleMoveCommand(mirror *board.Board, mover board.Turn, delta string, engine engineHandle) (string, error) {
	if delta != "" {
		if delta == passArg {
			if err := mirror.DoPass(); err != nil {
				return "", fmt.Errorf("netarena: client: mirror pass: %w", err)
			}
		} else {
			pos, err := strconv.Atoi(delta)
			if err != nil {
				return "", fmt.Errorf("netarena: client: bad delta %q: %w", delta, err)
			}
			if err := mirror.DoMove(pos); err != nil {
				return "", fmt.Errorf("netarena: client: mirror move %d: %w", pos, err)
			}
		}
	}

	if mirror.Turn != mover {
		return "", fmt.Errorf("netarena: client: move command addressed %v but mirror turn is %v", mover, mirror.Turn)
	}

	if mirror.GetLegalMoves() == 0 {
		if err := mirror.DoPass(); err != nil {
			return "", fmt.Errorf("netarena: client: own pass: %w", err)
		}
		return respPass, nil
	}

	if err := engine.WriteLine(mirror.String()); err != nil {
		return "", err
	}
	reply, err := engine.ReadLineTimeout(engineReadTimeout)
	if err != nil {
		return "", err
	}
	pos, err := strconv.Atoi(reply)
	if err != nil {
		return "", fmt.Errorf("netarena: client: engine reply %q: %w", reply, err)
	}
	if err := mirror.DoMove(pos); err != nil {
		return "", fmt.Errorf("netarena: client: engine move %d: %w", pos, err)
	}
	return reply, nil
}

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

var serverLog = arenalog.For("netarena.server")

const handshakeTimeout = 5 * time.Second

// NetworkArenaServer pairs exactly two TCP clients and referees games
// between them, keeping its own authoritative board and driving each
// client through a move-command/reply exchange per ply instead of
// spawning local engine processes the way LocalArena does.
type NetworkArenaServer struct {
	listener    net.Listener
	manager     *ClientManager
	moveTimeout time.Duration

	stats  arena.Stats
	pieces arena.Pieces
}

// Listen binds addr (host:port) and returns a server ready to accept its
// two clients.
func Listen(addr string) (*NetworkArenaServer, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("netarena: listen %s: %w", addr, err)
	}
	return &NetworkArenaServer{
		listener:    l,
		manager:     newClientManager(),
		moveTimeout: 5 * time.Second,
	}, nil
}

func (s *NetworkArenaServer) SetMoveTimeout(d time.Duration) { s.moveTimeout = d }

func (s *NetworkArenaServer) Addr() net.Addr { return s.listener.Addr() }

func (s *NetworkArenaServer) Close() error {
	s.manager.CloseAll()
	return s.listener.Close()
}

// AcceptClients blocks until both seats are filled and handshaked.
func (s *NetworkArenaServer) AcceptClients() error {
	for !s.manager.Ready() {
		conn, err := s.listener.Accept()
		if err != nil {
			return fmt.Errorf("netarena: accept: %w", err)
		}
		nc := newNetClient(conn)
		if _, err := s.manager.Assign(nc); err != nil {
			_ = nc.close()
			return err
		}
		if err := s.handshake(nc); err != nil {
			return err
		}
	}
	serverLog.Info("both clients connected and ready")
	return nil
}

func (s *NetworkArenaServer) handshake(c *netClient) error {
	if err := c.writeLine(superLine(cmdIsReady)); err != nil {
		return err
	}
	line, err := c.readLine(handshakeTimeout)
	if err != nil {
		return err
	}
	if line != respReadyOK {
		return fmt.Errorf("netarena: handshake: expected %q, got %q", respReadyOK, line)
	}
	return nil
}

// Stats returns the first-connected client's win/lose/draw tally.
func (s *NetworkArenaServer) Stats() arena.Stats { return s.stats }

// Pieces returns the first-connected client's accumulated piece counts.
func (s *NetworkArenaServer) Pieces() arena.Pieces { return s.pieces }

// PlayN plays n games between the two connected clients, alternating
// which client plays Black every other game. n must be even.
func (s *NetworkArenaServer) PlayN(n int) error {
	if n%2 != 0 {
		return fmt.Errorf("netarena: game count %d must be even", n)
	}
	for pair := 0; pair < n/2; pair++ {
		if err := s.playGame(true); err != nil {
			return err
		}
		if err := s.playGame(false); err != nil {
			return err
		}
	}
	return s.ackBoth(superLine(cmdQuit))
}

func (s *NetworkArenaServer) playGame(firstIsBlack bool) error {
	blackClient, whiteClient := s.manager.Get(SlotSecond), s.manager.Get(SlotFirst)
	if firstIsBlack {
		blackClient, whiteClient = s.manager.Get(SlotFirst), s.manager.Get(SlotSecond)
	}

	if err := s.ackBoth(superLine(cmdNewGame)); err != nil {
		return err
	}

	b := board.NewBoard()
	var lastDelta string
	for !b.IsGameOver() {
		mover := b.Turn
		client := blackClient
		if mover == board.White {
			client = whiteClient
		}

		if err := client.writeLine(moveCommand(mover, lastDelta)); err != nil {
			return err
		}
		reply, err := client.readLine(s.moveTimeout)
		if err != nil {
			return err
		}

		if reply == respPass {
			if err := b.DoPass(); err != nil {
				return fmt.Errorf("netarena: pass from %v: %w", mover, err)
			}
			lastDelta = passArg
			continue
		}

		pos, err := strconv.Atoi(reply)
		if err != nil || pos < 0 || pos > 63 {
			return fmt.Errorf("netarena: invalid move %q from %v", reply, mover)
		}
		if err := b.DoMove(pos); err != nil {
			return fmt.Errorf("netarena: illegal move %d from %v: %w", pos, mover, err)
		}
		lastDelta = strconv.Itoa(pos)
	}

	blackPieces, whitePieces := b.BlackPieceNum(), b.WhitePieceNum()
	firstPieces, secondPieces := whitePieces, blackPieces
	if firstIsBlack {
		firstPieces, secondPieces = blackPieces, whitePieces
	}
	switch {
	case firstPieces > secondPieces:
		s.stats.Win++
	case firstPieces < secondPieces:
		s.stats.Lose++
	default:
		s.stats.Draw++
	}
	s.pieces.Own += firstPieces
	s.pieces.Opponent += secondPieces

	return s.ackBoth(
		superLine(cmdStats, strconv.Itoa(s.stats.Win), strconv.Itoa(s.stats.Lose), strconv.Itoa(s.stats.Draw)),
		superLine(cmdPieces, strconv.Itoa(s.pieces.Own), strconv.Itoa(s.pieces.Opponent)),
	)
}

// ackBoth sends each line to both connected clients in turn, requiring
// an "ok" reply from each before moving to the next line.
func (s *NetworkArenaServer) ackBoth(lines ...string) error {
	for _, slot := range [2]Slot{SlotFirst, SlotSecond} {
		c := s.manager.Get(slot)
		if c == nil {
			continue
		}
		for _, line := range lines {
			if err := c.writeLine(line); err != nil {
				return err
			}
			reply, err := c.readLine(s.moveTimeout)
			if err != nil {
				return err
			}
			if reply != respOK {
				return fmt.Errorf("netarena: expected %q, got %q", respOK, reply)
			}
		}
	}
	return nil
}

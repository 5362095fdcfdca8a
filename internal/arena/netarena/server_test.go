package netarena

import (
	"strconv"
	"testing"
	"time"

	"github.com/hailam/reversi-arena/internal/board"
)

// runFakeClient behaves like a real delta/mirror client: it keeps its
// own board mirror, resets it on newgame, applies whatever delta a
// move command carries, and replies with its own first legal move (or
// pass) — enough of the protocol to drive NetworkArenaServer end to
// end without spawning a real engine binary.
func runFakeClient(t *testing.T, addr string, done chan<- error) {
	t.Helper()
	var nc *netClient
	for i := 0; i < 50; i++ {
		c, err := dialRetry(addr)
		if err == nil {
			nc = newNetClient(c)
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if nc == nil {
		done <- errDialFailed
		return
	}

	var mirror board.Board
	for {
		line, err := nc.readLine(2 * time.Second)
		if err != nil {
			done <- err
			return
		}
		body, ok := parseSuper(line)
		if !ok {
			done <- errUnexpectedLine
			return
		}

		switch body {
		case cmdIsReady:
			if err := nc.writeLine(respReadyOK); err != nil {
				done <- err
				return
			}
			continue
		case cmdNewGame:
			mirror = board.NewBoard()
			if err := nc.writeLine(respOK); err != nil {
				done <- err
				return
			}
			continue
		case cmdQuit:
			_ = nc.writeLine(respOK)
			done <- nil
			return
		}

		mover, delta, ok := parseMoveCommand(body)
		if ok {
			if delta != "" {
				if delta == passArg {
					if err := mirror.DoPass(); err != nil {
						done <- err
						return
					}
				} else {
					pos, err := strconv.Atoi(delta)
					if err != nil {
						done <- err
						return
					}
					if err := mirror.DoMove(pos); err != nil {
						done <- err
						return
					}
				}
			}
			if mirror.Turn != mover {
				done <- errTurnMismatch
				return
			}
			moves := mirror.GetLegalMovesSlice()
			if len(moves) == 0 {
				if err := mirror.DoPass(); err != nil {
					done <- err
					return
				}
				if err := nc.writeLine(respPass); err != nil {
					done <- err
					return
				}
				continue
			}
			if err := mirror.DoMove(moves[0]); err != nil {
				done <- err
				return
			}
			if err := nc.writeLine(strconv.Itoa(moves[0])); err != nil {
				done <- err
				return
			}
			continue
		}

		// stats / pieces broadcasts: ack and move on.
		if err := nc.writeLine(respOK); err != nil {
			done <- err
			return
		}
	}
}

func TestNetworkArenaServerPlaysTwoGames(t *testing.T) {
	s, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer s.Close()
	s.SetMoveTimeout(2 * time.Second)

	done1 := make(chan error, 1)
	done2 := make(chan error, 1)
	go runFakeClient(t, s.Addr().String(), done1)
	go runFakeClient(t, s.Addr().String(), done2)

	if err := s.AcceptClients(); err != nil {
		t.Fatalf("AcceptClients: %v", err)
	}
	if err := s.PlayN(2); err != nil {
		t.Fatalf("PlayN: %v", err)
	}

	if err := <-done1; err != nil {
		t.Fatalf("client1: %v", err)
	}
	if err := <-done2; err != nil {
		t.Fatalf("client2: %v", err)
	}

	stats := s.Stats()
	if stats.Win+stats.Lose+stats.Draw != 2 {
		t.Fatalf("stats = %+v, want 2 games recorded", stats)
	}
}

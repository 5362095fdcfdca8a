package netarena

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/hailam/reversi-arena/internal/board"
)

// fakeEngine is a scripted stand-in for a spawned engine process, used
// so client loop tests never spawn a real binary.
type fakeEngine struct {
	replies []string
	sent    []string
	quit    bool
}

func (f *fakeEngine) WriteLine(line string) error {
	f.sent = append(f.sent, line)
	return nil
}

func (f *fakeEngine) ReadLineTimeout(time.Duration) (string, error) {
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeEngine) Quit() { f.quit = true }

func TestClientLoopHandshakesAndForwardsMove(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()

	nc := newNetClient(clientSide)
	opening := board.NewBoard()
	legal := opening.GetLegalMovesSlice()
	if len(legal) == 0 {
		t.Fatalf("opening board has no legal moves")
	}
	blackEngine := &fakeEngine{replies: []string{strconv.Itoa(legal[0])}}
	whiteEngine := &fakeEngine{}
	engines := engineHandles{black: blackEngine, white: whiteEngine}

	done := make(chan error, 1)
	go func() {
		done <- (&NetworkArenaClient{}).loop(nc, engines)
	}()

	serverNC := newNetClient(serverSide)
	if err := serverNC.writeLine(superLine(cmdIsReady)); err != nil {
		t.Fatalf("write isready: %v", err)
	}
	reply, err := serverNC.readLine(time.Second)
	if err != nil || reply != respReadyOK {
		t.Fatalf("handshake reply = %q, %v", reply, err)
	}

	if err := serverNC.writeLine(superLine(cmdNewGame)); err != nil {
		t.Fatalf("write newgame: %v", err)
	}
	if reply, err := serverNC.readLine(time.Second); err != nil || reply != respOK {
		t.Fatalf("newgame reply = %q, %v", reply, err)
	}

	if err := serverNC.writeLine(moveCommand(board.Black, "")); err != nil {
		t.Fatalf("write move command: %v", err)
	}
	move, err := serverNC.readLine(time.Second)
	if err != nil || move != strconv.Itoa(legal[0]) {
		t.Fatalf("move reply = %q, %v", move, err)
	}
	wantSent := opening.String()
	if len(blackEngine.sent) != 1 || blackEngine.sent[0] != wantSent {
		t.Fatalf("blackEngine.sent = %v, want [%q]", blackEngine.sent, wantSent)
	}
	if len(whiteEngine.sent) != 0 {
		t.Fatalf("whiteEngine.sent = %v, want none consulted for a Black move command", whiteEngine.sent)
	}

	if err := serverNC.writeLine(superLine(cmdQuit)); err != nil {
		t.Fatalf("write quit: %v", err)
	}
	if reply, err := serverNC.readLine(time.Second); err != nil || reply != respOK {
		t.Fatalf("quit ack = %q, %v", reply, err)
	}
	if err := <-done; err != nil {
		t.Fatalf("loop returned error: %v", err)
	}
}

func TestClientLoopAppliesOpponentDeltaBeforeAskingEngine(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()

	nc := newNetClient(clientSide)
	opening := board.NewBoard()
	firstMove := opening.GetLegalMovesSlice()[0]
	afterFirst := opening
	if err := afterFirst.DoMove(firstMove); err != nil {
		t.Fatalf("DoMove: %v", err)
	}
	secondMover := afterFirst.Turn
	legal := afterFirst.GetLegalMovesSlice()
	if len(legal) == 0 {
		t.Fatalf("position after first move has no legal moves")
	}

	// secondMover is whichever color did not make the opening move;
	// only its engine should ever be consulted.
	moverEngine := &fakeEngine{replies: []string{strconv.Itoa(legal[0])}}
	otherEngine := &fakeEngine{}
	engines := engineHandles{black: moverEngine, white: otherEngine}
	if secondMover == board.White {
		engines = engineHandles{black: otherEngine, white: moverEngine}
	}

	done := make(chan error, 1)
	go func() {
		done <- (&NetworkArenaClient{}).loop(nc, engines)
	}()

	serverNC := newNetClient(serverSide)
	if err := serverNC.writeLine(superLine(cmdNewGame)); err != nil {
		t.Fatalf("write newgame: %v", err)
	}
	if _, err := serverNC.readLine(time.Second); err != nil {
		t.Fatalf("newgame ack: %v", err)
	}

	if err := serverNC.writeLine(moveCommand(secondMover, strconv.Itoa(firstMove))); err != nil {
		t.Fatalf("write move command: %v", err)
	}
	move, err := serverNC.readLine(time.Second)
	if err != nil || move != strconv.Itoa(legal[0]) {
		t.Fatalf("move reply = %q, %v", move, err)
	}
	wantSent := afterFirst.String()
	if len(moverEngine.sent) != 1 || moverEngine.sent[0] != wantSent {
		t.Fatalf("moverEngine.sent = %v, want [%q]", moverEngine.sent, wantSent)
	}
	if len(otherEngine.sent) != 0 {
		t.Fatalf("otherEngine.sent = %v, want none consulted", otherEngine.sent)
	}

	if err := serverNC.writeLine(superLine(cmdQuit)); err != nil {
		t.Fatalf("write quit: %v", err)
	}
	if _, err := serverNC.readLine(time.Second); err != nil {
		t.Fatalf("quit ack: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("loop returned error: %v", err)
	}
}

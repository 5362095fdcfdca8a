package arena

import (
	"time"

	"github.com/hailam/reversi-arena/internal/arenalog"
	"github.com/hailam/reversi-arena/internal/board"
)

var localLog = arenalog.For("arena.local")

// Stats tallies outcomes from engine1's point of view across every game
// LocalArena has played.
type Stats struct {
	Win, Lose, Draw int
}

// Pieces accumulates final piece counts, also from engine1's point of
// view, across every game played so far.
type Pieces struct {
	Own, Opponent int
}

// LocalArena spawns two engine binaries as child processes and plays
// games between them, alternating colors every other game so neither
// engine always moves first.
type LocalArena struct {
	engine1, engine2 []string
	moveTimeout      time.Duration

	stats  Stats
	pieces Pieces
}

// NewLocalArena builds an arena pitting engine1 against engine2. Each
// argv is split as exec.Command expects: argv[0] is the binary path,
// argv[1:] are its fixed arguments; a trailing BLACK/WHITE token is
// appended automatically per game.
func NewLocalArena(engine1, engine2 []string) *LocalArena {
	return &LocalArena{
		engine1:     engine1,
		engine2:     engine2,
		moveTimeout: 5 * time.Second,
	}
}

// SetMoveTimeout overrides the default 5s per-move timeout.
func (a *LocalArena) SetMoveTimeout(d time.Duration) {
	a.moveTimeout = d
}

// Stats returns engine1's win/lose/draw tally so far.
func (a *LocalArena) Stats() Stats { return a.stats }

// Pieces returns engine1's accumulated own/opponent piece counts so far.
func (a *LocalArena) Pieces() Pieces { return a.pieces }

// PlayN plays n games, n/2 pairs with colors swapped within each pair,
// so each engine plays Black exactly n/2 times. n must be even.
func (a *LocalArena) PlayN(n int) error {
	if n%2 != 0 {
		return &ArenaError{Kind: GameNumberInvalid, Err: errInvalidGameCount(n)}
	}
	for pair := 0; pair < n/2; pair++ {
		if err := a.playGame(true); err != nil {
			return err
		}
		if err := a.playGame(false); err != nil {
			return err
		}
	}
	return nil
}

// playGame runs a single game to completion. engine1Black selects which
// engine command plays Black this game.
func (a *LocalArena) playGame(engine1Black bool) error {
	blackCmd, whiteCmd := a.engine2, a.engine1
	if engine1Black {
		blackCmd, whiteCmd = a.engine1, a.engine2
	}

	black, err := StartEngine(blackCmd, board.Black)
	if err != nil {
		return &ArenaError{Kind: EngineStartError, Err: err}
	}
	defer black.Quit()

	white, err := StartEngine(whiteCmd, board.White)
	if err != nil {
		return &ArenaError{Kind: EngineStartError, Err: err}
	}
	defer white.Quit()

	finalBoard, gerr := a.runGame(black, white)
	if gerr != nil {
		return gerr
	}

	blackPieces := finalBoard.BlackPieceNum()
	whitePieces := finalBoard.WhitePieceNum()
	engine1Pieces, engine2Pieces := whitePieces, blackPieces
	if engine1Black {
		engine1Pieces, engine2Pieces = blackPieces, whitePieces
	}

	switch {
	case engine1Pieces > engine2Pieces:
		a.stats.Win++
	case engine1Pieces < engine2Pieces:
		a.stats.Lose++
	default:
		a.stats.Draw++
	}
	a.pieces.Own += engine1Pieces
	a.pieces.Opponent += engine2Pieces
	localLog.Infof("game done: engine1=%d engine2=%d (engine1 black=%v)", engine1Pieces, engine2Pieces, engine1Black)
	return nil
}

// runGame drives black and white through the stdio protocol move by
// move until the board is terminal, returning the final position.
func (a *LocalArena) runGame(black, white *EngineProcess) (board.Board, error) {
	b := board.NewBoard()

	for !b.IsGameOver() {
		proc := black
		if b.Turn == board.White {
			proc = white
		}

		if b.GetLegalMoves() == 0 {
			if err := proc.WriteLine(passToken); err != nil {
				return b, asArenaGameError(b.Turn, err)
			}
			if _, err := proc.ReadLineTimeout(a.moveTimeout); err != nil {
				return b, asArenaGameError(b.Turn, err)
			}
			if err := b.DoPass(); err != nil {
				return b, &ArenaError{Kind: ArenaGameError, Err: &GameError{Kind: UnexpectedGameError, Err: err}}
			}
			continue
		}

		if err := proc.WriteLine(b.String()); err != nil {
			return b, asArenaGameError(b.Turn, err)
		}
		line, err := proc.ReadLineTimeout(a.moveTimeout)
		if err != nil {
			return b, asArenaGameError(b.Turn, err)
		}
		pos, perr := parseMove(line)
		if perr != nil {
			return b, wrapGameError(b.Turn, &PlayerError{Kind: PlayerParseError, Err: perr})
		}
		if err := b.DoMove(pos); err != nil {
			return b, wrapGameError(b.Turn, &PlayerError{Kind: PlayerBoardError, Err: err})
		}
	}
	return b, nil
}

func asArenaGameError(turn board.Turn, err error) *ArenaError {
	if pe, ok := err.(*PlayerError); ok {
		return wrapGameError(turn, pe)
	}
	return wrapGameError(turn, &PlayerError{Kind: PlayerIoError, Err: err})
}

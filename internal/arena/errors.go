package arena

import (
	"fmt"

	"github.com/hailam/reversi-arena/internal/board"
)

// PlayerErrorKind classifies a failure talking to one engine process.
type PlayerErrorKind uint8

const (
	PlayerIoError PlayerErrorKind = iota
	PlayerParseError
	PlayerTimeoutError
	PlayerBoardError
)

// PlayerError is an error from one engine's side of the stdio protocol,
// before it has been attributed to a color.
type PlayerError struct {
	Kind PlayerErrorKind
	Err  error
}

func (e *PlayerError) Error() string {
	return fmt.Sprintf("player error (%v): %v", e.Kind, e.Err)
}

func (e *PlayerError) Unwrap() error { return e.Err }

func (k PlayerErrorKind) String() string {
	switch k {
	case PlayerIoError:
		return "IoError"
	case PlayerParseError:
		return "ParseError"
	case PlayerTimeoutError:
		return "TimeoutError"
	case PlayerBoardError:
		return "BoardError"
	default:
		return "Unknown"
	}
}

// GameErrorKind classifies how a game ended abnormally.
type GameErrorKind uint8

const (
	BlackInvalidMove GameErrorKind = iota
	WhiteInvalidMove
	BlackTimeout
	WhiteTimeout
	BlackCrash
	WhiteCrash
	UnexpectedGameError
)

func (k GameErrorKind) String() string {
	switch k {
	case BlackInvalidMove:
		return "BlackInvalidMove"
	case WhiteInvalidMove:
		return "WhiteInvalidMove"
	case BlackTimeout:
		return "BlackTimeout"
	case WhiteTimeout:
		return "WhiteTimeout"
	case BlackCrash:
		return "BlackCrash"
	case WhiteCrash:
		return "WhiteCrash"
	default:
		return "UnexpectedError"
	}
}

// GameError is a typed, color-tagged game-ending failure.
type GameError struct {
	Kind GameErrorKind
	Err  error
}

func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("game error %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("game error %v", e.Kind)
}

func (e *GameError) Unwrap() error { return e.Err }

// gameErrorFromPlayer translates a player-level failure, observed while
// it was turn's move, into the corresponding typed game error.
func gameErrorFromPlayer(turn board.Turn, pe *PlayerError) *GameError {
	black := turn == board.Black
	switch pe.Kind {
	case PlayerTimeoutError:
		kind := WhiteTimeout
		if black {
			kind = BlackTimeout
		}
		return &GameError{Kind: kind, Err: pe}
	case PlayerIoError:
		kind := WhiteCrash
		if black {
			kind = BlackCrash
		}
		return &GameError{Kind: kind, Err: pe}
	case PlayerParseError, PlayerBoardError:
		kind := WhiteInvalidMove
		if black {
			kind = BlackInvalidMove
		}
		return &GameError{Kind: kind, Err: pe}
	default:
		return &GameError{Kind: UnexpectedGameError, Err: pe}
	}
}

// ArenaErrorKind classifies an Arena-level failure.
type ArenaErrorKind uint8

const (
	EngineStartError ArenaErrorKind = iota
	EngineEndError
	GameNumberInvalid
	ThreadJoinError
	ArenaGameError
)

func (k ArenaErrorKind) String() string {
	switch k {
	case EngineStartError:
		return "EngineStartError"
	case EngineEndError:
		return "EngineEndError"
	case GameNumberInvalid:
		return "GameNumberInvalid"
	case ThreadJoinError:
		return "ThreadJoinError"
	case ArenaGameError:
		return "GameError"
	default:
		return "Unknown"
	}
}

// ArenaError is the error type every Arena operation returns.
type ArenaError struct {
	Kind ArenaErrorKind
	Err  error
}

func (e *ArenaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("arena error %v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("arena error %v", e.Kind)
}

func (e *ArenaError) Unwrap() error { return e.Err }

func wrapGameError(turn board.Turn, pe *PlayerError) *ArenaError {
	return &ArenaError{Kind: ArenaGameError, Err: gameErrorFromPlayer(turn, pe)}
}

func errInvalidGameCount(n int) error {
	return fmt.Errorf("game count %d must be even", n)
}

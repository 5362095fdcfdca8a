package netarena

import (
	"strings"

	"github.com/hailam/reversi-arena/internal/board"
)

const (
	moveTokenBlack = "black"
	moveTokenWhite = "white"
)

func moveToken(mover board.Turn) string {
	if mover == board.White {
		return moveTokenWhite
	}
	return moveTokenBlack
}

// moveCommand builds the super-command addressed to mover, carrying the
// delta that just happened (the previous mover's move as a decimal
// string, passArg, or "" on a game's very first command, when there is
// nothing to report yet).
func moveCommand(mover board.Turn, delta string) string {
	if delta == "" {
		return superLine(moveToken(mover))
	}
	return superLine(moveToken(mover), delta)
}

// parseMoveCommand parses a super-command body (prefix already
// stripped) into the addressed mover and the delta argument, if any.
// ok is false if body does not name black or white.
func parseMoveCommand(body string) (mover board.Turn, delta string, ok bool) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return board.Black, "", false
	}
	switch fields[0] {
	case moveTokenBlack:
		mover = board.Black
	case moveTokenWhite:
		mover = board.White
	default:
		return board.Black, "", false
	}
	if len(fields) >= 2 {
		delta = fields[1]
	}
	return mover, delta, true
}

package search

import "github.com/hailam/reversi-arena/internal/board"

// Evaluator maps a non-terminal board to a signed heuristic score from
// the side-to-move's perspective (positive favors the side to move). It
// is a one-method capability, the way the teacher treats pluggable
// strategies: the search holds an owned implementation chosen at
// construction, and new evaluators are added by implementing the
// interface rather than extending a switch.
//
// Terminal positions are never passed to Evaluate; AlphaBetaSearch
// handles them directly with the sentinel win/lose scores so that
// negation is always safe.
type Evaluator interface {
	Evaluate(b board.Board) int32
}

// PieceEvaluator scores a position by the player's piece-count
// advantage.
type PieceEvaluator struct{}

// Evaluate returns player piece count minus opponent piece count.
func (PieceEvaluator) Evaluate(b board.Board) int32 {
	return int32(b.PlayerPieceNum() - b.OpponentPieceNum())
}

// LegalNumEvaluator scores a position by mobility: the player's legal
// move count minus the opponent's legal move count (the opponent's
// mobility is read off the side-swapped position, since Board always
// reports legal moves for whichever side is to move).
type LegalNumEvaluator struct{}

// Evaluate returns the player's legal-move count minus the opponent's.
func (LegalNumEvaluator) Evaluate(b board.Board) int32 {
	ownMoves := len(b.GetLegalMovesSlice())
	oppMoves := len(b.Swapped().GetLegalMovesSlice())
	return int32(ownMoves - oppMoves)
}

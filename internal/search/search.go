// Package search implements the transposition-tabled alpha-beta search
// that chooses moves for a Reversi position: negamax with alpha-beta
// pruning, a transposition table, and an iterative-deepening mode driven
// by a wall-clock deadline.
package search

import (
	"math"

	"github.com/hailam/reversi-arena/internal/board"
)

// Sentinel scores for terminal positions, chosen so unary negation is
// always representable: winScore/loseScore and the root search window
// all stay strictly inside [math.MinInt32, math.MaxInt32].
const (
	winScore  int32 = math.MaxInt32 - 2
	loseScore int32 = math.MinInt32 + 2
	maxWindow int32 = math.MaxInt32 - 1
	minWindow int32 = math.MinInt32 + 1
)

// maxSearchDepth bounds iterative deepening: Reversi has at most 60
// plies past the opening position, so depth can never usefully exceed
// that, guarding against a runaway loop if IsTimeout never fires (e.g. a
// timeout far longer than the game actually takes to solve).
const maxSearchDepth = 60

// AlphaBetaSearch is a negamax search with alpha-beta pruning over a
// transposition table, in a fixed-depth mode (GetMove) and an
// iterative-deepening mode under a wall-clock deadline
// (GetMoveWithIterDeepening).
type AlphaBetaSearch struct {
	maxDepth  int
	evaluator Evaluator
	tt        *TranspositionTable
}

// NewAlphaBetaSearch constructs a search with the given fixed search
// depth and evaluator. The search owns its transposition table; its
// lifetime matches the search's.
func NewAlphaBetaSearch(maxDepth int, evaluator Evaluator) *AlphaBetaSearch {
	return &AlphaBetaSearch{
		maxDepth:  maxDepth,
		evaluator: evaluator,
		tt:        NewTranspositionTable(),
	}
}

// nextDepth returns the depth to search a child at: one less than depth,
// floored at 0. Depth never goes negative, matching TTEntry.Depth's
// unsigned representation.
func nextDepth(depth int) int {
	if depth <= 0 {
		return 0
	}
	return depth - 1
}

// Search runs a fixed-depth negamax search of b and returns its score
// from the side-to-move's perspective. Exposed mainly for tests that
// check the documented testable properties (TT cutoffs, negamax
// symmetry); GetMove/GetMoveWithIterDeepening are the move-selection
// entry points.
func (s *AlphaBetaSearch) Search(b board.Board, depth int, alpha, beta int32) int32 {
	score, _ := s.search(b, depth, alpha, beta, nil)
	return score
}

// search implements negamax with alpha-beta pruning and TT-backed
// cutoffs and storage, per the five steps: TT cutoff, terminal
// detection, horizon, children, pass. When tk is non-nil it is polled
// after every child evaluation (at every level of recursion, per the
// iterative-deepening contract); on timeout, search unwinds immediately
// and the second return value is true, signaling the caller to discard
// whatever partial result it was accumulating.
func (s *AlphaBetaSearch) search(b board.Board, depth int, alpha, beta int32, tk *TimeKeeper) (int32, bool) {
	if entry, ok := s.tt.Lookup(b); ok && entry.Depth >= uint(depth) {
		switch entry.Type {
		case Exact:
			return entry.Score, false
		case LowerBound:
			if entry.Score >= beta {
				return entry.Score, false
			}
		case UpperBound:
			if entry.Score <= alpha {
				return entry.Score, false
			}
		}
	}

	if b.IsGameOver() {
		switch {
		case b.IsWin():
			return winScore, false
		case b.IsLose():
			return loseScore, false
		default:
			return 0, false
		}
	}

	if depth <= 0 {
		return s.evaluator.Evaluate(b), false
	}

	children := b.GetChildBoards()
	if children != nil {
		best := alpha
		for _, child := range children {
			if tk != nil && tk.IsTimeout() {
				return 0, true
			}
			childScore, timedOut := s.search(child, nextDepth(depth), -beta, -best, tk)
			if timedOut {
				return 0, true
			}
			score := -childScore
			if score > best {
				best = score
			}
			if best >= beta {
				s.tt.Store(b, uint(depth), best, LowerBound)
				return best, false
			}
		}
		entryType := UpperBound
		if best > alpha {
			entryType = Exact
		}
		s.tt.Store(b, uint(depth), best, entryType)
		return best, false
	}

	// No children: pass. A pass does not consume a ply, so the
	// recursive call keeps the same depth; the returned score is
	// classified against the *original* window to decide this node's
	// bound type.
	passed := b
	_ = passed.DoPass()
	if tk != nil && tk.IsTimeout() {
		return 0, true
	}
	childScore, timedOut := s.search(passed, depth, -beta, -alpha, tk)
	if timedOut {
		return 0, true
	}
	score := -childScore

	var entryType EntryType
	switch {
	case score <= alpha:
		entryType = UpperBound
	case score >= beta:
		entryType = LowerBound
	default:
		entryType = Exact
	}
	s.tt.Store(b, uint(depth), score, entryType)
	return score, false
}

// GetMove chooses a move for b by searching every legal successor at
// the root with the full (minWindow, maxWindow) negamax window and
// tracking the best. The root result is stored in the transposition
// table as Exact. It returns (0, false) if b has no legal moves.
func (s *AlphaBetaSearch) GetMove(b board.Board) (int, bool) {
	move, ok, _ := s.rootSearch(b, s.maxDepth, nil)
	return move, ok
}

// rootSearch evaluates every legal child of b at the given depth and
// returns the best move, whether one was found (b had legal moves), and
// whether the search was cut short by tk's deadline.
func (s *AlphaBetaSearch) rootSearch(b board.Board, depth int, tk *TimeKeeper) (move int, ok bool, timedOut bool) {
	moves := b.GetLegalMovesSlice()
	if len(moves) == 0 {
		return 0, false, false
	}
	children := b.GetChildBoards()

	best := minWindow
	bestMove := moves[0]
	for i, child := range children {
		if tk != nil && tk.IsTimeout() {
			return 0, false, true
		}
		childScore, to := s.search(child, nextDepth(depth), -maxWindow, -minWindow, tk)
		if to {
			return 0, false, true
		}
		score := -childScore
		if score > best {
			best = score
			bestMove = moves[i]
		}
	}
	s.tt.Store(b, uint(depth), best, Exact)
	return bestMove, true, false
}

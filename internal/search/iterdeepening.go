package search

import (
	"time"

	"github.com/hailam/reversi-arena/internal/board"
)

// GetMoveWithIterDeepening searches depth 0, 1, 2, ... against a
// TimeKeeper built from timeout, returning the best move from the last
// depth that finished before the deadline.
//
// It returns (0, false) if b has no legal moves at all, or if the
// deadline expires before even depth 0 finishes — in particular, a
// zero-duration timeout always returns (0, false), since IsTimeout is
// already true before the first iteration starts.
//
// Iterative deepening is the only cancellable search path: cancellation
// is observed at child-iteration boundaries inside search, never mid-way
// through a single evaluator call, so the search never overruns the
// deadline by more than one recursive frame's remaining work.
func (s *AlphaBetaSearch) GetMoveWithIterDeepening(b board.Board, timeout time.Duration) (int, bool) {
	if len(b.GetLegalMovesSlice()) == 0 {
		return 0, false
	}

	tk := NewTimeKeeper(timeout)

	var lastMove int
	haveMove := false

	for depth := 0; depth <= maxSearchDepth; depth++ {
		if tk.IsTimeout() {
			break
		}
		move, ok, timedOut := s.rootSearch(b, depth, tk)
		if timedOut {
			break
		}
		if !ok {
			break
		}
		lastMove, haveMove = move, true
	}

	if !haveMove {
		return 0, false
	}
	return lastMove, true
}

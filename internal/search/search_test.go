package search

import (
	"strings"
	"testing"
	"time"

	"github.com/hailam/reversi-arena/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceEvaluator(t *testing.T) {
	var b board.Board
	require.NoError(t, b.SetBoardString(strings.Repeat("X", 3)+strings.Repeat("O", 1)+strings.Repeat("-", 60), board.Black))
	assert.Equal(t, int32(2), PieceEvaluator{}.Evaluate(b))
}

func TestLegalNumEvaluator(t *testing.T) {
	b := board.NewBoard()
	own := len(b.GetLegalMovesSlice())
	opp := len(b.Swapped().GetLegalMovesSlice())
	assert.Equal(t, int32(own-opp), LegalNumEvaluator{}.Evaluate(b))
}

func TestDepthZeroSearchReturnsLegalMoveAndStoresExactRoot(t *testing.T) {
	s := NewAlphaBetaSearch(0, PieceEvaluator{})
	b := board.NewBoard()

	move, ok := s.GetMove(b)
	require.True(t, ok)
	assert.True(t, b.IsLegalMove(move))

	entry, found := s.tt.Lookup(b)
	require.True(t, found)
	assert.Equal(t, Exact, entry.Type)
}

func TestTTLowerBoundCutoffShortCircuits(t *testing.T) {
	s := NewAlphaBetaSearch(5, PieceEvaluator{})
	b := board.NewBoard()
	s.tt.Store(b, 5, 100, LowerBound)

	score := s.Search(b, 5, 0, 50)
	assert.Equal(t, int32(100), score)
}

func TestTTExactCutoffReturnsStoredScoreDirectly(t *testing.T) {
	s := NewAlphaBetaSearch(3, PieceEvaluator{})
	b := board.NewBoard()
	s.tt.Store(b, 4, 7, Exact)

	score := s.Search(b, 3, minWindow, maxWindow)
	assert.Equal(t, int32(7), score)
}

func TestNegamaxSymmetry(t *testing.T) {
	s1 := NewAlphaBetaSearch(3, PieceEvaluator{})
	s2 := NewAlphaBetaSearch(3, PieceEvaluator{})

	b := board.NewBoard()
	require.NoError(t, b.DoMove(19))

	got := s1.Search(b, 3, -1000, 1000)
	want := -s2.Search(b.Swapped(), 3, -1000, 1000)
	assert.Equal(t, want, got)
}

func TestTerminalScores(t *testing.T) {
	s := NewAlphaBetaSearch(2, PieceEvaluator{})

	var winBoard board.Board
	require.NoError(t, winBoard.SetBoardString(strings.Repeat("X", 64), board.Black))
	assert.Equal(t, winScore, s.Search(winBoard, 2, minWindow, maxWindow))

	var loseBoard board.Board
	require.NoError(t, loseBoard.SetBoardString(strings.Repeat("O", 64), board.Black))
	assert.Equal(t, loseScore, s.Search(loseBoard, 2, minWindow, maxWindow))
}

func TestIterativeDeepeningZeroTimeoutReturnsNoMove(t *testing.T) {
	s := NewAlphaBetaSearch(10, PieceEvaluator{})
	move, ok := s.GetMoveWithIterDeepening(board.NewBoard(), 0)
	assert.False(t, ok)
	assert.Zero(t, move)
}

func TestIterativeDeepeningReturnsLegalMove(t *testing.T) {
	s := NewAlphaBetaSearch(10, LegalNumEvaluator{})
	move, ok := s.GetMoveWithIterDeepening(board.NewBoard(), 50*time.Millisecond)
	require.True(t, ok)
	assert.True(t, board.NewBoard().IsLegalMove(move))
}

func TestGetMoveNoLegalMoves(t *testing.T) {
	s := NewAlphaBetaSearch(4, PieceEvaluator{})
	var b board.Board
	line := strings.Repeat("X", 32) + strings.Repeat("O", 32)
	require.NoError(t, b.SetBoardString(line, board.Black))

	move, ok := s.GetMove(b)
	assert.False(t, ok)
	assert.Zero(t, move)
}

func TestTTStoreMonotonicity(t *testing.T) {
	tt := NewTranspositionTable()
	b := board.NewBoard()

	tt.Store(b, 3, 10, UpperBound)
	tt.Store(b, 2, 999, Exact) // shallower: ignored
	entry, _ := tt.Lookup(b)
	assert.EqualValues(t, 3, entry.Depth)
	assert.Equal(t, int32(10), entry.Score)

	tt.Store(b, 3, 5, Exact) // equal depth, Exact beats UpperBound
	entry, _ = tt.Lookup(b)
	assert.Equal(t, Exact, entry.Type)
	assert.Equal(t, int32(5), entry.Score)

	tt.Store(b, 3, 1, UpperBound) // equal depth, Exact dominates: ignored
	entry, _ = tt.Lookup(b)
	assert.Equal(t, Exact, entry.Type)
	assert.Equal(t, int32(5), entry.Score)

	tt.Store(b, 4, -3, LowerBound) // strictly deeper: overwrites
	entry, _ = tt.Lookup(b)
	assert.EqualValues(t, 4, entry.Depth)
	assert.Equal(t, LowerBound, entry.Type)
}

func TestTTLowerBoundKeepsLargerScore(t *testing.T) {
	tt := NewTranspositionTable()
	b := board.NewBoard()

	tt.Store(b, 2, 10, LowerBound)
	tt.Store(b, 2, 5, LowerBound) // smaller: ignored
	entry, _ := tt.Lookup(b)
	assert.Equal(t, int32(10), entry.Score)

	tt.Store(b, 2, 20, LowerBound) // larger: overwrites
	entry, _ = tt.Lookup(b)
	assert.Equal(t, int32(20), entry.Score)
}

// Package board implements the Reversi (Othello) board representation
// using a pair of bitboards, with branch-free, direction-parallel move
// generation and move application.
package board

import (
	"fmt"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// Turn identifies the side to move.
type Turn uint8

const (
	Black Turn = iota
	White
)

// String renders a Turn for log lines and debug dumps.
func (t Turn) String() string {
	if t == Black {
		return "Black"
	}
	return "White"
}

// Color is the external, per-square projection of a board: a square is
// either empty or holds a Black or White stone. Named distinctly from
// Turn's Black/White constants, since both live at package scope.
type Color uint8

const (
	ColorEmpty Color = iota
	ColorBlack
	ColorWhite
)

const boardSize = 8

const (
	lineCharBlack = 'X'
	lineCharWhite = 'O'
	lineCharEmpty = '-'
)

// Direction masks used by move generation, shared across the 8 directions:
// horizontalWatch for left/right, verticalWatch for up/down, allWatch for
// the four diagonals. They exclude the squares from which a
// shift in that direction would wrap around a board edge.
const (
	horizontalWatch uint64 = 0x7E7E7E7E7E7E7E7E
	verticalWatch   uint64 = 0x00FFFFFFFFFFFF00
	allWatch        uint64 = 0x007E7E7E7E7E7E00
)

// Column/edge guards used by stone flipping, one per direction.
const (
	maskLeft       uint64 = 0xFEFEFEFEFEFEFEFE
	maskRight      uint64 = 0x7F7F7F7F7F7F7F7F
	maskUp         uint64 = 0xFFFFFFFFFFFFFF00
	maskDown       uint64 = 0x00FFFFFFFFFFFFFF
	maskUpperLeft  uint64 = 0xFEFEFEFEFEFEFE00
	maskUpperRight uint64 = 0x7F7F7F7F7F7F7F00
	maskLowerLeft  uint64 = 0x00FEFEFEFEFEFEFE
	maskLowerRight uint64 = 0x007F7F7F7F7F7F7F
)

// Board is the 8x8 Reversi position: two bitboards plus the side to
// move. Square i (0 = top-left, 63 = bottom-right) corresponds to bit
// 63-i, i.e. bit(i) = 1 << (63 - i). Player holds the stones of the
// side named by Turn; Opponent holds the other side's stones.
//
// Board is a plain value type (two uint64s and a byte): it compares and
// hashes structurally as a Go map key with no custom Hash/Eq needed, and
// is cheap to copy, which is what the search relies on when it clones a
// position into each child branch.
type Board struct {
	Player   uint64
	Opponent uint64
	Turn     Turn
}

// NewBoard returns the standard Reversi starting position, Black to move.
func NewBoard() Board {
	return Board{
		Player:   0x0000_0008_1000_0000,
		Opponent: 0x0000_0010_0800_0000,
		Turn:     Black,
	}
}

// Pos2Bit converts a square index in [0, 63] (0 = top-left) to its bit
// mask. The most significant bit represents square 0.
func Pos2Bit(pos int) uint64 {
	return 1 << uint(boardSize*boardSize-1-pos)
}

// GetBoard returns the raw (player, opponent, turn) triple.
func (b Board) GetBoard() (uint64, uint64, Turn) {
	return b.Player, b.Opponent, b.Turn
}

// SetBoard loads raw bitboard state. The caller is responsible for the
// no-overlap invariant (player & opponent == 0).
func (b *Board) SetBoard(player, opponent uint64, turn Turn) {
	b.Player = player
	b.Opponent = opponent
	b.Turn = turn
}

// SetBoardString parses a 64-character line ('X' black, 'O' white, '-'
// empty; character i is square i) and loads it as the position with the
// given side to move, normalizing Player/Opponent to that side. It
// returns an error if any other character appears or the line is not
// exactly 64 characters long.
func (b *Board) SetBoardString(line string, turn Turn) error {
	if len(line) != boardSize*boardSize {
		return fmt.Errorf("board: SetBoardString: expected %d characters, got %d", boardSize*boardSize, len(line))
	}
	var blackBoard, whiteBoard uint64
	for i, c := range line {
		pos := Pos2Bit(i)
		switch c {
		case lineCharBlack:
			blackBoard |= pos
		case lineCharWhite:
			whiteBoard |= pos
		case lineCharEmpty:
			// no stone
		default:
			return fmt.Errorf("board: SetBoardString: invalid character %q at index %d", c, i)
		}
	}
	if turn == Black {
		b.Player, b.Opponent = blackBoard, whiteBoard
	} else {
		b.Player, b.Opponent = whiteBoard, blackBoard
	}
	b.Turn = turn
	return nil
}

// String renders the board as the 64-character X/O/- line followed by
// the side to move, the wire format the arena writes to engine stdin
// (see the repository's move-request framing).
func (b Board) String() string {
	blackBoard, whiteBoard := b.colorBoards()
	buf := make([]byte, 0, boardSize*boardSize+2)
	for i := 0; i < boardSize*boardSize; i++ {
		pos := Pos2Bit(i)
		switch {
		case blackBoard&pos != 0:
			buf = append(buf, lineCharBlack)
		case whiteBoard&pos != 0:
			buf = append(buf, lineCharWhite)
		default:
			buf = append(buf, lineCharEmpty)
		}
	}
	turnChar := byte(lineCharBlack)
	if b.Turn == White {
		turnChar = lineCharWhite
	}
	buf = append(buf, ' ', turnChar)
	return string(buf)
}

// colorBoards returns (blackBoard, whiteBoard) regardless of whose turn
// it currently is.
func (b Board) colorBoards() (blackBoard, whiteBoard uint64) {
	if b.Turn == Black {
		return b.Player, b.Opponent
	}
	return b.Opponent, b.Player
}

// Hash returns an xxhash digest of the packed (player, opponent, turn)
// state, for log lines and debug output only; it is not used as the
// transposition table's key (Board's own structural equality already
// serves that as a plain Go map key).
func (b Board) Hash() uint64 {
	var buf [17]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(b.Player >> (8 * i))
		buf[8+i] = byte(b.Opponent >> (8 * i))
	}
	buf[16] = byte(b.Turn)
	return xxhash.Sum64(buf[:])
}

// Equal reports whether two boards are structurally identical.
func (b Board) Equal(other Board) bool {
	return b == other
}

// PlayerPieceNum returns the number of stones belonging to the side to move.
func (b Board) PlayerPieceNum() int { return bits.OnesCount64(b.Player) }

// OpponentPieceNum returns the number of stones belonging to the other side.
func (b Board) OpponentPieceNum() int { return bits.OnesCount64(b.Opponent) }

// BlackPieceNum returns the number of Black stones regardless of turn.
func (b Board) BlackPieceNum() int {
	if b.Turn == Black {
		return b.PlayerPieceNum()
	}
	return b.OpponentPieceNum()
}

// WhitePieceNum returns the number of White stones regardless of turn.
func (b Board) WhitePieceNum() int {
	if b.Turn == White {
		return b.PlayerPieceNum()
	}
	return b.OpponentPieceNum()
}

// PieceSum returns the total number of stones on the board.
func (b Board) PieceSum() int {
	return b.PlayerPieceNum() + b.OpponentPieceNum()
}

// DiffPieceNum returns the absolute difference between the two side's
// piece counts.
func (b Board) DiffPieceNum() int {
	d := b.PlayerPieceNum() - b.OpponentPieceNum()
	if d < 0 {
		return -d
	}
	return d
}

// GetBoardVec projects the board to a flat, row-major slice of Colors,
// one per square.
func (b Board) GetBoardVec() []Color {
	out := make([]Color, 0, boardSize*boardSize)
	for i := 0; i < boardSize*boardSize; i++ {
		pos := Pos2Bit(i)
		switch {
		case b.Player&pos != 0:
			out = append(out, ColorBlackOrWhite(b.Turn, true))
		case b.Opponent&pos != 0:
			out = append(out, ColorBlackOrWhite(b.Turn, false))
		default:
			out = append(out, ColorEmpty)
		}
	}
	return out
}

// ColorBlackOrWhite maps "is this the side named by turn" to a Color.
func ColorBlackOrWhite(turn Turn, isPlayerSide bool) Color {
	isBlack := (turn == Black) == isPlayerSide
	if isBlack {
		return ColorBlack
	}
	return ColorWhite
}

// GetBoardMatrix projects the board into three 8x8 planes: player
// stones, opponent stones, empty squares, in that order — the layout a
// neural-network-style evaluator or a host-language binding would
// consume.
func (b Board) GetBoardMatrix() [3][boardSize][boardSize]int {
	var m [3][boardSize][boardSize]int
	for i := 0; i < boardSize; i++ {
		for j := 0; j < boardSize; j++ {
			pos := Pos2Bit(i*boardSize + j)
			switch {
			case b.Player&pos != 0:
				m[0][i][j] = 1
			case b.Opponent&pos != 0:
				m[1][i][j] = 1
			default:
				m[2][i][j] = 1
			}
		}
	}
	return m
}

// GetLegalMoves returns a bitmask of legal destination squares for the
// side to move. For each of the 8 directions, the inner-square mask
// excludes squares where a shift would wrap the board edge; starting
// from Player shifted one step toward the direction and intersected with
// Opponent, the run is extended up to 5 further steps (the longest
// capturable run on an 8x8 board is 6 stones, so 5 extensions beyond the
// first step is exact) before being shifted once more into the empty
// squares to yield that direction's legal destinations.
func (b Board) GetLegalMoves() uint64 {
	blank := ^(b.Player | b.Opponent)
	var legal uint64

	// left
	watch := horizontalWatch & b.Opponent
	mask := watch & (b.Player << 1)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask << 1)
	}
	legal |= blank & (mask << 1)
	// right
	mask = watch & (b.Player >> 1)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask >> 1)
	}
	legal |= blank & (mask >> 1)
	// up
	watch = verticalWatch & b.Opponent
	mask = watch & (b.Player << 8)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask << 8)
	}
	legal |= blank & (mask << 8)
	// down
	mask = watch & (b.Player >> 8)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask >> 8)
	}
	legal |= blank & (mask >> 8)
	// upper left
	watch = allWatch & b.Opponent
	mask = watch & (b.Player << 9)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask << 9)
	}
	legal |= blank & (mask << 9)
	// upper right
	mask = watch & (b.Player << 7)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask << 7)
	}
	legal |= blank & (mask << 7)
	// lower left
	mask = watch & (b.Player >> 7)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask >> 7)
	}
	legal |= blank & (mask >> 7)
	// lower right
	mask = watch & (b.Player >> 9)
	for i := 0; i < 5; i++ {
		mask |= watch & (mask >> 9)
	}
	legal |= blank & (mask >> 9)

	return legal
}

// GetLegalMovesSlice returns the legal destination squares in ascending
// order.
func (b Board) GetLegalMovesSlice() []int {
	legal := b.GetLegalMoves()
	out := make([]int, 0, 8)
	for i := 0; i < boardSize*boardSize; i++ {
		if legal&Pos2Bit(i) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// IsLegalMove reports whether pos is a legal destination for the side to
// move.
func (b Board) IsLegalMove(pos int) bool {
	return b.GetLegalMoves()&Pos2Bit(pos) != 0
}

// flip returns the set of opponent stones captured by placing a stone at
// pos (a single-bit mask), by walking each of the 8 directions through
// runs of opponent stones until a non-opponent square is reached; if
// that square holds a player stone, the run is captured.
func (b Board) flip(pos uint64) uint64 {
	var flipped uint64

	type step struct {
		mask  uint64
		shift func(uint64) uint64
	}
	left := func(x uint64) uint64 { return x << 1 }
	right := func(x uint64) uint64 { return x >> 1 }
	up := func(x uint64) uint64 { return x << 8 }
	down := func(x uint64) uint64 { return x >> 8 }
	upperLeft := func(x uint64) uint64 { return x << 9 }
	upperRight := func(x uint64) uint64 { return x << 7 }
	lowerLeft := func(x uint64) uint64 { return x >> 7 }
	lowerRight := func(x uint64) uint64 { return x >> 9 }

	directions := []step{
		{maskLeft, left},
		{maskRight, right},
		{maskUp, up},
		{maskDown, down},
		{maskUpperLeft, upperLeft},
		{maskUpperRight, upperRight},
		{maskLowerLeft, lowerLeft},
		{maskLowerRight, lowerRight},
	}

	for _, d := range directions {
		mask := d.mask & d.shift(pos)
		var tmp uint64
		for mask&b.Opponent != 0 {
			tmp |= mask
			mask = d.mask & d.shift(mask)
		}
		if mask&b.Player != 0 {
			flipped |= tmp
		}
	}
	return flipped
}

// DoMove plays a stone at pos: flips the captured runs, swaps
// Player/Opponent, and toggles Turn. pos must be a legal square; an
// illegal square leaves the board unchanged and returns an error.
func (b *Board) DoMove(pos int) error {
	if pos < 0 || pos >= boardSize*boardSize {
		return fmt.Errorf("board: DoMove: position %d out of range [0, 63]", pos)
	}
	posBit := Pos2Bit(pos)
	if !b.IsLegalMove(pos) {
		return fmt.Errorf("board: DoMove: %d is not a legal move", pos)
	}
	flipped := b.flip(posBit)
	b.Player ^= flipped | posBit
	b.Opponent ^= flipped
	b.Player, b.Opponent = b.Opponent, b.Player
	b.Turn = otherTurn(b.Turn)
	return nil
}

// DoPass plays a pass. It is only legal when the side to move has no
// legal move; otherwise the board is left unchanged and an error is
// returned.
func (b *Board) DoPass() error {
	if b.GetLegalMoves() != 0 {
		return fmt.Errorf("board: DoPass: legal moves exist, pass is not allowed")
	}
	b.Player, b.Opponent = b.Opponent, b.Player
	b.Turn = otherTurn(b.Turn)
	return nil
}

func otherTurn(t Turn) Turn {
	if t == Black {
		return White
	}
	return Black
}

// Swapped returns the board with Player and Opponent exchanged and Turn
// flipped — the position as seen from the other side, used to evaluate
// or test legality for the side not currently to move.
func (b Board) Swapped() Board {
	return Board{Player: b.Opponent, Opponent: b.Player, Turn: otherTurn(b.Turn)}
}

// IsGameOver reports whether neither side has a legal move from the
// current position.
func (b Board) IsGameOver() bool {
	if b.GetLegalMoves() != 0 {
		return false
	}
	return b.Swapped().GetLegalMoves() == 0
}

// IsWin reports whether, at game over, the side to move has strictly
// more stones than the opponent.
func (b Board) IsWin() bool {
	return b.PlayerPieceNum() > b.OpponentPieceNum()
}

// IsLose reports whether, at game over, the side to move has strictly
// fewer stones than the opponent.
func (b Board) IsLose() bool {
	return b.PlayerPieceNum() < b.OpponentPieceNum()
}

// GetChildBoards returns the successor boards reached by playing each
// legal move in ascending square order. A nil slice signals that there
// are no legal moves and the caller must pass instead.
func (b Board) GetChildBoards() []Board {
	moves := b.GetLegalMovesSlice()
	if len(moves) == 0 {
		return nil
	}
	children := make([]Board, 0, len(moves))
	for _, pos := range moves {
		child := b
		// The move was just read off b's own legal-move mask, so it
		// cannot fail here.
		_ = child.DoMove(pos)
		children = append(children, child)
	}
	return children
}

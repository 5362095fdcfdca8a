package search

import "github.com/hailam/reversi-arena/internal/board"

// EntryType classifies a stored score: whether the search exhausted its
// window (Exact), was cut short by a beta cutoff (LowerBound), or failed
// low against alpha (UpperBound).
type EntryType uint8

const (
	Exact EntryType = iota
	LowerBound
	UpperBound
)

func (t EntryType) String() string {
	switch t {
	case Exact:
		return "Exact"
	case LowerBound:
		return "LowerBound"
	case UpperBound:
		return "UpperBound"
	default:
		return "Unknown"
	}
}

// TTEntry is a single transposition table record.
type TTEntry struct {
	Depth uint
	Score int32
	Type  EntryType
}

// maxTableSize is the soft capacity bound on the transposition table.
const maxTableSize = 60_000

// TranspositionTable is a bounded mapping from Board to TTEntry, owned
// by a single AlphaBetaSearch instance for the lifetime of that search.
// Unlike the teacher's fixed-size, always-replace array keyed by a
// truncated Zobrist tag (internal/engine/transposition.go in the
// pre-transform tree), this table is backed directly by a Go map keyed
// on the Board value itself — Board is a plain comparable struct, so it
// hashes and compares structurally with no custom code, and the map
// gives an exact implementation of the depth/bound-typed merge policy
// below rather than the teacher's simpler age-based replacement.
type TranspositionTable struct {
	table map[board.Board]TTEntry
}

// NewTranspositionTable returns an empty transposition table.
func NewTranspositionTable() *TranspositionTable {
	return &TranspositionTable{table: make(map[board.Board]TTEntry)}
}

// Lookup returns the entry stored for b, if any.
func (tt *TranspositionTable) Lookup(b board.Board) (TTEntry, bool) {
	entry, ok := tt.table[b]
	return entry, ok
}

// Len returns the number of entries currently stored.
func (tt *TranspositionTable) Len() int {
	return len(tt.table)
}

// Clear empties the table.
func (tt *TranspositionTable) Clear() {
	tt.table = make(map[board.Board]TTEntry)
}

// Store inserts or merges a new entry for b, preserving whichever entry
// is more informative:
//
//  1. If the existing entry has a strictly greater depth, the new entry
//     is ignored.
//  2. If depths are equal: an existing Exact entry is kept; a new Exact
//     entry always overwrites; two LowerBounds keep the larger score;
//     two UpperBounds keep the smaller score; any other combination of
//     non-Exact bounds overwrites.
//  3. Otherwise (the new entry is strictly deeper), it overwrites.
//
// Before inserting a new key once the table is at or above its soft
// capacity, opportunistic eviction removes every entry whose board has
// already fallen behind the current search's reachable game phase
// (piece_sum strictly less than the new board's piece_sum minus the new
// depth) — positions from earlier in the game that this search can no
// longer transpose into.
func (tt *TranspositionTable) Store(b board.Board, depth uint, score int32, entryType EntryType) {
	if len(tt.table) >= maxTableSize {
		tt.evictEarlyEntries(b, depth)
	}

	if existing, ok := tt.table[b]; ok {
		if existing.Depth > depth {
			return
		}
		if existing.Depth == depth {
			switch {
			case existing.Type == Exact:
				return
			case entryType == Exact:
				// overwrite below
			case existing.Type == LowerBound && entryType == LowerBound:
				if existing.Score >= score {
					return
				}
			case existing.Type == UpperBound && entryType == UpperBound:
				if existing.Score <= score {
					return
				}
			default:
				// mixed non-Exact bound types: overwrite
			}
		}
	}

	tt.table[b] = TTEntry{Depth: depth, Score: score, Type: entryType}
}

func (tt *TranspositionTable) evictEarlyEntries(current board.Board, depth uint) {
	threshold := current.PieceSum() - int(depth)
	for key := range tt.table {
		if key.PieceSum() < threshold {
			delete(tt.table, key)
		}
	}
}

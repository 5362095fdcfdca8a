// Command reversi-reference-engine is a minimal engine speaking the
// arena's stdio protocol, backed by internal/search. It serves as a
// baseline opponent for LocalArena matches and manual play; no test in
// this module spawns it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/reversi-arena/internal/board"
	"github.com/hailam/reversi-arena/internal/search"
)

const boardLineLen = 64

func main() {
	timeout := flag.Duration("move-timeout", 2*time.Second, "per-move iterative-deepening budget")
	flag.Parse()
	// The arena appends a trailing BLACK/WHITE token; this engine infers
	// turn from each board line it receives instead, so the token is
	// only useful for a human reading the process argv.

	// maxDepth only bounds GetMove's fixed-depth mode; this engine always
	// calls GetMoveWithIterDeepening, which paces itself by move-timeout.
	const unusedFixedDepth = 8
	s := search.NewAlphaBetaSearch(unusedFixedDepth, search.LegalNumEvaluator{})

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 4096), 4096)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "ping":
			fmt.Fprintln(out, "pong")
		case line == "QUIT":
			return
		case line == "PASS":
			fmt.Fprintln(out, "ack")
		default:
			move, ok := chooseMove(s, line, *timeout)
			if !ok {
				fmt.Fprintln(out, "-1")
			} else {
				fmt.Fprintln(out, strconv.Itoa(move))
			}
		}
		out.Flush()
	}
}

// chooseMove parses a wire-format board line ("<64 chars> <turn char>")
// and picks a move within timeout.
func chooseMove(s *search.AlphaBetaSearch, line string, timeout time.Duration) (int, bool) {
	if len(line) < boardLineLen+2 {
		return 0, false
	}
	turn := board.Black
	if line[len(line)-1] == 'O' {
		turn = board.White
	}
	var b board.Board
	if err := b.SetBoardString(line[:boardLineLen], turn); err != nil {
		return 0, false
	}
	return s.GetMoveWithIterDeepening(b, timeout)
}

// Package arenalog wires up the shared logger every binary in this
// module uses. The teacher has no single structured logger of its own
// (cmd/chessplay-uci/main.go logs ad hoc via the standard log package),
// but the wider example pack's FrankyGo engine reaches for
// github.com/op/go-logging for exactly this ambient need in a chess
// engine CLI; this package adopts that library and names one logger per
// component, the way FrankyGo names a logger per package.
package arenalog

import (
	"os"

	logging "github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} [%{module}] %{message}`,
)

// Init installs the shared backend and verbosity for every logger this
// package hands out. Call it once at process startup, before logging
// any message through a logger obtained from For.
func Init(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.INFO, "")
	}
	logging.SetBackend(leveled)
}

// For returns the named logger for a component (e.g. "arena",
// "netarena", "search"). Safe to call before Init; until Init runs,
// messages go to go-logging's default backend, which writes every level
// to stderr.
func For(component string) *logging.Logger {
	return logging.MustGetLogger(component)
}

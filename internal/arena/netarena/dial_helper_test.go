package netarena

import (
	"errors"
	"net"
)

var (
	errDialFailed     = errors.New("netarena test: dial never succeeded")
	errUnexpectedLine = errors.New("netarena test: expected a super-command line")
	errTurnMismatch   = errors.New("netarena test: move command mover disagreed with mirror turn")
)

func dialRetry(addr string) (net.Conn, error) {
	return net.Dial("tcp", addr)
}

package transport

import (
	"context"
	"errors"
	"net"
)

// Sentinel errors for the turn transport. Callers classify failures with
// errors.Is to pick recovery copy: connectivity problems and processing
// errors read differently to the user.
var (
	// ErrTimeout indicates the exchange exceeded the client deadline.
	ErrTimeout = errors.New("turn transport: timeout")

	// ErrUnreachable indicates the backend could not be reached at all.
	ErrUnreachable = errors.New("turn transport: backend unreachable")

	// ErrServer indicates a non-2xx status or a well-formed error body.
	ErrServer = errors.New("turn transport: server error")

	// ErrMalformed indicates a 2xx response whose body could not be parsed
	// into {message, state}. This is a protocol mismatch, not a transient
	// failure, and is logged distinctly.
	ErrMalformed = errors.New("turn transport: malformed response")
)

// classifyDialError maps a round-trip error to ErrTimeout or ErrUnreachable.
func classifyDialError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrUnreachable
}

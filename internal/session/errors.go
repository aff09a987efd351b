package session

import "errors"

// Sentinel errors for session operations. Check with errors.Is().
var (
	// ErrSessionNotFound indicates no session exists for the given id,
	// e.g. a stale or bookmarked reference. Callers should send the user
	// back to the configuration entry point.
	ErrSessionNotFound = errors.New("session not found")

	// ErrTurnPending indicates a generator request is still outstanding.
	// Requests are serialized per session; the caller should wait for the
	// opponent's turn before submitting another argument.
	ErrTurnPending = errors.New("opponent turn still pending")

	// ErrInvalidPhase indicates an event arrived in a phase that does not
	// accept it (e.g. submitting a turn after scoring began).
	ErrInvalidPhase = errors.New("invalid session phase")
)

// ValidationError is a recoverable input problem: missing topic or stance,
// or too few turns to end a debate. It never transitions the session.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

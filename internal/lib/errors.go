package lib

import (
	"errors"
	"fmt"
)

// Failure categories of a sync run.
var (
	ErrPreconditionMissing  = errors.New("precondition missing")
	ErrDirectoryUnavailable = errors.New("directory unavailable")
	ErrAuthFailed           = errors.New("authentication failed")
	ErrTransportFailed      = errors.New("transport failed")
	ErrProtocolViolation    = errors.New("protocol violation")
)

// TransportError is an HTTP-level upload failure. A Code of 0 means no
// response was received.
type TransportError struct {
	Code int
	Body string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %v", ErrTransportFailed, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrTransportFailed, e.Code, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailed
}

// ErrorKind names the failure category of err, or "unknown".
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrPreconditionMissing):
		return "precondition_missing"
	case errors.Is(err, ErrDirectoryUnavailable):
		return "directory_unavailable"
	case errors.Is(err, ErrAuthFailed):
		return "auth_failed"
	case errors.Is(err, ErrTransportFailed):
		return "transport_failed"
	case errors.Is(err, ErrProtocolViolation):
		return "protocol_violation"
	}
	return "unknown"
}

package domain

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error surfaced to a caller unwraps to exactly one of
// these four, so callers branch with errors.Is instead of inspecting strings.
var (
	ErrAuthExpired  = errors.New("authentication expired")
	ErrValidation   = errors.New("validation failed")
	ErrTransport    = errors.New("transport failure")
	ErrPrecondition = errors.New("precondition failed")
)

// Local preconditions, rejected before any network call. Each wraps
// ErrPrecondition so both the specific and the generic check hold.
var (
	ErrNoSession         = fmt.Errorf("%w: not logged in", ErrPrecondition)
	ErrUploadInFlight    = fmt.Errorf("%w: an upload for this job is already in progress", ErrPrecondition)
	ErrReanalyzeInFlight = fmt.Errorf("%w: a reanalysis for this candidate is already in progress", ErrPrecondition)
	ErrUnsupportedResume = fmt.Errorf("%w: resume must be a PDF or Word document", ErrPrecondition)
)

// ErrSessionRecordNotFound is returned by token stores when no session has
// been persisted under the requested key.
var ErrSessionRecordNotFound = errors.New("session record not found")

// RequestError is the typed failure the gateway returns for any request that
// did not succeed. Message carries the server-provided detail when one was
// available; Status is zero when no response was received.
type RequestError struct {
	Kind    error
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = genericMessage(e.Kind)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

func genericMessage(kind error) string {
	switch kind {
	case ErrAuthExpired:
		return "session expired, please log in again"
	case ErrValidation:
		return "the server rejected the request"
	case ErrTransport:
		return "could not reach the hiring platform, try again"
	default:
		return "request failed"
	}
}

// Precondition builds a local-precondition failure with a display message.
func Precondition(message string) error {
	return &RequestError{Kind: ErrPrecondition, Message: message}
}

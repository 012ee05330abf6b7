package service

import "errors"

// Kind tags a domain error so the transport boundary can map it to a status
// code without inspecting message text.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
)

// Error is a tagged domain failure. Anything else escaping a service is an
// unexpected internal failure and must be masked at the boundary.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func Conflict(message string) error { return &Error{Kind: KindConflict, Message: message} }

func NotFound(message string) error { return &Error{Kind: KindNotFound, Message: message} }

func Unauthenticated(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) error { return &Error{Kind: KindForbidden, Message: message} }

// AsError unwraps a domain error, reporting false for unexpected failures.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

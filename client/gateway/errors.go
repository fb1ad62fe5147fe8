package gateway

import "fmt"

type ErrorKind string

const (
	// ErrNetwork covers transport failures with no usable response.
	ErrNetwork ErrorKind = "network"
	// ErrValidation covers malformed or incomplete requests.
	ErrValidation ErrorKind = "validation"
	// ErrAuthorization covers missing or insufficient credentials.
	ErrAuthorization ErrorKind = "authorization"
	// ErrInvalidTransition covers disallowed status changes.
	ErrInvalidTransition ErrorKind = "invalid_transition"
	// ErrNotFound covers stale identifiers.
	ErrNotFound ErrorKind = "not_found"
	// ErrInternal covers everything the server reports as its own fault.
	ErrInternal ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s: %s", e.Kind, e.Message)
}

// KindOf extracts the error kind, or ErrNetwork for wrapped transport
// errors that never produced a response.
func KindOf(err error) ErrorKind {
	if gwErr, ok := err.(*Error); ok {
		return gwErr.Kind
	}
	return ErrNetwork
}

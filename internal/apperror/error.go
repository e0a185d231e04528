// Package apperror defines the errors surfaced to clients and their HTTP statuses.
package apperror

import "net/http"

// Kind classifies an application error.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuthentication
	KindInvalidCode
	KindMailDispatch
	KindNotFound
	KindPersistence
	KindSession
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuthentication:
		return "authentication"
	case KindInvalidCode:
		return "invalid_code"
	case KindMailDispatch:
		return "mail_dispatch"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	case KindSession:
		return "session"
	default:
		return "internal"
	}
}

// Error is an error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Kind sentinels for errors.Is. They match any Error of the same kind.
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrInvalidCode    = &Error{Kind: KindInvalidCode}
	ErrMailDispatch   = &Error{Kind: KindMailDispatch}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrPersistence    = &Error{Kind: KindPersistence}
	ErrSession        = &Error{Kind: KindSession}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels, which carry no message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidCode:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewConflict() *Error {
	return &Error{Kind: KindConflict, Message: "Username or email is already registered."}
}

// NewAuthentication uses one message for every credential failure so that
// responses do not reveal which usernames exist.
func NewAuthentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func NewInvalidCode() *Error {
	return &Error{Kind: KindInvalidCode, Message: "Invalid verification code."}
}

func NewMailDispatch(err error) *Error {
	return &Error{Kind: KindMailDispatch, Message: "Failed to send verification email.", Err: err}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewPersistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

func NewSession(message string, err error) *Error {
	return &Error{Kind: KindSession, Message: message, Err: err}
}

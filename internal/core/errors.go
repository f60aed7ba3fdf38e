// internal/core/errors.go
// Domain error kinds shared by every engine. These are not transport errors;
// the rendezvous and admin dispatchers translate a *core.Error into whatever
// their wire format expects.

package core

import "fmt"

// Kind enumerates the domain-level error categories
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindInvalidIndex
	KindAccessDenied
	KindSessionVoid
	KindSessionFull
	KindNotFriend
	KindNotParticipant
	KindAlreadyParticipant
	KindInvalidDataSize
	KindUnderMaintenance
	KindPermissionDenied
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindInvalidIndex:
		return "InvalidIndex"
	case KindAccessDenied:
		return "AccessDenied"
	case KindSessionVoid:
		return "SessionVoid"
	case KindSessionFull:
		return "SessionFull"
	case KindNotFriend:
		return "NotFriend"
	case KindNotParticipant:
		return "NotParticipant"
	case KindAlreadyParticipant:
		return "AlreadyParticipant"
	case KindInvalidDataSize:
		return "InvalidDataSize"
	case KindUnderMaintenance:
		return "UnderMaintenance"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindUnauthenticated:
		return "Unauthenticated"
	default:
		return "Internal"
	}
}

// Error is the typed domain error every engine returns instead of a bare
// sentinel. Kind drives the mapping to a rendezvous/admin error code; Err
// carries the wrapped cause when one exists (persistence/external failures).
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a domain error with no wrapped cause
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds a domain error around a lower-level cause, used at persistence
// and external-RPC boundaries
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err is a *Error of the given kind
func Is(err error, kind Kind) bool {
	de, ok := err.(*Error)
	return ok && de.Kind == kind
}

var (
	ErrInvalidArgument    = New(KindInvalidArgument, "invalid argument")
	ErrInvalidIndex       = New(KindInvalidIndex, "not found")
	ErrAccessDenied       = New(KindAccessDenied, "access denied")
	ErrSessionVoid        = New(KindSessionVoid, "gathering does not exist")
	ErrSessionFull        = New(KindSessionFull, "gathering is full")
	ErrNotFriend          = New(KindNotFriend, "requester is not a friend of the owner")
	ErrNotParticipant     = New(KindNotParticipant, "pid is not a participant")
	ErrAlreadyParticipant = New(KindAlreadyParticipant, "pid is already a participant")
	ErrInvalidDataSize    = New(KindInvalidDataSize, "blob has the wrong size")
	ErrUnderMaintenance   = New(KindUnderMaintenance, "server is under maintenance")
	ErrPermissionDenied   = New(KindPermissionDenied, "pid is not whitelisted")
	ErrUnauthenticated    = New(KindUnauthenticated, "missing admin credential")
)

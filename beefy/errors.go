package beefy

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a worker-level failure so callers can branch on
// category without string matching.
type ErrorKind int

const (
	// ErrUninitSession means the oracle was queried before any session
	// was installed. Recoverable: the caller skips the current action.
	ErrUninitSession ErrorKind = iota
	// ErrBackend means a header fetch or append to the backend store
	// failed. Recoverable per-operation: skip the current vote.
	ErrBackend
	// ErrKeystore means the keystore is absent, or holds no local
	// authority for the active session. Recoverable: skip voting.
	ErrKeystore
	// ErrSignature means a signing or decoding operation failed.
	ErrSignature
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUninitSession:
		return "uninit_session"
	case ErrBackend:
		return "backend"
	case ErrKeystore:
		return "keystore"
	case ErrSignature:
		return "signature"
	default:
		return "unknown"
	}
}

// Error wraps a worker failure with its kind, so errors.Is can test for a
// category and the message still carries the operation's detail.
type Error struct {
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("beefy: %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("beefy: %s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, Sentinel(ErrKeystore)) work by comparing kinds,
// matching against the sentinel that Sentinel returns for a kind.
func (e *Error) Is(target error) bool {
	var k kindSentinel
	if errors.As(target, &k) {
		return e.Kind == k.kind
	}
	return false
}

type kindSentinel struct{ kind ErrorKind }

func (s kindSentinel) Error() string { return s.kind.String() }

// Sentinel returns a value usable with errors.Is to test for a kind:
//
//	if errors.Is(err, beefy.Sentinel(beefy.ErrKeystore)) { ... }
func Sentinel(kind ErrorKind) error { return kindSentinel{kind: kind} }

func newError(kind ErrorKind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

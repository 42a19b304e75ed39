// Package fault classifies errors by cause so callers can branch on them.
//
// Every failure surfaced to the user carries one Kind. Network and server
// failures come from the ledger and faucet clients, input failures from the
// typed parsing layer, and state failures from out-of-order calls on stateful
// components such as payment channels.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the cause of a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindNotFound
	KindRejected
	KindInput
	KindState
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNetwork  = errors.New("network error")
	ErrNotFound = errors.New("not found")
	ErrRejected = errors.New("transaction rejected")
	ErrInput    = errors.New("invalid input")
	ErrState    = errors.New("invalid state")
)

// String returns the short label printed in front of error messages.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not found"
	case KindRejected:
		return "rejected"
	case KindInput:
		return "input"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindNotFound:
		return ErrNotFound
	case KindRejected:
		return ErrRejected
	case KindInput:
		return ErrInput
	case KindState:
		return ErrState
	default:
		return nil
	}
}

// Error is a classified failure.
type Error struct {
	Kind Kind
	// Op names the failing operation, e.g. "load account" or "parse amount".
	Op  string
	Err error
	// Codes holds server result codes for rejected transactions, transaction
	// code first, then one entry per operation.
	Codes []string
}

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.String())
	}
	if len(e.Codes) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Codes, ", "))
	}
	return b.String()
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// New returns a classified error wrapping err.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf returns a classified error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Network wraps a transport failure.
func Network(op string, err error) *Error { return New(KindNetwork, op, err) }

// NotFound wraps a missing-resource failure.
func NotFound(op string, err error) *Error { return New(KindNotFound, op, err) }

// Rejected wraps a ledger rejection with optional result codes.
func Rejected(op string, err error, codes ...string) *Error {
	e := New(KindRejected, op, err)
	e.Codes = codes
	return e
}

// Input wraps a parsing failure.
func Input(op string, err error) *Error { return New(KindInput, op, err) }

// State wraps an out-of-order call.
func State(op string, err error) *Error { return New(KindState, op, err) }

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// CodesOf returns the result codes of the first *Error in err's chain.
func CodesOf(err error) []string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Codes
	}
	return nil
}

// Package failure defines the typed outcomes a project selection can fail with.
// Callers match on the Kind to choose what to tell the user.
package failure

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies a class of selection failure.
type Kind string

const (
	// KindConfiguration marks malformed input: negative pay or hours, a
	// threshold outside [0,100], a non-finite budget. Rejected before solving.
	KindConfiguration Kind = "ConfigurationError"

	// KindNoEligibleItems marks an empty pool, either because no candidates
	// were supplied or because none met the skill threshold.
	KindNoEligibleItems Kind = "NoEligibleItems"

	// KindProblemTooLarge marks a dynamic-programming table that would exceed
	// its configured size. Recoverable via branch-and-bound.
	KindProblemTooLarge Kind = "ProblemTooLarge"

	// KindSolver marks an internal or numerical solver failure, including an
	// expired deadline.
	KindSolver Kind = "SolverError"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrConfiguration   = &Error{Kind: KindConfiguration}
	ErrNoEligibleItems = &Error{Kind: KindNoEligibleItems}
	ErrProblemTooLarge = &Error{Kind: KindProblemTooLarge}
	ErrSolver          = &Error{Kind: KindSolver}
)

// Error is a selection failure carrying a human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if b.Len() == 0 {
		b.WriteString(string(e.Kind))
	}
	if len(e.Details) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Details, "; "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a failure of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a failure of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a failure of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap creates a failure of the given kind around an underlying error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// WithDetails appends detail lines to the failure.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

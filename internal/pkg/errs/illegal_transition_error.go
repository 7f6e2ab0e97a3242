package errs

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is the sentinel wrapped by every IllegalTransitionError.
var ErrIllegalTransition = errors.New("illegal transition")

// IllegalTransitionError reports a status change the order state machine rejects.
type IllegalTransitionError struct {
	Kind  string
	From  string
	To    string
	Cause error
}

func NewIllegalTransitionError(kind, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{
		Kind: kind,
		From: from,
		To:   to,
	}
}

func NewIllegalTransitionErrorWithCause(kind, from, to string, cause error) *IllegalTransitionError {
	return &IllegalTransitionError{
		Kind:  kind,
		From:  from,
		To:    to,
		Cause: cause,
	}
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s order cannot move from %s to %s", ErrIllegalTransition, e.Kind, e.From, e.To)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

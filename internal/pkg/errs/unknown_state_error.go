package errs

import (
	"errors"
	"fmt"
)

// ErrUnknownState is the sentinel wrapped by every UnknownStateError.
var ErrUnknownState = errors.New("unknown state")

// UnknownStateError reports a current status that has no row in the transition table.
type UnknownStateError struct {
	Kind  string
	State string
}

func NewUnknownStateError(kind, state string) *UnknownStateError {
	return &UnknownStateError{
		Kind:  kind,
		State: state,
	}
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s: '%s' for %s", ErrUnknownState, e.State, e.Kind)
}

func (e *UnknownStateError) Unwrap() error {
	return ErrUnknownState
}

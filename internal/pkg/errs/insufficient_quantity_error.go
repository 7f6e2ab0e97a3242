package errs

import (
	"errors"
	"fmt"
)

// ErrInsufficientQuantity is the sentinel wrapped by every InsufficientQuantityError.
var ErrInsufficientQuantity = errors.New("insufficient quantity")

// InsufficientQuantityError reports a stock or supply shortfall.
type InsufficientQuantityError struct {
	ParamName string
	Requested int
	Available int
	Cause     error
}

func NewInsufficientQuantityError(paramName string, requested, available int) *InsufficientQuantityError {
	return &InsufficientQuantityError{
		ParamName: paramName,
		Requested: requested,
		Available: available,
	}
}

func NewInsufficientQuantityErrorWithCause(
	paramName string,
	requested, available int,
	cause error,
) *InsufficientQuantityError {
	return &InsufficientQuantityError{
		ParamName: paramName,
		Requested: requested,
		Available: available,
		Cause:     cause,
	}
}

func (e *InsufficientQuantityError) Error() string {
	msg := fmt.Sprintf("%s: %s, requested %d, available %d",
		ErrInsufficientQuantity, e.ParamName, e.Requested, e.Available)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *InsufficientQuantityError) Unwrap() error {
	return ErrInsufficientQuantity
}

package controlorder

import (
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"
)

// Type discriminates production from assembly control orders.
type Type string

const (
	Production Type = "PRODUCTION"
	Assembly   Type = "ASSEMBLY"
)

// ParseType converts case-insensitive input into PRODUCTION or ASSEMBLY.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate accepts PRODUCTION and ASSEMBLY.
func (t Type) Validate() error {
	switch t {
	case Production, Assembly:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a control order type", string(t)))
	}
}

// String returns the wire representation.
func (t Type) String() string {
	return string(t)
}

// NumberPrefix is the prefix of control order numbers of this type.
func (t Type) NumberPrefix() string {
	if t == Assembly {
		return "ACO"
	}
	return "PCO"
}

// Kind selects the transition table.
func (t Type) Kind() statemachine.Kind {
	if t == Assembly {
		return statemachine.Assembly
	}
	return statemachine.Control
}

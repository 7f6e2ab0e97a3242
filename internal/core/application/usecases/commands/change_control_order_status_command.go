package commands

import (
	"errors"
	"fmt"
	"strings"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
	"manufacturing/internal/pkg/guard"
)

var ErrChangeControlOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeControlOrderStatusCommand must be created via NewChangeControlOrderStatusCommand constructor",
)

// ControlOrderAction is an operator action on a control order.
type ControlOrderAction string

const (
	StartControlOrder    ControlOrderAction = "start"
	CompleteControlOrder ControlOrderAction = "complete"
	HaltControlOrder     ControlOrderAction = "halt"
	ResumeControlOrder   ControlOrderAction = "resume"
	CancelControlOrder   ControlOrderAction = "cancel"
)

func ParseControlOrderAction(s string) (ControlOrderAction, error) {
	action := ControlOrderAction(strings.ToLower(strings.TrimSpace(s)))
	switch action {
	case StartControlOrder, CompleteControlOrder, HaltControlOrder, ResumeControlOrder, CancelControlOrder:
		return action, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a control order action", s))
	}
}

// ChangeControlOrderStatusCommand applies action to a control order. Reason is
// recorded in the operator notes for halt and cancel.
type ChangeControlOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	action  ControlOrderAction
	reason  string

	guard guard.ConstructorGuard
}

func NewChangeControlOrderStatusCommand(
	orderID kernel.UUID,
	action ControlOrderAction,
	reason string,
) (ChangeControlOrderStatusCommand, error) {
	_, actionErr := ParseControlOrderAction(string(action))
	if err := errors.Join(orderID.Validate(), actionErr); err != nil {
		return ChangeControlOrderStatusCommand{}, err
	}

	return ChangeControlOrderStatusCommand{
		orderID: orderID,
		action:  action,
		reason:  reason,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeControlOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeControlOrderStatusCommandIsNotConstructed)
}

func (c ChangeControlOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeControlOrderStatusCommand) Action() ControlOrderAction {
	return c.action
}

func (c ChangeControlOrderStatusCommand) Reason() string {
	return c.reason
}

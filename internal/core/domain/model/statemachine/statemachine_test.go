package statemachine_test

import (
	"testing"

	"manufacturing/internal/core/domain/model/statemachine"
	"manufacturing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKinds = []statemachine.Kind{
	statemachine.Manufacturing,
	statemachine.Assembly,
	statemachine.Control,
	statemachine.Supplier,
	statemachine.CustomerOrder,
	statemachine.WarehouseOrder,
	statemachine.ProductionOrder,
	statemachine.SupplyOrder,
}

func TestValidate_SucceedsExactlyForTableEntries(t *testing.T) {
	for _, kind := range allKinds {
		states := statemachine.States(kind)
		require.NotEmpty(t, states, kind)

		for _, from := range states {
			allowed := map[statemachine.State]bool{}
			for _, to := range statemachine.Next(kind, from) {
				allowed[to] = true
			}

			for _, to := range states {
				err := statemachine.Validate(kind, from, to)
				if allowed[to] {
					assert.NoError(t, err, "%s: %s -> %s", kind, from, to)
				} else {
					assert.ErrorIs(t, err, errs.ErrIllegalTransition, "%s: %s -> %s", kind, from, to)
				}
			}
		}
	}
}

func TestValidate_CanonicalTables(t *testing.T) {
	for _, kind := range []statemachine.Kind{statemachine.Manufacturing, statemachine.Assembly, statemachine.Control} {
		t.Run(kind.String(), func(t *testing.T) {
			require.NoError(t, statemachine.Validate(kind, statemachine.Created, statemachine.Assigned))
			require.NoError(t, statemachine.Validate(kind, statemachine.Created, statemachine.Cancelled))
			require.NoError(t, statemachine.Validate(kind, statemachine.Assigned, statemachine.InProgress))
			require.NoError(t, statemachine.Validate(kind, statemachine.InProgress, statemachine.Completed))
			require.NoError(t, statemachine.Validate(kind, statemachine.InProgress, statemachine.Halted))
			require.NoError(t, statemachine.Validate(kind, statemachine.Halted, statemachine.InProgress))
			require.NoError(t, statemachine.Validate(kind, statemachine.Halted, statemachine.Cancelled))

			require.ErrorIs(t, statemachine.Validate(kind, statemachine.Assigned, statemachine.Completed), errs.ErrIllegalTransition)
			require.ErrorIs(t, statemachine.Validate(kind, statemachine.InProgress, statemachine.Cancelled), errs.ErrIllegalTransition)

			assert.True(t, statemachine.IsTerminal(kind, statemachine.Completed))
			assert.True(t, statemachine.IsTerminal(kind, statemachine.Cancelled))
			assert.False(t, statemachine.IsTerminal(kind, statemachine.Halted))
		})
	}
}

func TestValidate_SupplierTable(t *testing.T) {
	t.Run("should allow successive partial deliveries", func(t *testing.T) {
		require.NoError(t, statemachine.Validate(statemachine.Supplier, statemachine.PartiallyReceived, statemachine.PartiallyReceived))
	})

	t.Run("should treat RECEIVED and CANCELLED as terminal", func(t *testing.T) {
		assert.True(t, statemachine.IsTerminal(statemachine.Supplier, statemachine.Received))
		assert.True(t, statemachine.IsTerminal(statemachine.Supplier, statemachine.Cancelled))
		require.ErrorIs(t,
			statemachine.Validate(statemachine.Supplier, statemachine.Received, statemachine.Sent),
			errs.ErrIllegalTransition)
	})

	t.Run("should not skip sending", func(t *testing.T) {
		require.ErrorIs(t,
			statemachine.Validate(statemachine.Supplier, statemachine.Created, statemachine.Received),
			errs.ErrIllegalTransition)
	})
}

func TestValidate_UnknownState(t *testing.T) {
	err := statemachine.Validate(statemachine.Supplier, statemachine.Assigned, statemachine.Sent)

	var unknown *errs.UnknownStateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "supplier", unknown.Kind)
	assert.Equal(t, "ASSIGNED", unknown.State)
	assert.Equal(t, "unknown state: 'ASSIGNED' for supplier", err.Error())
}

func TestValidate_UnknownKind(t *testing.T) {
	err := statemachine.Validate(statemachine.Kind("teleport"), statemachine.Created, statemachine.Assigned)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestValidate_SupplyOrderCancelsFromAnyNonTerminal(t *testing.T) {
	for _, from := range []statemachine.State{statemachine.Pending, statemachine.InProgress} {
		require.NoError(t, statemachine.Validate(statemachine.SupplyOrder, from, statemachine.Cancelled))
	}
	for _, from := range []statemachine.State{statemachine.Fulfilled, statemachine.Rejected, statemachine.Cancelled} {
		require.ErrorIs(t, statemachine.Validate(statemachine.SupplyOrder, from, statemachine.Cancelled), errs.ErrIllegalTransition)
	}
}

func TestNext_ReturnsCopy(t *testing.T) {
	next := statemachine.Next(statemachine.Control, statemachine.Created)
	next[0] = statemachine.Completed

	assert.Equal(t, statemachine.Assigned, statemachine.Next(statemachine.Control, statemachine.Created)[0])
}

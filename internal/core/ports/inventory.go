package ports

import (
	"context"

	"manufacturing/internal/core/domain/model/kernel"
)

// Inventory debits and credits workstation stock.
type Inventory interface {
	// UpdateStock debits quantity of itemID at the workstation. It returns
	// false when the stock is insufficient and nothing was debited.
	UpdateStock(ctx context.Context, workstationID kernel.WorkstationID, itemType string, itemID int64, quantity int) (bool, error)

	// RestoreStock credits quantity back. It compensates an earlier debit.
	RestoreStock(ctx context.Context, workstationID kernel.WorkstationID, itemType string, itemID int64, quantity int) error
}

// Package inventory adapts the inventory service's stock records to
// ports.Inventory.
package inventory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/core/ports"
	"manufacturing/internal/pkg/httpclient"
)

type doer interface {
	Get(ctx context.Context, operation, path string, out any) error
	Post(ctx context.Context, operation, path string, in, out any) error
}

// Client debits and credits stock through the inventory service. The service
// only stores absolute quantities, so every change reads the record first and
// writes the new total back.
type Client struct {
	http   doer
	logger *zap.Logger
}

var _ ports.Inventory = (*Client)(nil)

func NewClient(http *httpclient.Client, logger *zap.Logger) *Client {
	return &Client{
		http:   http,
		logger: logger.With(zap.String("component", "inventory_client")),
	}
}

type stockRecord struct {
	WorkstationID int64  `json:"workstationId"`
	ItemType      string `json:"itemType"`
	ItemID        int64  `json:"itemId"`
	Quantity      int    `json:"quantity"`
}

func (c *Client) UpdateStock(
	ctx context.Context,
	workstationID kernel.WorkstationID,
	itemType string,
	itemID int64,
	quantity int,
) (bool, error) {
	current, err := c.stock(ctx, workstationID, itemType, itemID)
	if err != nil {
		return false, err
	}
	if current < quantity {
		c.logger.Info("insufficient stock",
			zap.Int64("workstationId", int64(workstationID)),
			zap.String("itemType", itemType),
			zap.Int64("itemId", itemID),
			zap.Int("available", current),
			zap.Int("requested", quantity))
		return false, nil
	}

	if err := c.write(ctx, "debit", workstationID, itemType, itemID, current-quantity); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) RestoreStock(
	ctx context.Context,
	workstationID kernel.WorkstationID,
	itemType string,
	itemID int64,
	quantity int,
) error {
	current, err := c.stock(ctx, workstationID, itemType, itemID)
	if err != nil {
		return err
	}
	return c.write(ctx, "credit", workstationID, itemType, itemID, current+quantity)
}

// stock returns the recorded quantity; a missing record counts as zero.
func (c *Client) stock(ctx context.Context, workstationID kernel.WorkstationID, itemType string, itemID int64) (int, error) {
	query := url.Values{}
	query.Set("itemType", itemType)
	query.Set("itemId", strconv.FormatInt(itemID, 10))
	path := fmt.Sprintf("/stock/workstation/%d/item?%s", workstationID, query.Encode())

	var record stockRecord
	if err := c.http.Get(ctx, "get_stock", path, &record); err != nil {
		if httpclient.StatusCode(err) == http.StatusNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("read stock of %s %d at workstation %d: %w", itemType, itemID, workstationID, err)
	}
	return record.Quantity, nil
}

func (c *Client) write(
	ctx context.Context,
	operation string,
	workstationID kernel.WorkstationID,
	itemType string,
	itemID int64,
	quantity int,
) error {
	query := url.Values{}
	query.Set("workstationId", strconv.FormatInt(int64(workstationID), 10))
	query.Set("itemType", itemType)
	query.Set("itemId", strconv.FormatInt(itemID, 10))
	query.Set("quantity", strconv.Itoa(quantity))

	if err := c.http.Post(ctx, operation, "/stock/update?"+query.Encode(), nil, nil); err != nil {
		return fmt.Errorf("%s stock of %s %d at workstation %d: %w", operation, itemType, itemID, workstationID, err)
	}
	return nil
}

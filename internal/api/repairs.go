package api

import (
	"context"
	"fmt"
	"net/http"

	"inventory-system/internal/entities"
)

func (c *Client) Repairs(ctx context.Context) ([]entities.Repair, error) {
	var items []entities.Repair
	err := c.request(ctx, http.MethodGet, "/repairs/", nil, &items)
	return items, err
}

func (c *Client) CompleteRepair(ctx context.Context, repairID uint64) (*entities.Repair, error) {
	var item entities.Repair
	if err := c.request(ctx, http.MethodPost, fmt.Sprintf("/repairs/%d/complete/", repairID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) FailRepair(ctx context.Context, repairID uint64) (*entities.Repair, error) {
	var item entities.Repair
	if err := c.request(ctx, http.MethodPost, fmt.Sprintf("/repairs/%d/fail/", repairID), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Disposals(ctx context.Context) ([]entities.Disposal, error) {
	var items []entities.Disposal
	err := c.request(ctx, http.MethodGet, "/disposals/", nil, &items)
	return items, err
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
)

func (c *Client) Contracts(ctx context.Context) ([]entities.Contract, error) {
	var items []entities.Contract
	err := c.request(ctx, http.MethodGet, "/contracts/", nil, &items)
	return items, err
}

// CreateContract: при приложенном файле запрос уйдёт multipart'ом,
// без файла — обычным JSON (правило кодирования в encode.go).
func (c *Client) CreateContract(ctx context.Context, payload dto.CreateContractDTO) (*entities.Contract, error) {
	var item entities.Contract
	if err := c.request(ctx, http.MethodPost, "/contracts/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateContract(ctx context.Context, id uint64, payload dto.UpdateContractDTO) (*entities.Contract, error) {
	var item entities.Contract
	if err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/contracts/%d/", id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteContract(ctx context.Context, id uint64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/contracts/%d/", id), nil, nil)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
)

// Шаблоны ИНН — переиспользуемые префиксы. Формат итогового идентификатора
// бэкенд не навязывает, это чисто клиентское соглашение.

func (c *Client) InnTemplates(ctx context.Context) ([]entities.InnTemplate, error) {
	var items []entities.InnTemplate
	err := c.request(ctx, http.MethodGet, "/inn-templates/", nil, &items)
	return items, err
}

func (c *Client) CreateInnTemplate(ctx context.Context, payload dto.CreateInnTemplateDTO) (*entities.InnTemplate, error) {
	var item entities.InnTemplate
	if err := c.request(ctx, http.MethodPost, "/inn-templates/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteInnTemplate(ctx context.Context, id uint64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/inn-templates/%d/", id), nil, nil)
}

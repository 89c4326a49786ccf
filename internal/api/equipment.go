package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
)

func (c *Client) Equipments(ctx context.Context) ([]entities.Equipment, error) {
	var items []entities.Equipment
	err := c.request(ctx, http.MethodGet, "/equipment/", nil, &items)
	return items, err
}

func (c *Client) Equipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	var item entities.Equipment
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/equipment/%d/", id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) EquipmentByRoom(ctx context.Context, roomID uint64) ([]entities.Equipment, error) {
	var items []entities.Equipment
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/equipment/?room=%d", roomID), nil, &items)
	return items, err
}

// BulkCreateEquipment — один вызов, создающий N записей с общим префиксом
// имени и общим шаблоном характеристик. Возвращает созданные записи.
func (c *Client) BulkCreateEquipment(ctx context.Context, payload dto.BulkCreateEquipmentDTO) ([]entities.Equipment, error) {
	var items []entities.Equipment
	err := c.request(ctx, http.MethodPost, "/equipment/bulk-create/", payload, &items)
	return items, err
}

func (c *Client) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	var item entities.Equipment
	if err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/equipment/%d/", id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteEquipment(ctx context.Context, id uint64) error {
	return c.request(ctx, http.MethodDelete, fmt.Sprintf("/equipment/%d/", id), nil, nil)
}

func (c *Client) BulkUpdateInn(ctx context.Context, payload dto.BulkUpdateInnDTO) error {
	return c.request(ctx, http.MethodPost, "/equipment/bulk-update-inn/", payload, nil)
}

func (c *Client) BulkUpdateStatus(ctx context.Context, payload dto.BulkUpdateStatusDTO) error {
	return c.request(ctx, http.MethodPost, "/equipment/bulk-update-status/", payload, nil)
}

func (c *Client) SendToRepair(ctx context.Context, equipmentID uint64) (*entities.Repair, error) {
	payload := map[string]uint64{"equipment_id": equipmentID}
	var repair entities.Repair
	if err := c.request(ctx, http.MethodPost, "/equipment/send-to-repair/", payload, &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (c *Client) DisposeEquipment(ctx context.Context, payload dto.DisposeEquipmentDTO) (*entities.Disposal, error) {
	var disposal entities.Disposal
	if err := c.request(ctx, http.MethodPost, "/equipment/dispose/", payload, &disposal); err != nil {
		return nil, err
	}
	return &disposal, nil
}

func (c *Client) MoveEquipment(ctx context.Context, payload dto.MoveEquipmentDTO) (*entities.Equipment, error) {
	var item entities.Equipment
	if err := c.request(ctx, http.MethodPost, "/equipment/move/", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ScanQR находит запись по отсканированному ИНН.
func (c *Client) ScanQR(ctx context.Context, inn string) (*entities.Equipment, error) {
	var item entities.Equipment
	path := "/equipment/scan-qr/?inn=" + url.QueryEscape(inn)
	if err := c.request(ctx, http.MethodGet, path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

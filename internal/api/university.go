package api

import (
	"context"
	"fmt"
	"net/http"

	"inventory-system/internal/entities"
)

// Иерархия университета отдаётся бэкендом только на чтение.

func (c *Client) Buildings(ctx context.Context) ([]entities.Building, error) {
	var items []entities.Building
	err := c.request(ctx, http.MethodGet, "/buildings/", nil, &items)
	return items, err
}

func (c *Client) FloorsByBuilding(ctx context.Context, buildingID uint64) ([]entities.Floor, error) {
	var items []entities.Floor
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/buildings/%d/floors/", buildingID), nil, &items)
	return items, err
}

func (c *Client) RoomsByFloor(ctx context.Context, floorID uint64) ([]entities.Room, error) {
	var items []entities.Room
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/floors/%d/rooms/", floorID), nil, &items)
	return items, err
}

func (c *Client) EquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	var items []entities.EquipmentType
	err := c.request(ctx, http.MethodGet, "/equipment-types/", nil, &items)
	return items, err
}

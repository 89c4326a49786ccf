package api

import (
	"context"

	"inventory-system/internal/entities"
	"inventory-system/pkg/utils"
)

// TypeGroup — оборудование одной комнаты, сгруппированное по id типа.
type TypeGroup struct {
	TypeID   uint64
	TypeName string
	Count    int
	Items    []entities.Equipment
}

// GroupByType — чистая функция группировки по типу. Порядок групп стабильный:
// в порядке первого появления type_id во входном списке.
func GroupByType(items []entities.Equipment) []TypeGroup {
	index := make(map[uint64]int, len(items))
	groups := make([]TypeGroup, 0)

	for _, item := range items {
		pos, seen := index[item.TypeID]
		if !seen {
			pos = len(groups)
			index[item.TypeID] = pos
			name := utils.SafeDeref(item.Type).Name
			groups = append(groups, TypeGroup{TypeID: item.TypeID, TypeName: name})
		}
		groups[pos].Items = append(groups[pos].Items, item)
		groups[pos].Count++
	}
	return groups
}

// EquipmentByRoomGrouped — данные для уровня "тип оборудования в комнате"
// иерархического списка: сырое оборудование комнаты плюс группировка на клиенте.
func (c *Client) EquipmentByRoomGrouped(ctx context.Context, roomID uint64) ([]TypeGroup, error) {
	items, err := c.EquipmentByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return GroupByType(items), nil
}

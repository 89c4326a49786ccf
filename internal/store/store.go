// Пакет store — явный контейнер состояния клиента. Вместо глобального
// мутабельного модуля — сконструированный Store с типизированными слайсами
// по доменам; каждое действие возвращает ошибку, ничего не бросает и
// обновляет состояние только из ответа сервера (никаких оптимистичных правок).
package store

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/dto"
	"inventory-system/pkg/validation"
)

type Store struct {
	Auth           *AuthSlice
	Equipment      *EquipmentSlice
	Specifications *SpecificationSlice
	Contracts      *ContractSlice
	Repairs        *RepairSlice
	University     *UniversitySlice
	Settings       *SettingsSlice
	Notifications  *NotificationQueue

	client *api.Client
	logger *zap.Logger
	loaded atomic.Bool
}

func New(client *api.Client, settings *SettingsSlice, logger *zap.Logger) *Store {
	v := validation.New()
	notifications := NewNotificationQueue()

	return &Store{
		Auth:           newAuthSlice(client, v, logger),
		Equipment:      newEquipmentSlice(client, v, notifications, logger),
		Specifications: newSpecificationSlice(client, logger),
		Contracts:      newContractSlice(client, v, notifications, logger),
		Repairs:        newRepairSlice(client, notifications, logger),
		University:     newUniversitySlice(client, logger),
		Settings:       settings,
		Notifications:  notifications,
		client:         client,
		logger:         logger,
	}
}

func (s *Store) Client() *api.Client { return s.client }

// MoveEquipment переносит запись в другую комнату и сбрасывает кэш детей
// обеих комнат в иерархическом просмотре — и старой, и новой.
func (s *Store) MoveEquipment(ctx context.Context, payload dto.MoveEquipmentDTO) error {
	var fromRoom uint64
	for _, item := range s.Equipment.Items() {
		if item.ID == payload.EquipmentID {
			fromRoom = item.RoomID
			break
		}
	}

	if err := s.Equipment.Move(ctx, payload); err != nil {
		return err
	}

	if fromRoom != 0 {
		s.University.InvalidateRoom(fromRoom)
	}
	s.University.InvalidateRoom(payload.RoomID)
	return nil
}

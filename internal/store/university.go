package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/entities"
)

// UniversitySlice — иерархический просмотр корпус -> этаж -> комната ->
// тип оборудования. Раскрытие уровня фетчит детей только если их ещё нет
// в кэше (ключ — id родителя); повторное раскрытие сетевого вызова не делает.
type UniversitySlice struct {
	mu     sync.RWMutex
	client *api.Client
	logger *zap.Logger

	buildings []entities.Building
	err       error

	children *gocache.Cache
}

func newUniversitySlice(client *api.Client, logger *zap.Logger) *UniversitySlice {
	return &UniversitySlice{
		client:   client,
		logger:   logger,
		children: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

func floorsKey(buildingID uint64) string { return fmt.Sprintf("floors:%d", buildingID) }
func roomsKey(floorID uint64) string     { return fmt.Sprintf("rooms:%d", floorID) }
func roomKey(roomID uint64) string       { return fmt.Sprintf("room-equipment:%d", roomID) }

func (s *UniversitySlice) LoadBuildings(ctx context.Context) error {
	buildings, err := s.client.Buildings(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		s.logger.Warn("Не удалось загрузить корпуса", zap.Error(err))
		return err
	}
	s.buildings = buildings
	return nil
}

func (s *UniversitySlice) Buildings() []entities.Building {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Building, len(s.buildings))
	copy(out, s.buildings)
	return out
}

// ExpandBuilding возвращает этажи корпуса, фетчит только при промахе кэша.
func (s *UniversitySlice) ExpandBuilding(ctx context.Context, buildingID uint64) ([]entities.Floor, error) {
	if cached, found := s.children.Get(floorsKey(buildingID)); found {
		return cached.([]entities.Floor), nil
	}
	floors, err := s.client.FloorsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	s.children.Set(floorsKey(buildingID), floors, gocache.NoExpiration)
	return floors, nil
}

func (s *UniversitySlice) ExpandFloor(ctx context.Context, floorID uint64) ([]entities.Room, error) {
	if cached, found := s.children.Get(roomsKey(floorID)); found {
		return cached.([]entities.Room), nil
	}
	rooms, err := s.client.RoomsByFloor(ctx, floorID)
	if err != nil {
		return nil, err
	}
	s.children.Set(roomsKey(floorID), rooms, gocache.NoExpiration)
	return rooms, nil
}

// ExpandRoom возвращает оборудование комнаты, сгруппированное по типу.
func (s *UniversitySlice) ExpandRoom(ctx context.Context, roomID uint64) ([]api.TypeGroup, error) {
	if cached, found := s.children.Get(roomKey(roomID)); found {
		return cached.([]api.TypeGroup), nil
	}
	groups, err := s.client.EquipmentByRoomGrouped(ctx, roomID)
	if err != nil {
		return nil, err
	}
	s.children.Set(roomKey(roomID), groups, gocache.NoExpiration)
	return groups, nil
}

// InvalidateRoom сбрасывает кэш комнаты (после перемещения оборудования).
func (s *UniversitySlice) InvalidateRoom(roomID uint64) {
	s.children.Delete(roomKey(roomID))
}

func (s *UniversitySlice) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/pkg/validation"
)

// EquipmentSlice — кэш записей оборудования с CRUD-действиями и производными
// представлениями. Мутации устроены одинаково: запрос -> при успехе полный
// перефетч коллекции (последний писатель выигрывает, сверка всегда с сервером).
type EquipmentSlice struct {
	mu            sync.RWMutex
	client        *api.Client
	validator     *validation.Validator
	notifications *NotificationQueue
	logger        *zap.Logger

	items        []entities.Equipment
	types        []entities.EquipmentType
	innTemplates []entities.InnTemplate
	err          error
}

func newEquipmentSlice(client *api.Client, v *validation.Validator, n *NotificationQueue, logger *zap.Logger) *EquipmentSlice {
	return &EquipmentSlice{client: client, validator: v, notifications: n, logger: logger}
}

func (s *EquipmentSlice) Load(ctx context.Context) error {
	items, err := s.client.Equipments(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		s.logger.Warn("Не удалось загрузить оборудование", zap.Error(err))
		return err
	}
	s.items = items
	return nil
}

func (s *EquipmentSlice) LoadTypes(ctx context.Context) error {
	types, err := s.client.EquipmentTypes(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		s.logger.Warn("Не удалось загрузить типы оборудования", zap.Error(err))
		return err
	}
	s.types = types
	return nil
}

func (s *EquipmentSlice) LoadInnTemplates(ctx context.Context) error {
	templates, err := s.client.InnTemplates(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		s.logger.Warn("Не удалось загрузить шаблоны ИНН", zap.Error(err))
		return err
	}
	s.innTemplates = templates
	return nil
}

func (s *EquipmentSlice) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}
	if _, err := s.client.UpdateEquipment(ctx, id, payload); err != nil {
		s.notifications.Push(LevelError, "Не удалось обновить оборудование: "+err.Error())
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

func (s *EquipmentSlice) Delete(ctx context.Context, id uint64) error {
	if err := s.client.DeleteEquipment(ctx, id); err != nil {
		s.notifications.Push(LevelError, "Не удалось удалить оборудование: "+err.Error())
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

func (s *EquipmentSlice) BulkUpdateStatus(ctx context.Context, payload dto.BulkUpdateStatusDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}
	if err := s.client.BulkUpdateStatus(ctx, payload); err != nil {
		s.notifications.Push(LevelError, "Не удалось изменить статусы: "+err.Error())
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

func (s *EquipmentSlice) SendToRepair(ctx context.Context, id uint64) error {
	if _, err := s.client.SendToRepair(ctx, id); err != nil {
		s.notifications.Push(LevelError, "Не удалось отправить в ремонт: "+err.Error())
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

func (s *EquipmentSlice) Dispose(ctx context.Context, payload dto.DisposeEquipmentDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}
	if _, err := s.client.DisposeEquipment(ctx, payload); err != nil {
		s.notifications.Push(LevelError, "Не удалось списать оборудование: "+err.Error())
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

func (s *EquipmentSlice) Move(ctx context.Context, payload dto.MoveEquipmentDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}
	if _, err := s.client.MoveEquipment(ctx, payload); err != nil {
		s.notifications.Push(LevelError, "Не удалось переместить оборудование: "+err.Error())
		s.setErr(err)
		return err
	}
	return s.Load(ctx)
}

func (s *EquipmentSlice) ScanQR(ctx context.Context, inn string) (*entities.Equipment, error) {
	item, err := s.client.ScanQR(ctx, inn)
	if err != nil {
		s.notifications.Push(LevelError, "Оборудование по коду не найдено")
		return nil, err
	}
	return item, nil
}

func (s *EquipmentSlice) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// --- чтение ---

func (s *EquipmentSlice) Items() []entities.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Equipment, len(s.items))
	copy(out, s.items)
	return out
}

func (s *EquipmentSlice) Types() []entities.EquipmentType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.EquipmentType, len(s.types))
	copy(out, s.types)
	return out
}

func (s *EquipmentSlice) InnTemplates() []entities.InnTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.InnTemplate, len(s.innTemplates))
	copy(out, s.innTemplates)
	return out
}

func (s *EquipmentSlice) TypeByID(id uint64) (*entities.EquipmentType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.types {
		if s.types[i].ID == id {
			t := s.types[i]
			return &t, true
		}
	}
	return nil, false
}

func (s *EquipmentSlice) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// GroupedByType — производное представление "по типам".
func (s *EquipmentSlice) GroupedByType() []api.TypeGroup {
	return api.GroupByType(s.Items())
}

// GroupedByStatus — производное представление "по статусам", в фиксированном
// порядке перечисления статусов.
func (s *EquipmentSlice) GroupedByStatus() map[entities.EquipmentStatus][]entities.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grouped := make(map[entities.EquipmentStatus][]entities.Equipment)
	for _, item := range s.items {
		grouped[item.Status] = append(grouped[item.Status], item)
	}
	return grouped
}

// FilterByRoom — производное представление "в комнате".
func (s *EquipmentSlice) FilterByRoom(roomID uint64) []entities.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entities.Equipment
	for _, item := range s.items {
		if item.RoomID == roomID {
			out = append(out, item)
		}
	}
	return out
}

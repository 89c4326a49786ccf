package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/entities"
)

type RepairSlice struct {
	mu            sync.RWMutex
	client        *api.Client
	notifications *NotificationQueue
	logger        *zap.Logger

	repairs   []entities.Repair
	disposals []entities.Disposal
	err       error
}

func newRepairSlice(client *api.Client, n *NotificationQueue, logger *zap.Logger) *RepairSlice {
	return &RepairSlice{client: client, notifications: n, logger: logger}
}

func (s *RepairSlice) Load(ctx context.Context) error {
	repairs, err := s.client.Repairs(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		s.logger.Warn("Не удалось загрузить ремонты", zap.Error(err))
		return err
	}
	s.repairs = repairs
	return nil
}

func (s *RepairSlice) LoadDisposals(ctx context.Context) error {
	disposals, err := s.client.Disposals(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		s.logger.Warn("Не удалось загрузить списания", zap.Error(err))
		return err
	}
	s.disposals = disposals
	return nil
}

func (s *RepairSlice) Complete(ctx context.Context, repairID uint64) error {
	if _, err := s.client.CompleteRepair(ctx, repairID); err != nil {
		s.notifications.Push(LevelError, "Не удалось завершить ремонт: "+err.Error())
		return err
	}
	return s.Load(ctx)
}

func (s *RepairSlice) Fail(ctx context.Context, repairID uint64) error {
	if _, err := s.client.FailRepair(ctx, repairID); err != nil {
		s.notifications.Push(LevelError, "Не удалось отметить ремонт неудачным: "+err.Error())
		return err
	}
	return s.Load(ctx)
}

func (s *RepairSlice) Repairs() []entities.Repair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Repair, len(s.repairs))
	copy(out, s.repairs)
	return out
}

func (s *RepairSlice) Disposals() []entities.Disposal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Disposal, len(s.disposals))
	copy(out, s.disposals)
	return out
}

func (s *RepairSlice) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

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

type ContractSlice struct {
	mu            sync.RWMutex
	client        *api.Client
	validator     *validation.Validator
	notifications *NotificationQueue
	logger        *zap.Logger

	items []entities.Contract
	err   error
}

func newContractSlice(client *api.Client, v *validation.Validator, n *NotificationQueue, logger *zap.Logger) *ContractSlice {
	return &ContractSlice{client: client, validator: v, notifications: n, logger: logger}
}

func (s *ContractSlice) Load(ctx context.Context) error {
	items, err := s.client.Contracts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		s.logger.Warn("Не удалось загрузить договоры", zap.Error(err))
		return err
	}
	s.items = items
	return nil
}

func (s *ContractSlice) Create(ctx context.Context, payload dto.CreateContractDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}
	if _, err := s.client.CreateContract(ctx, payload); err != nil {
		s.notifications.Push(LevelError, "Не удалось создать договор: "+err.Error())
		return err
	}
	return s.Load(ctx)
}

func (s *ContractSlice) Update(ctx context.Context, id uint64, payload dto.UpdateContractDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}
	if _, err := s.client.UpdateContract(ctx, id, payload); err != nil {
		s.notifications.Push(LevelError, "Не удалось обновить договор: "+err.Error())
		return err
	}
	return s.Load(ctx)
}

func (s *ContractSlice) Delete(ctx context.Context, id uint64) error {
	if err := s.client.DeleteContract(ctx, id); err != nil {
		s.notifications.Push(LevelError, "Не удалось удалить договор: "+err.Error())
		return err
	}
	return s.Load(ctx)
}

func (s *ContractSlice) Items() []entities.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Contract, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ContractSlice) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/dto"
	"inventory-system/pkg/validation"
)

type AuthSlice struct {
	mu        sync.RWMutex
	client    *api.Client
	validator *validation.Validator
	logger    *zap.Logger

	user *dto.UserDTO
	err  error
}

func newAuthSlice(client *api.Client, v *validation.Validator, logger *zap.Logger) *AuthSlice {
	return &AuthSlice{client: client, validator: v, logger: logger}
}

func (s *AuthSlice) Login(ctx context.Context, payload dto.LoginDTO) error {
	if err := s.validator.Validate(payload); err != nil {
		return err
	}

	resp, err := s.client.Login(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		s.logger.Warn("Ошибка входа", zap.Error(err))
		return err
	}
	user := resp.User
	s.user = &user
	return nil
}

func (s *AuthSlice) Logout() {
	s.client.Logout()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *AuthSlice) User() *dto.UserDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *AuthSlice) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *AuthSlice) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

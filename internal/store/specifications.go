package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"inventory-system/internal/api"
	"inventory-system/internal/entities"
	"inventory-system/internal/typemap"
)

// SpecificationSlice — кэш шаблонов характеристик, корзины по семействам.
type SpecificationSlice struct {
	mu      sync.RWMutex
	client  *api.Client
	logger  *zap.Logger
	buckets map[typemap.Kind][]entities.Specification
	errs    map[typemap.Kind]error
}

func newSpecificationSlice(client *api.Client, logger *zap.Logger) *SpecificationSlice {
	return &SpecificationSlice{
		client:  client,
		logger:  logger,
		buckets: make(map[typemap.Kind][]entities.Specification),
		errs:    make(map[typemap.Kind]error),
	}
}

// LoadAll фетчит все десять подресурсов параллельно. Сбор по принципу
// all-settled: упавшее семейство получает пустую корзину и запомненную
// ошибку, остальные заполняются как обычно.
func (s *SpecificationSlice) LoadAll(ctx context.Context) error {
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for _, kind := range typemap.Kinds {
		wg.Add(1)
		go func(kind typemap.Kind) {
			defer wg.Done()
			items, err := s.client.Specifications(ctx, kind)

			s.mu.Lock()
			defer s.mu.Unlock()
			if err != nil {
				s.logger.Warn("Не удалось загрузить шаблоны характеристик",
					zap.String("kind", string(kind)), zap.Error(err))
				s.buckets[kind] = nil
				s.errs[kind] = err
				errOnce.Do(func() { firstErr = err })
				return
			}
			s.buckets[kind] = items
			delete(s.errs, kind)
		}(kind)
	}
	wg.Wait()
	return firstErr
}

func (s *SpecificationSlice) Load(ctx context.Context, kind typemap.Kind) error {
	items, err := s.client.Specifications(ctx, kind)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.errs[kind] = err
		return err
	}
	s.buckets[kind] = items
	delete(s.errs, kind)
	return nil
}

func (s *SpecificationSlice) ForKind(kind typemap.Kind) []entities.Specification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Specification, len(s.buckets[kind]))
	copy(out, s.buckets[kind])
	return out
}

func (s *SpecificationSlice) ByID(kind typemap.Kind, id uint64) (*entities.Specification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, spec := range s.buckets[kind] {
		if spec.RecordID() == id {
			found := spec
			return &found, true
		}
	}
	return nil, false
}

func (s *SpecificationSlice) Create(ctx context.Context, spec entities.Specification) error {
	if _, err := s.client.CreateSpecification(ctx, spec); err != nil {
		return err
	}
	return s.Load(ctx, spec.Kind)
}

func (s *SpecificationSlice) Delete(ctx context.Context, kind typemap.Kind, id uint64) error {
	if err := s.client.DeleteSpecification(ctx, kind, id); err != nil {
		return err
	}
	return s.Load(ctx, kind)
}

func (s *SpecificationSlice) Err(kind typemap.Kind) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[kind]
}

package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Bootstrap выполняет стартовую загрузку: корпуса, типы оборудования,
// договоры, шаблоны характеристик, шаблоны ИНН и само оборудование —
// параллельно, каждый фетч защищён отдельно (all-settled). Один упавший
// запрос не мешает остальным заполнить свои слайсы.
func (s *Store) Bootstrap(ctx context.Context) {
	loads := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"buildings", s.University.LoadBuildings},
		{"equipment_types", s.Equipment.LoadTypes},
		{"equipment", s.Equipment.Load},
		{"contracts", s.Contracts.Load},
		{"specifications", s.Specifications.LoadAll},
		{"inn_templates", s.Equipment.LoadInnTemplates},
	}

	var wg sync.WaitGroup
	for _, load := range loads {
		wg.Add(1)
		go func(name string, fn func(context.Context) error) {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				s.logger.Warn("Частичный отказ стартовой загрузки",
					zap.String("slice", name), zap.Error(err))
			}
		}(load.name, load.fn)
	}
	wg.Wait()

	// Флаг готовности ставится независимо от частичных отказов: интерфейс
	// переходит в готовое состояние, ошибки остаются в слайсах и в логе.
	s.loaded.Store(true)
	s.logger.Info("Стартовая загрузка завершена")
}

// Loaded сообщает, завершилась ли стартовая загрузка (пусть и частично).
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

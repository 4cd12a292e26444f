package service

import (
	"context"

	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/store"
)

var (
	ErrLeadCategoryNotFound = apperror.New(apperror.ErrCodeNotFound, "направление не найдено")
	ErrNegativeCount        = apperror.New(apperror.ErrCodeValidation, "количество исполнителей не может быть отрицательным")
)

// CounterService показывает направления заявок вместе со счётчиками исполнителей.
type CounterService struct {
	store      store.CounterStore
	categories []models.LeadCategory
}

// NewCounterService создаёт сервис счётчиков.
func NewCounterService(s store.CounterStore, categories []models.LeadCategory) *CounterService {
	return &CounterService{store: s, categories: categories}
}

// LeadCategories возвращает направления с актуальными счётчиками.
// Недоступный счётчик показывается как ноль.
func (s *CounterService) LeadCategories(ctx context.Context) []models.LeadCategory {
	out := make([]models.LeadCategory, len(s.categories))
	for i, c := range s.categories {
		c.Count = store.ReadCount(ctx, s.store, store.CounterKey(c.CounterKey))
		out[i] = c
	}
	return out
}

// Category находит направление по идентификатору.
func (s *CounterService) Category(id string) (models.LeadCategory, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.LeadCategory{}, ErrLeadCategoryNotFound
}

// Counts возвращает счётчики по ключу направления (video_editors и т.д.).
func (s *CounterService) Counts(ctx context.Context) map[string]int {
	out := make(map[string]int, len(s.categories))
	for _, c := range s.LeadCategories(ctx) {
		out[c.CounterKey] = c.Count
	}
	return out
}

// Set обновляет счётчик направления по его ключу.
func (s *CounterService) Set(ctx context.Context, key string, count int) (models.LeadCategory, error) {
	if count < 0 {
		return models.LeadCategory{}, ErrNegativeCount
	}

	for _, c := range s.categories {
		if c.CounterKey != key {
			continue
		}
		if err := s.store.Set(ctx, store.CounterKey(key), count); err != nil {
			return models.LeadCategory{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить счётчик")
		}
		logger.L().WithField("counter", key).WithField("count", count).Info("counters: значение обновлено")
		c.Count = count
		return c, nil
	}
	return models.LeadCategory{}, ErrLeadCategoryNotFound
}

// Ping проверяет доступность хранилища счётчиков.
func (s *CounterService) Ping(ctx context.Context) error {
	_, err := s.store.All(ctx)
	return err
}

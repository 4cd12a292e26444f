package store

import (
	"context"
	"sync"

	"github.com/rishidar/freelance-connector/internal/logger"
)

// CounterKeyPrefix - префикс ключа счётчика исполнителей категории.
const CounterKeyPrefix = "freelancer_count_"

// CounterKey возвращает ключ счётчика для категории.
func CounterKey(category string) string {
	return CounterKeyPrefix + category
}

// CounterStore - хранилище счётчиков «сколько исполнителей доступно».
type CounterStore interface {
	Get(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key string, value int) error
	All(ctx context.Context) (map[string]int, error)
}

// ReadCount читает счётчик; отсутствие значения или ошибка дают ноль.
func ReadCount(ctx context.Context, s CounterStore, key string) int {
	n, err := s.Get(ctx, key)
	if err != nil {
		logger.L().WithError(err).WithField("key", key).Warn("store: счётчик недоступен, используется 0")
		return 0
	}
	return n
}

// MemoryCounters хранит счётчики в памяти процесса.
type MemoryCounters struct {
	Observable

	mu     sync.RWMutex
	values map[string]int
}

// NewMemoryCounters создаёт хранилище с начальными значениями.
func NewMemoryCounters(initial map[string]int) *MemoryCounters {
	values := make(map[string]int, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryCounters{values: values}
}

// Get возвращает значение или ноль, если ключа нет.
func (m *MemoryCounters) Get(_ context.Context, key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set записывает значение и уведомляет подписчиков.
func (m *MemoryCounters) Set(_ context.Context, key string, value int) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()

	m.Publish(Change{Kind: ChangeSet, Key: key, Value: value})
	return nil
}

// All возвращает копию всех значений.
func (m *MemoryCounters) All(_ context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// ObservedCounters добавляет уведомления к любому CounterStore,
// например к репозиторию в Postgres.
type ObservedCounters struct {
	Observable
	inner CounterStore
}

// NewObservedCounters оборачивает хранилище.
func NewObservedCounters(inner CounterStore) *ObservedCounters {
	return &ObservedCounters{inner: inner}
}

func (o *ObservedCounters) Get(ctx context.Context, key string) (int, error) {
	return o.inner.Get(ctx, key)
}

func (o *ObservedCounters) Set(ctx context.Context, key string, value int) error {
	if err := o.inner.Set(ctx, key, value); err != nil {
		return err
	}
	o.Publish(Change{Kind: ChangeSet, Key: key, Value: value})
	return nil
}

func (o *ObservedCounters) All(ctx context.Context) (map[string]int, error) {
	return o.inner.All(ctx)
}

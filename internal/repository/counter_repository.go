package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/repository/common"
)

const countersTable = "freelancer_counters"

// CounterRepository хранит счётчики исполнителей в Postgres.
type CounterRepository struct {
	db *sqlx.DB
}

func NewCounterRepository(db *sqlx.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// Get возвращает значение счётчика; отсутствующий ключ даёт ноль.
func (r *CounterRepository) Get(ctx context.Context, key string) (int, error) {
	c, err := common.GetByField[models.Counter](ctx, r.db, countersTable, "key", key, common.ErrNotFound)
	if errors.Is(err, common.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

// Set записывает значение счётчика.
func (r *CounterRepository) Set(ctx context.Context, key string, value int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO freelancer_counters (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set counter %s: %w", key, err)
	}
	return nil
}

// All возвращает все счётчики.
func (r *CounterRepository) All(ctx context.Context) (map[string]int, error) {
	var rows []models.Counter
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM freelancer_counters ORDER BY key`); err != nil {
		return nil, fmt.Errorf("list counters: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, c := range rows {
		out[c.Key] = c.Value
	}
	return out, nil
}

// Seed создаёт отсутствующие счётчики с начальными значениями, не трогая существующие.
func (r *CounterRepository) Seed(ctx context.Context, initial map[string]int) error {
	if len(initial) == 0 {
		return nil
	}
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		ins := common.NewBatchInserter(tx,
			"INSERT INTO freelancer_counters (key, value)",
			"ON CONFLICT (key) DO NOTHING",
			2, 50)
		for key, value := range initial {
			if err := ins.Add(ctx, key, value); err != nil {
				return err
			}
		}
		return ins.Flush(ctx)
	})
}

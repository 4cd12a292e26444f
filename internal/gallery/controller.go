// Package gallery управляет жизненным циклом страницы галереи: загрузка,
// готовность, пустая коллекция или ошибка.
package gallery

import (
	"context"
	"fmt"
	"sync"

	"github.com/rishidar/freelance-connector/internal/card"
	"github.com/rishidar/freelance-connector/internal/goroutine"
	"github.com/rishidar/freelance-connector/internal/loader"
	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

// State - состояние страницы.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateEmpty   State = "empty"
	StateFailed  State = "failed"
)

// Placeholder - что показывается вместо сетки карточек.
type Placeholder string

const (
	PlaceholderSpinner Placeholder = "spinner"
	PlaceholderEmpty   Placeholder = "empty"
	PlaceholderError   Placeholder = "error"
)

// FailedMessage показывается вместо сетки при сбое загрузки.
const FailedMessage = "Failed to load works. Please try again."

// View - снимок страницы галереи.
type View struct {
	Category    string           `json:"category"`
	Title       string           `json:"title"`
	Route       string           `json:"route"`
	Kind        models.MediaKind `json:"kind"`
	State       State            `json:"state"`
	Placeholder Placeholder      `json:"placeholder,omitempty"`
	Message     string           `json:"message,omitempty"`
	Retry       bool             `json:"retry,omitempty"`
	Cards       []card.View      `json:"cards"`
	Warnings    []loader.Warning `json:"warnings,omitempty"`
}

// Controller - одно посещение страницы галереи. Загрузка выполняется
// ровно один раз, повторный визит создаёт новый контроллер.
type Controller struct {
	loader loader.Interface
	def    models.CategoryDefinition

	once     sync.Once
	doneOnce sync.Once
	done     chan struct{}

	mu       sync.RWMutex
	state    State
	cards    []*card.Card
	index    map[string]*card.Card
	warnings []loader.Warning
	err      error
}

// New создаёт контроллер поверх загрузчика категории.
func New(l loader.Interface) *Controller {
	return &Controller{
		loader: l,
		def:    l.Category(),
		done:   make(chan struct{}),
		state:  StateLoading,
		index:  make(map[string]*card.Card),
	}
}

// Category возвращает определение категории.
func (c *Controller) Category() models.CategoryDefinition {
	return c.def
}

// Mount запускает загрузку в фоне. Повторные вызовы ничего не делают.
// Если ctx отменён раньше, чем загрузка завершилась, результат отбрасывается.
func (c *Controller) Mount(ctx context.Context) {
	c.once.Do(func() {
		log := logger.ForCategory(c.def.Slug)
		log.Debug("gallery: загрузка категории")

		goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
			res := c.loader.Load(ctx)
			if ctx.Err() != nil {
				log.Debug("gallery: посещение завершено до окончания загрузки, результат отброшен")
				c.finish()
				return
			}
			c.apply(res)
			c.finish()
		}, func(r any) {
			c.apply(loader.Result{
				Category: c.def.Slug,
				Err:      apperror.New(apperror.ErrCodeInternal, fmt.Sprintf("сбой загрузки: %v", r)),
			})
			c.finish()
		})
	})
}

func (c *Controller) finish() {
	c.doneOnce.Do(func() { close(c.done) })
}

// Done закрывается, когда загрузка завершена или отброшена.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Wait ожидает завершения загрузки.
func (c *Controller) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run монтирует контроллер и возвращает итоговый снимок.
func (c *Controller) Run(ctx context.Context) (View, error) {
	c.Mount(ctx)
	if err := c.Wait(ctx); err != nil {
		return View{}, err
	}
	return c.View(), nil
}

func (c *Controller) apply(res loader.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.warnings = res.Warnings
	switch res.Status() {
	case loader.StatusFailed:
		c.state = StateFailed
		c.err = res.Err
	case loader.StatusEmpty:
		c.state = StateEmpty
	default:
		c.state = StateReady
		c.cards = make([]*card.Card, 0, len(res.Records))
		for _, rec := range res.Records {
			cd := card.New(c.def, rec)
			c.cards = append(c.cards, cd)
			// при повторяющихся идентификаторах адресуется первая карточка
			if _, exists := c.index[rec.ID]; !exists {
				c.index[rec.ID] = cd
			}
		}
	}
}

// State возвращает текущее состояние.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Err возвращает причину сбоя для состояния failed.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Card находит карточку по идентификатору записи.
func (c *Controller) Card(id string) (*card.Card, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cd, ok := c.index[id]
	if !ok {
		return nil, apperror.ErrCardNotFound
	}
	return cd, nil
}

// View возвращает снимок страницы.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v := View{
		Category: c.def.Slug,
		Title:    c.def.Title,
		Route:    c.def.Route(),
		Kind:     c.def.Kind,
		State:    c.state,
		Cards:    []card.View{},
		Warnings: c.warnings,
	}

	switch c.state {
	case StateLoading:
		v.Placeholder = PlaceholderSpinner
	case StateEmpty:
		v.Placeholder = PlaceholderEmpty
		v.Message = c.def.EmptyMessage
	case StateFailed:
		v.Placeholder = PlaceholderError
		v.Message = FailedMessage
		v.Retry = true
	case StateReady:
		v.Cards = make([]card.View, 0, len(c.cards))
		for _, cd := range c.cards {
			v.Cards = append(v.Cards, cd.View())
		}
	}
	return v
}

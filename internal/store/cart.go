package store

import (
	"sync"

	"github.com/google/uuid"
)

// Cart - выбор фрилансеров в рамках одной сессии посетителя.
// Порядок добавления сохраняется, дубликаты не допускаются.
type Cart struct {
	Observable

	mu    sync.RWMutex
	items []string
}

// NewCart создаёт пустую корзину.
func NewCart() *Cart {
	return &Cart{}
}

// Add добавляет фрилансера, если его ещё нет. Возвращает true при добавлении.
func (c *Cart) Add(id string) bool {
	c.mu.Lock()
	for _, existing := range c.items {
		if existing == id {
			c.mu.Unlock()
			return false
		}
	}
	c.items = append(c.items, id)
	n := len(c.items)
	c.mu.Unlock()

	c.Publish(Change{Kind: ChangeAdd, Key: id, Value: n})
	return true
}

// Remove удаляет фрилансера. Возвращает false, если его не было.
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	idx := -1
	for i, existing := range c.items {
		if existing == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	n := len(c.items)
	c.mu.Unlock()

	c.Publish(Change{Kind: ChangeRemove, Key: id, Value: n})
	return true
}

// Contains проверяет наличие фрилансера в корзине.
func (c *Cart) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, existing := range c.items {
		if existing == id {
			return true
		}
	}
	return false
}

// Clear очищает корзину.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()

	c.Publish(Change{Kind: ChangeClear})
}

// Items возвращает копию списка в порядке добавления.
func (c *Cart) Items() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string{}, c.items...)
}

// Len возвращает число выбранных фрилансеров.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Carts хранит корзины по идентификатору сессии.
type Carts struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

// NewCarts создаёт реестр корзин.
func NewCarts() *Carts {
	return &Carts{carts: make(map[uuid.UUID]*Cart)}
}

// For возвращает корзину сессии, создавая её при первом обращении.
func (r *Carts) For(session uuid.UUID) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[session]
	if !ok {
		c = NewCart()
		r.carts[session] = c
	}
	return c
}

// Drop удаляет корзину сессии.
func (r *Carts) Drop(session uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, session)
}

// Len возвращает число активных корзин.
func (r *Carts) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

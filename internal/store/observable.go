// Package store содержит наблюдаемые хранилища сайта: счётчики исполнителей
// и корзину выбранных фрилансеров. Хранилища передаются зависимостями,
// глобального состояния нет.
package store

import "sync"

// ChangeKind - тип изменения.
type ChangeKind string

const (
	ChangeSet    ChangeKind = "set"
	ChangeAdd    ChangeKind = "add"
	ChangeRemove ChangeKind = "remove"
	ChangeClear  ChangeKind = "clear"
)

// Change описывает одно изменение хранилища.
type Change struct {
	Kind  ChangeKind
	Key   string
	Value int
}

// Observable рассылает изменения подписчикам. Подписчики вызываются
// синхронно, вне внутренней блокировки.
type Observable struct {
	mu   sync.RWMutex
	next int
	subs map[int]func(Change)
}

// Subscribe добавляет подписчика и возвращает функцию отписки.
func (o *Observable) Subscribe(fn func(Change)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.subs == nil {
		o.subs = make(map[int]func(Change))
	}
	id := o.next
	o.next++
	o.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Publish уведомляет всех подписчиков.
func (o *Observable) Publish(ch Change) {
	o.mu.RLock()
	subs := make([]func(Change), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.RUnlock()

	for _, fn := range subs {
		fn(ch)
	}
}

package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rishidar/freelance-connector/internal/logger"
)

// Hub учитывает живые сессии галерей по категориям и рассылает общие события.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба до отмены ctx.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.sendAll(payload)
		}
	}
}

// Register добавляет клиента. После остановки хаба вызов ничего не делает.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast отправляет событие всем подключённым сессиям.
func (h *Hub) Broadcast(event string, data any) error {
	raw, err := json.Marshal(Reply{Type: event, Data: data})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- raw:
	case <-h.done:
	}
	return nil
}

// Counts возвращает число активных сессий по категориям.
func (h *Hub) Counts() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make(map[string]int, len(h.clients))
	for category, clients := range h.clients {
		out[category] = len(clients)
	}
	return out
}

// Total возвращает общее число активных сессий.
func (h *Hub) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	category := client.session.Category()
	if _, ok := h.clients[category]; !ok {
		h.clients[category] = make(map[*Client]struct{})
	}
	h.clients[category][client] = struct{}{}
	logger.ForCategory(category).WithField("session", client.session.ID()).Debug("ws: сессия подключена")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	category := client.session.Category()
	if clients, ok := h.clients[category]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, category)
		}
	}
}

func (h *Hub) sendAll(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.enqueue(payload)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for _, set := range clients {
		for client := range set {
			client.shutdown()
		}
	}
}

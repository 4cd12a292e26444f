package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rishidar/freelance-connector/internal/gallery"
	"github.com/rishidar/freelance-connector/internal/goroutine"
	"github.com/rishidar/freelance-connector/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Client представляет одно подключение WebSocket живой галереи.
type Client struct {
	conn    *websocket.Conn
	hub     *Hub
	session *Session
	send    chan []byte

	closeOnce sync.Once
	done      chan struct{}
}

// NewClient создаёт нового клиента.
func NewClient(conn *websocket.Conn, hub *Hub, session *Session) *Client {
	return &Client{
		conn:    conn,
		hub:     hub,
		session: session,
		send:    make(chan []byte, 16),
		done:    make(chan struct{}),
	}
}

// Run регистрирует клиента, запускает загрузку галереи и обслуживает соединение
// до отключения. Загрузка, не завершившаяся к отключению, отбрасывается.
func (c *Client) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.hub.Register(c)

	c.session.Mount(ctx)

	// состояние покидает loading только один раз, поэтому итог отправляется ровно однажды
	initial := c.session.GalleryState()
	c.push(initial)
	if view, ok := initial.Data.(gallery.View); ok && view.State == gallery.StateLoading {
		goroutine.SafeGo(func() {
			select {
			case <-c.session.Done():
				if ctx.Err() == nil {
					c.push(c.session.GalleryState())
				}
			case <-c.done:
			}
		})
	}

	goroutine.SafeGo(c.writePump)
	c.readPump(ctx)
}

// Close снимает клиента с учёта и закрывает соединение.
func (c *Client) Close() {
	c.hub.Unregister(c)
	c.shutdown()
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) push(reply Reply) {
	raw, err := json.Marshal(reply)
	if err != nil {
		logger.L().WithError(err).Error("ws: не удалось сериализовать ответ")
		return
	}
	c.enqueue(raw)
}

// enqueue не блокирует: переполненный клиент отключается.
func (c *Client) enqueue(payload []byte) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.send <- payload:
	default:
		logger.L().WithField("session", c.session.ID()).Warn("ws: очередь клиента переполнена, соединение закрыто")
		goroutine.SafeGo(c.Close)
	}
}

func (c *Client) readPump(ctx context.Context) {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if ctx.Err() != nil {
			return
		}

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L().WithError(err).Debug("ws: соединение прервано")
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			c.push(errorReply("", ErrMalformedEvent))
			continue
		}

		c.push(c.session.Handle(ev))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

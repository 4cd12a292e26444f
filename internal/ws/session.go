package ws

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/rishidar/freelance-connector/internal/card"
	"github.com/rishidar/freelance-connector/internal/gallery"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

// Типы входящих событий.
const (
	EventGalleryState    = "gallery.state"
	EventVisibility      = "visibility"
	EventImage           = "image"
	EventDrawerToggle    = "drawer.toggle"
	EventPlaybackToggle  = "playback.toggle"
	EventMuteToggle      = "mute.toggle"
	EventAutoplayBlocked = "autoplay.blocked"
	EventModalOpen       = "modal.open"
	EventModalClose      = "modal.close"
	EventModalKey        = "modal.key"
	EventModalSeek       = "modal.seek"
	EventModalTime       = "modal.time"
	EventModalDuration   = "modal.duration"
)

// Типы исходящих сообщений.
const (
	ReplyGalleryState = "gallery.state"
	ReplyCardState    = "card.state"
	ReplyModalState   = "modal.state"
	ReplyError        = "error"
	ReplyCounters     = "counters.updated"
)

var (
	ErrUnknownEvent   = apperror.New(apperror.ErrCodeBadRequest, "неизвестное событие")
	ErrMalformedEvent = apperror.New(apperror.ErrCodeBadRequest, "сообщение должно быть JSON объектом")
)

// Event - сообщение от браузера.
type Event struct {
	Type     string  `json:"type"`
	CardID   string  `json:"card_id,omitempty"`
	Ratio    float64 `json:"ratio,omitempty"`
	Slot     int     `json:"slot,omitempty"`
	Status   string  `json:"status,omitempty"`
	Key      string  `json:"key,omitempty"`
	Position float64 `json:"position,omitempty"`
	Phase    string  `json:"phase,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Reply - сообщение браузеру: "type" содержит имя события, "data" полезную нагрузку.
type Reply struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// ErrorData - полезная нагрузка ответа error.
type ErrorData struct {
	Event   string `json:"event"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Session - живое посещение страницы галереи: контроллер страницы и плеер.
// Карточки независимы, событие меняет только адресованную карточку.
type Session struct {
	id         uuid.UUID
	controller *gallery.Controller
	modal      *card.Modal
}

// NewSession создаёт сессию поверх нового контроллера страницы.
func NewSession(controller *gallery.Controller) *Session {
	return &Session{
		id:         uuid.New(),
		controller: controller,
		modal:      card.NewModal(),
	}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() uuid.UUID { return s.id }

// Category возвращает slug галереи.
func (s *Session) Category() string { return s.controller.Category().Slug }

// Mount запускает загрузку галереи.
func (s *Session) Mount(ctx context.Context) {
	s.controller.Mount(ctx)
}

// Done закрывается, когда загрузка завершена.
func (s *Session) Done() <-chan struct{} {
	return s.controller.Done()
}

// GalleryState возвращает снимок страницы.
func (s *Session) GalleryState() Reply {
	return Reply{Type: ReplyGalleryState, Data: s.controller.View()}
}

// Handle применяет событие и возвращает ответ.
func (s *Session) Handle(ev Event) Reply {
	reply, err := s.handle(ev)
	if err != nil {
		return errorReply(ev.Type, err)
	}
	return reply
}

func (s *Session) handle(ev Event) (Reply, error) {
	switch ev.Type {
	case EventGalleryState:
		return s.GalleryState(), nil
	case EventVisibility:
		return s.withCard(ev.CardID, func(c *card.Card) error { return c.Observe(ev.Ratio) })
	case EventImage:
		return s.withCard(ev.CardID, func(c *card.Card) error {
			return c.ImageEvent(ev.Slot, card.ImageStatus(ev.Status))
		})
	case EventDrawerToggle:
		return s.withCard(ev.CardID, func(c *card.Card) error {
			c.ToggleDrawer()
			return nil
		})
	case EventPlaybackToggle:
		return s.withCard(ev.CardID, func(c *card.Card) error { return c.TogglePlay() })
	case EventMuteToggle:
		return s.withCard(ev.CardID, func(c *card.Card) error { return c.ToggleMute() })
	case EventAutoplayBlocked:
		return s.withCard(ev.CardID, func(c *card.Card) error { return c.AutoplayBlocked() })
	case EventModalOpen:
		c, err := s.controller.Card(ev.CardID)
		if err != nil {
			return Reply{}, err
		}
		if !c.Playable() {
			return Reply{}, card.ErrNotPlayable
		}
		return modalReply(s.modal.Open(c.Record()), nil)
	case EventModalClose:
		return modalReply(s.modal.Close(), nil)
	case EventModalKey:
		st, _, err := s.modal.HandleKey(ev.Key)
		return modalReply(st, err)
	case EventModalSeek:
		return modalReply(s.modal.Seek(card.SeekPhase(strings.ToLower(ev.Phase)), ev.Position))
	case EventModalTime:
		return modalReply(s.modal.TimeUpdate(ev.Position))
	case EventModalDuration:
		return modalReply(s.modal.SetDuration(ev.Duration))
	}
	return Reply{}, ErrUnknownEvent
}

func (s *Session) withCard(id string, fn func(*card.Card) error) (Reply, error) {
	c, err := s.controller.Card(id)
	if err != nil {
		return Reply{}, err
	}
	if err := fn(c); err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyCardState, Data: c.View()}, nil
}

func modalReply(st card.ModalState, err error) (Reply, error) {
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyModalState, Data: st}, nil
}

func errorReply(event string, err error) Reply {
	data := ErrorData{Event: event, Code: string(apperror.CodeOf(err)), Message: err.Error()}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		data.Message = appErr.Message
	}
	return Reply{Type: ReplyError, Data: data}
}

// Package card содержит состояние карточки работы: загрузку медиа по слотам,
// выдвижную панель деталей и воспроизведение видео по видимости.
package card

import (
	"sync"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

var (
	ErrSlotOutOfRange = apperror.New(apperror.ErrCodeBadRequest, "слот медиа не существует")
	ErrUnknownStatus  = apperror.New(apperror.ErrCodeBadRequest, "неизвестный статус загрузки")
	ErrNotPlayable    = apperror.New(apperror.ErrCodeBadRequest, "карточка не содержит видео")
)

// MediaView - снимок одного слота медиа.
type MediaView struct {
	URL         string      `json:"url"`
	Status      ImageStatus `json:"status"`
	Placeholder string      `json:"placeholder,omitempty"`
}

// Details - содержимое открытой панели деталей.
type Details struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Creator     string `json:"creator"`
	CreatedAt   string `json:"created_at"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// View - презентационное состояние карточки.
type View struct {
	ID         string           `json:"id"`
	Kind       models.MediaKind `json:"kind"`
	Title      string           `json:"title"`
	Creator    string           `json:"creator"`
	Thumbnail  string           `json:"thumbnail,omitempty"`
	Link       string           `json:"link,omitempty"`
	Media      []MediaView      `json:"media"`
	DrawerOpen bool             `json:"drawer_open"`
	Details    *Details         `json:"details,omitempty"`
	Playback   *PlaybackView    `json:"playback,omitempty"`
}

// Card - одна карточка галереи. Запись внутри карточки не изменяется.
type Card struct {
	mu       sync.Mutex
	record   models.MediaRecord
	kind     models.MediaKind
	slots    []ImageLifecycle
	drawer   bool
	playback *Playback
}

// New создаёт карточку записи в категории def.
func New(def models.CategoryDefinition, rec models.MediaRecord) *Card {
	c := &Card{
		record: rec.Clone(),
		kind:   def.Kind,
		slots:  make([]ImageLifecycle, len(rec.Media)),
	}
	for i, url := range rec.Media {
		c.slots[i] = NewImageLifecycle(url)
	}
	if def.Kind == models.MediaKindVideo {
		c.playback = NewPlayback(def.PlayThreshold)
	}
	return c
}

// ID возвращает идентификатор записи.
func (c *Card) ID() string {
	return c.record.ID
}

// Record возвращает копию записи.
func (c *Card) Record() models.MediaRecord {
	return c.record.Clone()
}

// Playable сообщает, есть ли у карточки видео.
func (c *Card) Playable() bool {
	return c.playback != nil
}

// ImageEvent применяет событие загрузки к слоту. Повторные события
// по уже загруженному или сломанному слоту игнорируются.
func (c *Card) ImageEvent(slot int, status ImageStatus) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if slot < 0 || slot >= len(c.slots) {
		return ErrSlotOutOfRange
	}
	c.slots[slot].Apply(status)
	return nil
}

// ToggleDrawer открывает или закрывает панель деталей.
func (c *Card) ToggleDrawer() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawer = !c.drawer
	return c.drawer
}

// Observe передаёт долю видимости видео.
func (c *Card) Observe(ratio float64) error {
	return c.withPlayback(func(p *Playback) { p.Observe(ratio) })
}

// TogglePlay переключает воспроизведение.
func (c *Card) TogglePlay() error {
	return c.withPlayback((*Playback).TogglePlay)
}

// ToggleMute переключает звук.
func (c *Card) ToggleMute() error {
	return c.withPlayback((*Playback).ToggleMute)
}

// AutoplayBlocked фиксирует отказ в автозапуске.
func (c *Card) AutoplayBlocked() error {
	return c.withPlayback((*Playback).Block)
}

func (c *Card) withPlayback(fn func(*Playback)) error {
	if c.playback == nil {
		return ErrNotPlayable
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.playback)
	return nil
}

// View возвращает снимок карточки.
func (c *Card) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		ID:         c.record.ID,
		Kind:       c.kind,
		Title:      c.record.Title,
		Creator:    c.record.Creator,
		Thumbnail:  c.record.Thumbnail,
		Link:       c.record.Link,
		Media:      make([]MediaView, len(c.slots)),
		DrawerOpen: c.drawer,
	}
	for i, s := range c.slots {
		v.Media[i] = MediaView{URL: s.URL(), Status: s.Status(), Placeholder: s.Placeholder()}
	}
	if c.drawer {
		v.Details = &Details{
			ID:          c.record.ID,
			Title:       c.record.Title,
			Creator:     c.record.Creator,
			CreatedAt:   c.record.CreatedAt,
			Description: c.record.Description,
			Category:    c.record.Category,
		}
	}
	if c.playback != nil {
		pv := c.playback.View()
		v.Playback = &pv
	}
	return v
}

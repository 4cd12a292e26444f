package card

import (
	"strings"
	"sync"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

var ErrModalClosed = apperror.New(apperror.ErrCodeBadRequest, "плеер не открыт")

// SeekPhase - этап перемотки ползунком.
type SeekPhase string

const (
	SeekStart SeekPhase = "start"
	SeekMove  SeekPhase = "move"
	SeekEnd   SeekPhase = "end"
)

// ModalState - снимок полноэкранного плеера.
type ModalState struct {
	Open       bool    `json:"open"`
	RecordID   string  `json:"record_id,omitempty"`
	Title      string  `json:"title,omitempty"`
	Creator    string  `json:"creator,omitempty"`
	URL        string  `json:"url,omitempty"`
	Playing    bool    `json:"playing"`
	Muted      bool    `json:"muted"`
	Fullscreen bool    `json:"fullscreen"`
	Dragging   bool    `json:"dragging"`
	Position   float64 `json:"position"`
	Duration   float64 `json:"duration"`
}

// Modal - плеер ролика на весь экран. Открытие плеера не трогает карточки
// галереи: их воспроизведение продолжает определяться видимостью.
type Modal struct {
	mu         sync.Mutex
	open       bool
	record     models.MediaRecord
	playing    bool
	muted      bool
	fullscreen bool
	dragging   bool
	position   float64
	duration   float64
}

// NewModal создаёт закрытый плеер.
func NewModal() *Modal {
	return &Modal{}
}

// Open открывает плеер для записи и сразу запускает её со звуком.
func (m *Modal) Open(rec models.MediaRecord) ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
	m.open = true
	m.record = rec.Clone()
	m.playing = true
	return m.stateLocked()
}

// Close закрывает плеер и сбрасывает его состояние.
func (m *Modal) Close() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
	return m.stateLocked()
}

// TogglePlay переключает воспроизведение.
func (m *Modal) TogglePlay() (ModalState, error) {
	return m.update(func() { m.playing = !m.playing })
}

// ToggleMute переключает звук.
func (m *Modal) ToggleMute() (ModalState, error) {
	return m.update(func() { m.muted = !m.muted })
}

// ToggleFullscreen переключает полноэкранный режим.
func (m *Modal) ToggleFullscreen() (ModalState, error) {
	return m.update(func() { m.fullscreen = !m.fullscreen })
}

// Seek обрабатывает перемотку. Позиция ограничивается [0, duration];
// пока ползунок удерживается, события времени от плеера игнорируются.
func (m *Modal) Seek(phase SeekPhase, position float64) (ModalState, error) {
	return m.update(func() {
		switch phase {
		case SeekStart:
			m.dragging = true
		case SeekEnd:
			m.dragging = false
		}
		m.position = m.clamp(position)
	})
}

// TimeUpdate принимает текущую позицию от плеера.
func (m *Modal) TimeUpdate(position float64) (ModalState, error) {
	return m.update(func() {
		if m.dragging {
			return
		}
		m.position = m.clamp(position)
	})
}

// SetDuration запоминает длительность ролика после загрузки метаданных.
func (m *Modal) SetDuration(duration float64) (ModalState, error) {
	return m.update(func() {
		if duration < 0 {
			duration = 0
		}
		m.duration = duration
		m.position = m.clamp(m.position)
	})
}

// HandleKey обрабатывает клавиатуру: пробел и k - пауза, m - звук,
// f - полный экран, Escape выходит из полного экрана, а если его нет, закрывает плеер.
// Возвращает false для клавиш без действия.
func (m *Modal) HandleKey(key string) (ModalState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return m.stateLocked(), false, ErrModalClosed
	}

	handled := true
	switch {
	case key == " " || strings.EqualFold(key, "space") || strings.EqualFold(key, "k"):
		m.playing = !m.playing
	case strings.EqualFold(key, "m"):
		m.muted = !m.muted
	case strings.EqualFold(key, "f"):
		m.fullscreen = !m.fullscreen
	case key == "Escape" || key == "Esc":
		if m.fullscreen {
			m.fullscreen = false
		} else {
			m.reset()
		}
	default:
		handled = false
	}
	return m.stateLocked(), handled, nil
}

// State возвращает снимок плеера.
func (m *Modal) State() ModalState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Modal) update(fn func()) (ModalState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return m.stateLocked(), ErrModalClosed
	}
	fn()
	return m.stateLocked(), nil
}

// reset возвращает плеер в закрытое состояние; мьютекс должен быть захвачен.
func (m *Modal) reset() {
	m.open = false
	m.record = models.MediaRecord{}
	m.playing = false
	m.muted = false
	m.fullscreen = false
	m.dragging = false
	m.position = 0
	m.duration = 0
}

func (m *Modal) clamp(position float64) float64 {
	if position < 0 {
		return 0
	}
	if m.duration > 0 && position > m.duration {
		return m.duration
	}
	return position
}

func (m *Modal) stateLocked() ModalState {
	if !m.open {
		return ModalState{}
	}
	return ModalState{
		Open:       true,
		RecordID:   m.record.ID,
		Title:      m.record.Title,
		Creator:    m.record.Creator,
		URL:        m.record.PrimaryMedia(),
		Playing:    m.playing,
		Muted:      m.muted,
		Fullscreen: m.fullscreen,
		Dragging:   m.dragging,
		Position:   m.position,
		Duration:   m.duration,
	}
}

package card

// DefaultThreshold - доля видимости карточки, начиная с которой видео играет.
const DefaultThreshold = 0.8

// PlaybackView - снимок состояния воспроизведения.
type PlaybackView struct {
	Playing   bool    `json:"playing"`
	Muted     bool    `json:"muted"`
	Blocked   bool    `json:"blocked"`
	Ratio     float64 `json:"ratio"`
	Threshold float64 `json:"threshold"`
}

// Playback управляет видео по доле его видимости. Каждый экземпляр
// независим: видимость одной карточки не влияет на другие.
type Playback struct {
	threshold float64
	ratio     float64
	playing   bool
	muted     bool
	blocked   bool
}

// NewPlayback создаёт блок воспроизведения. Порог вне (0, 1] заменяется на 0.8.
// Видео стартует без звука.
func NewPlayback(threshold float64) *Playback {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Playback{threshold: threshold, muted: true}
}

// Observe принимает новую долю видимости: на пороге и выше видео играет,
// ниже ставится на паузу.
func (p *Playback) Observe(ratio float64) {
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	p.ratio = ratio

	if ratio >= p.threshold {
		p.playing = true
		p.blocked = false
		return
	}
	p.playing = false
}

// TogglePlay переключает воспроизведение вручную.
func (p *Playback) TogglePlay() {
	p.playing = !p.playing
	if p.playing {
		p.blocked = false
	}
}

// ToggleMute переключает звук.
func (p *Playback) ToggleMute() {
	p.muted = !p.muted
}

// Block фиксирует отказ браузера в автозапуске: видео остаётся на паузе.
func (p *Playback) Block() {
	p.playing = false
	p.blocked = true
}

// View возвращает снимок состояния.
func (p *Playback) View() PlaybackView {
	return PlaybackView{
		Playing:   p.playing,
		Muted:     p.muted,
		Blocked:   p.blocked,
		Ratio:     p.ratio,
		Threshold: p.threshold,
	}
}

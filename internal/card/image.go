package card

// ImageStatus - состояние загрузки одного слота медиа.
type ImageStatus string

const (
	ImageNotLoaded ImageStatus = "not_loaded"
	ImageLoaded    ImageStatus = "loaded"
	ImageErrored   ImageStatus = "errored"
)

// Valid проверяет, что статус известен.
func (s ImageStatus) Valid() bool {
	switch s {
	case ImageNotLoaded, ImageLoaded, ImageErrored:
		return true
	}
	return false
}

// Плейсхолдеры слота.
const (
	PlaceholderLoading  = "loading"
	PlaceholderNotFound = "not_found"
)

// ImageLifecycle отслеживает загрузку одного изображения или видео.
// Переходы только вперёд: not_loaded -> loaded | errored.
type ImageLifecycle struct {
	url    string
	status ImageStatus
}

// NewImageLifecycle создаёт слот. Пустой URL сразу считается ошибкой.
func NewImageLifecycle(url string) ImageLifecycle {
	l := ImageLifecycle{url: url, status: ImageNotLoaded}
	if url == "" {
		l.status = ImageErrored
	}
	return l
}

// URL возвращает адрес медиа.
func (l ImageLifecycle) URL() string { return l.url }

// Status возвращает текущее состояние.
func (l ImageLifecycle) Status() ImageStatus { return l.status }

// Apply применяет событие загрузки. Возвращает false, если переход
// невозможен (слот уже в конечном состоянии или событие бессмысленно).
func (l *ImageLifecycle) Apply(next ImageStatus) bool {
	if l.status != ImageNotLoaded {
		return false
	}
	switch next {
	case ImageLoaded, ImageErrored:
		l.status = next
		return true
	}
	return false
}

// Placeholder возвращает плейсхолдер, который показывается вместо медиа.
func (l ImageLifecycle) Placeholder() string {
	switch l.status {
	case ImageNotLoaded:
		return PlaceholderLoading
	case ImageErrored:
		return PlaceholderNotFound
	}
	return ""
}

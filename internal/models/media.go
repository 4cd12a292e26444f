package models

// MediaKind определяет, как карточка показывает медиа.
type MediaKind string

const (
	MediaKindImage   MediaKind = "image"
	MediaKindVideo   MediaKind = "video"
	MediaKindWebsite MediaKind = "website"
)

// Valid проверяет, что тип медиа известен.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaKindImage, MediaKindVideo, MediaKindWebsite:
		return true
	}
	return false
}

// MediaRecord описывает одну работу из табличного источника категории.
// Пустая строка означает, что колонка в строке отсутствовала.
type MediaRecord struct {
	ID          string   `json:"id"`
	Creator     string   `json:"creator"`
	Title       string   `json:"title"`
	Media       []string `json:"media"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Link        string   `json:"link,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	CreatedAt   string   `json:"created_at"`
	SourceRow   int      `json:"source_row"`
}

// PrimaryMedia возвращает первую ссылку на медиа или пустую строку.
func (r MediaRecord) PrimaryMedia() string {
	if len(r.Media) == 0 {
		return ""
	}
	return r.Media[0]
}

// Clone возвращает копию записи, не разделяющую срез Media с оригиналом.
func (r MediaRecord) Clone() MediaRecord {
	out := r
	if r.Media != nil {
		out.Media = append([]string(nil), r.Media...)
	}
	return out
}

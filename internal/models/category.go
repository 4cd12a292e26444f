package models

// ColumnAliases перечисляет допустимые имена колонки в порядке приоритета.
type ColumnAliases []string

// ColumnMap связывает поля MediaRecord с колонками листа.
type ColumnMap struct {
	ID          ColumnAliases   `yaml:"id" json:"id"`
	Creator     ColumnAliases   `yaml:"creator" json:"creator"`
	Title       ColumnAliases   `yaml:"title" json:"title"`
	Media       []ColumnAliases `yaml:"media" json:"media"`
	Thumbnail   ColumnAliases   `yaml:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Link        ColumnAliases   `yaml:"link,omitempty" json:"link,omitempty"`
	Description ColumnAliases   `yaml:"description,omitempty" json:"description,omitempty"`
	Category    ColumnAliases   `yaml:"category,omitempty" json:"category,omitempty"`
	CreatedAt   ColumnAliases   `yaml:"created_at" json:"created_at"`
}

// CategoryDefinition описывает одну галерею работ.
type CategoryDefinition struct {
	Slug          string    `yaml:"slug" json:"slug"`
	Title         string    `yaml:"title" json:"title"`
	Kind          MediaKind `yaml:"kind" json:"kind"`
	Resource      string    `yaml:"resource" json:"resource"`
	PlayThreshold float64   `yaml:"play_threshold,omitempty" json:"play_threshold,omitempty"`
	EmptyMessage  string    `yaml:"empty_message,omitempty" json:"empty_message,omitempty"`
	Columns       ColumnMap `yaml:"columns" json:"columns"`
}

// MediaSlots возвращает количество слотов медиа у записи категории.
func (d CategoryDefinition) MediaSlots() int {
	if len(d.Columns.Media) == 0 {
		return 1
	}
	return len(d.Columns.Media)
}

// Route возвращает путь страницы галереи на сайте.
func (d CategoryDefinition) Route() string {
	return "/" + d.Slug
}

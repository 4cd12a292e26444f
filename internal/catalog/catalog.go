package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

// DefaultPlayThreshold - доля видимости карточки, с которой начинается автовоспроизведение.
const DefaultPlayThreshold = 0.8

// Registry хранит определения категорий в порядке отображения.
type Registry struct {
	order  []string
	bySlug map[string]models.CategoryDefinition
}

type fileLayout struct {
	Categories []models.CategoryDefinition `yaml:"categories"`
}

// NewRegistry проверяет определения и строит реестр.
func NewRegistry(defs []models.CategoryDefinition) (*Registry, error) {
	r := &Registry{bySlug: make(map[string]models.CategoryDefinition, len(defs))}
	for i, def := range defs {
		def, err := normalize(def)
		if err != nil {
			return nil, fmt.Errorf("catalog: категория #%d: %w", i+1, err)
		}
		if _, exists := r.bySlug[def.Slug]; exists {
			return nil, fmt.Errorf("catalog: категория %q объявлена дважды", def.Slug)
		}
		r.bySlug[def.Slug] = def
		r.order = append(r.order, def.Slug)
	}
	return r, nil
}

// LoadFile читает таблицу категорий из YAML.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: не удалось прочитать %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse разбирает YAML с ключом categories.
func Parse(raw []byte) (*Registry, error) {
	var layout fileLayout
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		return nil, fmt.Errorf("catalog: некорректный YAML: %w", err)
	}
	if len(layout.Categories) == 0 {
		return nil, fmt.Errorf("catalog: список categories пуст")
	}
	return NewRegistry(layout.Categories)
}

// Load возвращает реестр из файла, а без файла - встроенную таблицу.
func Load(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return NewRegistry(Defaults())
	}
	return LoadFile(path)
}

// Lookup возвращает категорию по slug.
func (r *Registry) Lookup(slug string) (models.CategoryDefinition, error) {
	def, ok := r.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return models.CategoryDefinition{}, apperror.ErrCategoryNotFound
	}
	return def, nil
}

// All возвращает категории в порядке объявления.
func (r *Registry) All() []models.CategoryDefinition {
	out := make([]models.CategoryDefinition, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.bySlug[slug])
	}
	return out
}

// Marshal сериализует реестр обратно в YAML (используется galleryctl).
func (r *Registry) Marshal() ([]byte, error) {
	return yaml.Marshal(fileLayout{Categories: r.All()})
}

func normalize(def models.CategoryDefinition) (models.CategoryDefinition, error) {
	def.Slug = strings.ToLower(strings.TrimSpace(def.Slug))
	if def.Slug == "" {
		return def, fmt.Errorf("slug обязателен")
	}
	if strings.TrimSpace(def.Resource) == "" {
		return def, fmt.Errorf("%s: resource обязателен", def.Slug)
	}
	if def.Kind == "" {
		def.Kind = models.MediaKindImage
	}
	if !def.Kind.Valid() {
		return def, fmt.Errorf("%s: неизвестный kind %q", def.Slug, def.Kind)
	}
	if def.Title == "" {
		def.Title = def.Slug
	}
	if def.Kind == models.MediaKindVideo && def.PlayThreshold == 0 {
		def.PlayThreshold = DefaultPlayThreshold
	}
	if def.PlayThreshold < 0 || def.PlayThreshold > 1 {
		return def, fmt.Errorf("%s: play_threshold должен быть в диапазоне 0..1", def.Slug)
	}
	if def.EmptyMessage == "" {
		def.EmptyMessage = fmt.Sprintf("No %s available at the moment.", strings.ToLower(def.Title))
	}
	if len(def.Columns.ID) == 0 {
		def.Columns.ID = models.ColumnAliases{"ID"}
	}
	if len(def.Columns.Creator) == 0 {
		def.Columns.Creator = models.ColumnAliases{"Creator"}
	}
	if len(def.Columns.Title) == 0 {
		def.Columns.Title = models.ColumnAliases{"Title"}
	}
	if len(def.Columns.CreatedAt) == 0 {
		def.Columns.CreatedAt = models.ColumnAliases{"CreatedAt"}
	}
	if len(def.Columns.Media) == 0 {
		return def, fmt.Errorf("%s: нужна хотя бы одна колонка media", def.Slug)
	}
	return def, nil
}

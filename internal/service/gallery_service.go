package service

import (
	"context"

	"github.com/rishidar/freelance-connector/internal/catalog"
	"github.com/rishidar/freelance-connector/internal/gallery"
	"github.com/rishidar/freelance-connector/internal/loader"
	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/source"
)

// WorkSummary - строка индекса работ.
type WorkSummary struct {
	Slug  string           `json:"slug"`
	Title string           `json:"title"`
	Kind  models.MediaKind `json:"kind"`
	Route string           `json:"route"`
}

// LoaderFactory создаёт загрузчик для категории.
type LoaderFactory func(def models.CategoryDefinition) loader.Interface

// GalleryService раздаёт контроллеры страниц галерей.
type GalleryService struct {
	registry  *catalog.Registry
	newLoader LoaderFactory
}

// NewGalleryService создаёт сервис галерей поверх таблицы категорий и источника данных.
func NewGalleryService(registry *catalog.Registry, fetcher source.Fetcher) *GalleryService {
	return NewGalleryServiceWithFactory(registry, func(def models.CategoryDefinition) loader.Interface {
		return loader.New(def, fetcher)
	})
}

// NewGalleryServiceWithFactory позволяет подменить загрузчик (в тестах).
func NewGalleryServiceWithFactory(registry *catalog.Registry, factory LoaderFactory) *GalleryService {
	return &GalleryService{registry: registry, newLoader: factory}
}

// Works возвращает список галерей в порядке таблицы категорий.
func (s *GalleryService) Works() []WorkSummary {
	defs := s.registry.All()
	out := make([]WorkSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, WorkSummary{
			Slug:  d.Slug,
			Title: d.Title,
			Kind:  d.Kind,
			Route: d.Route(),
		})
	}
	return out
}

// NewController создаёт контроллер нового посещения страницы. Контроллер ещё не смонтирован.
func (s *GalleryService) NewController(slug string) (*gallery.Controller, error) {
	def, err := s.registry.Lookup(slug)
	if err != nil {
		return nil, err
	}
	return gallery.New(s.newLoader(def)), nil
}

// Page монтирует контроллер и дожидается итогового состояния страницы.
func (s *GalleryService) Page(ctx context.Context, slug string) (gallery.View, error) {
	ctrl, err := s.NewController(slug)
	if err != nil {
		return gallery.View{}, err
	}
	return ctrl.Run(ctx)
}

// Inspect загружает категорию напрямую, без контроллера страницы.
func (s *GalleryService) Inspect(ctx context.Context, slug string) (loader.Result, error) {
	def, err := s.registry.Lookup(slug)
	if err != nil {
		return loader.Result{}, err
	}
	return s.newLoader(def).Load(ctx), nil
}

// Package source достаёт бинарные табличные ресурсы из каталога или по HTTP.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// ErrInvalidResource возвращается для путей, выходящих за пределы источника.
var ErrInvalidResource = errors.New("source: недопустимый путь ресурса")

// Fetcher открывает ресурс категории по относительному пути.
type Fetcher interface {
	Fetch(ctx context.Context, resource string) (io.ReadCloser, error)
	Describe(resource string) string
}

// New выбирает HTTP источник, если задан baseURL, иначе локальный каталог.
func New(dataDir, baseURL string, timeout time.Duration) Fetcher {
	if baseURL != "" {
		return NewHTTPFetcher(baseURL, timeout)
	}
	return NewFileFetcher(dataDir)
}

// FileFetcher читает ресурсы из каталога на диске.
type FileFetcher struct {
	root string
}

// NewFileFetcher создаёт источник поверх каталога.
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{root: root}
}

// Fetch открывает файл ресурса.
func (f *FileFetcher) Fetch(ctx context.Context, resource string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := cleanResource(resource)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(f.root, filepath.FromSlash(clean)))
	if err != nil {
		return nil, fmt.Errorf("source: не удалось открыть %s: %w", clean, err)
	}
	return file, nil
}

// Describe возвращает человекочитаемое расположение ресурса.
func (f *FileFetcher) Describe(resource string) string {
	return filepath.Join(f.root, filepath.FromSlash(resource))
}

// HTTPFetcher скачивает ресурсы относительно базового URL.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPFetcher создаёт HTTP источник.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch выполняет GET и отдаёт тело ответа.
func (f *HTTPFetcher) Fetch(ctx context.Context, resource string) (io.ReadCloser, error) {
	clean, err := cleanResource(resource)
	if err != nil {
		return nil, err
	}

	endpoint := f.Describe(clean)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("source: некорректный запрос %s: %w", endpoint, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: запрос %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("source: %s вернул статус %d", endpoint, resp.StatusCode)
	}
	return resp.Body, nil
}

// Describe возвращает URL ресурса с экранированными сегментами пути.
func (f *HTTPFetcher) Describe(resource string) string {
	segments := strings.Split(resource, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return f.baseURL + "/" + strings.Join(segments, "/")
}

func cleanResource(resource string) (string, error) {
	resource = strings.TrimSpace(strings.ReplaceAll(resource, "\\", "/"))
	if resource == "" {
		return "", ErrInvalidResource
	}
	clean := path.Clean("/" + resource)[1:]
	if clean == "" || clean != strings.TrimPrefix(resource, "/") {
		return "", ErrInvalidResource
	}
	return clean, nil
}

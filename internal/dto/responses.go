package dto

import (
	"time"

	"github.com/rishidar/freelance-connector/internal/models"
)

// ErrorResponse - стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ListResponse оборачивает коллекцию.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse создаёт ответ со списком; nil превращается в пустой массив.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// LinkResponse - готовая ссылка на мессенджер.
type LinkResponse struct {
	models.DeepLink
}

// CountersResponse - счётчики исполнителей по направлениям.
type CountersResponse struct {
	Counters map[string]int `json:"counters"`
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Checks       map[string]string `json:"checks"`
	LiveSessions map[string]int    `json:"live_sessions"`
}

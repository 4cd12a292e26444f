package models

import (
	"time"

	"github.com/google/uuid"
)

// Attachment описывает загруженный референс к заявке.
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"-"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lead содержит данные заявки клиента.
type Lead struct {
	CategoryIDs  []string
	MinBudget    int
	MaxBudget    int
	StartDate    string
	EndDate      string
	Requirements string
	Attachments  []Attachment
}

// DeepLink - готовая ссылка на мессенджер с текстом сообщения.
type DeepLink struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/storage"
	"github.com/rishidar/freelance-connector/internal/validation"
)

// Разрешённые типы референсов: изображения и видео.
var allowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"video/mp4":       true,
	"video/quicktime": true,
	"video/webm":      true,
}

// Расширения, которые считаются одним и тем же типом.
var extensionAliases = map[string]string{
	".jpeg": ".jpg",
}

var (
	ErrEmptyFile           = apperror.New(apperror.ErrCodeValidation, "файл не может быть пустым")
	ErrUnsupportedFileType = apperror.New(apperror.ErrCodeValidation, "разрешены только изображения и видео")
	ErrExtensionMismatch   = apperror.New(apperror.ErrCodeValidation, "расширение файла не соответствует его содержимому")
	ErrTooManyAttachments  = apperror.New(apperror.ErrCodeValidation, "слишком много вложений")
)

// AttachmentService принимает референсы к заявке и хранит их метаданные в памяти процесса.
type AttachmentService struct {
	storage       *storage.AttachmentStorage
	publicBaseURL string

	mu    sync.RWMutex
	items map[uuid.UUID]models.Attachment
}

// NewAttachmentService создаёт сервис вложений.
func NewAttachmentService(st *storage.AttachmentStorage, publicBaseURL string) *AttachmentService {
	return &AttachmentService{
		storage:       st,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		items:         make(map[uuid.UUID]models.Attachment),
	}
}

// Upload проверяет расширение и сигнатуру файла и сохраняет его.
func (s *AttachmentService) Upload(ctx context.Context, session uuid.UUID, name string, src io.ReadSeeker) (models.Attachment, error) {
	if len(s.List(session)) >= validation.MaxAttachmentsPerLead {
		return models.Attachment{}, ErrTooManyAttachments
	}

	header := make([]byte, 512)
	n, err := io.ReadFull(src, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return models.Attachment{}, apperror.Wrap(err, apperror.ErrCodeBadRequest, "не удалось прочитать файл")
	}
	if n == 0 {
		return models.Attachment{}, ErrEmptyFile
	}

	contentType, err := DetectAttachmentType(name, header[:n])
	if err != nil {
		return models.Attachment{}, err
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return models.Attachment{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сбросить позицию файла")
	}

	rel, size, err := s.storage.Save(ctx, name, src)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return models.Attachment{}, apperror.Wrap(err, apperror.ErrCodePayloadTooLarge,
				fmt.Sprintf("файл больше %d МБ", s.storage.MaxBytes()/(1024*1024)))
		}
		return models.Attachment{}, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить файл")
	}

	att := models.Attachment{
		ID:          uuid.New(),
		SessionID:   session,
		Name:        storage.SanitizeFilename(name),
		Path:        rel,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   time.Now().UTC(),
	}

	s.mu.Lock()
	s.items[att.ID] = att
	s.mu.Unlock()

	logger.L().WithField("attachment", att.ID).WithField("type", contentType).Info("attachments: файл принят")
	return att, nil
}

// DetectAttachmentType определяет MIME тип по сигнатуре и сверяет его с расширением.
func DetectAttachmentType(name string, header []byte) (string, error) {
	kind, err := filetype.Match(header)
	if err != nil || kind == filetype.Unknown {
		return "", ErrUnsupportedFileType
	}
	if !allowedAttachmentTypes[kind.MIME.Value] {
		return "", ErrUnsupportedFileType
	}

	if normalizeExt(filepath.Ext(name)) != normalizeExt("."+kind.Extension) {
		return "", ErrExtensionMismatch
	}
	return kind.MIME.Value, nil
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if alias, ok := extensionAliases[ext]; ok {
		return alias
	}
	return ext
}

// List возвращает вложения сессии по времени загрузки.
func (s *AttachmentService) List(session uuid.UUID) []models.Attachment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Attachment
	for _, a := range s.items {
		if a.SessionID == session {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Resolve возвращает вложения сессии в порядке ids.
func (s *AttachmentService) Resolve(session uuid.UUID, ids []uuid.UUID) ([]models.Attachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Attachment, 0, len(ids))
	for _, id := range ids {
		a, ok := s.items[id]
		if !ok || a.SessionID != session {
			return nil, apperror.ErrAttachmentNotFound
		}
		out = append(out, a)
	}
	return out, nil
}

// Delete удаляет вложение сессии вместе с файлом.
func (s *AttachmentService) Delete(ctx context.Context, session, id uuid.UUID) error {
	s.mu.Lock()
	a, ok := s.items[id]
	if !ok || a.SessionID != session {
		s.mu.Unlock()
		return apperror.ErrAttachmentNotFound
	}
	delete(s.items, id)
	s.mu.Unlock()

	return s.storage.Delete(ctx, a.Path)
}

// PublicURL возвращает адрес, по которому вложение доступно снаружи.
func (s *AttachmentService) PublicURL(a models.Attachment) string {
	return s.publicBaseURL + "/uploads/" + a.Path
}

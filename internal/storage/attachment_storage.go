package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrTooLarge возвращается, если файл превышает лимит загрузки.
var ErrTooLarge = errors.New("storage: размер файла превышает лимит")

// AttachmentStorage хранит референсы к заявкам в каталоге на диске,
// по случайному подкаталогу на каждую загрузку. Идентификатор сессии
// в путях не участвует: путь попадает в публичную ссылку.
type AttachmentStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewAttachmentStorage создаёт файловое хранилище.
func NewAttachmentStorage(rootPath string, maxUploadMB int64) (*AttachmentStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &AttachmentStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Root возвращает корневой каталог хранилища.
func (s *AttachmentStorage) Root() string {
	return s.rootPath
}

// MaxBytes возвращает лимит размера файла.
func (s *AttachmentStorage) MaxBytes() int64 {
	return s.maxUploadBytes
}

// Save записывает файл через временный и возвращает путь относительно корня
// (всегда с прямыми слешами) и размер.
func (s *AttachmentStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	uploadID := uuid.NewString()
	fileName := SanitizeFilename(originalName)
	dir := filepath.Join(s.rootPath, uploadID)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог загрузки: %w", err)
	}

	target := filepath.Join(dir, fileName)
	tmp := target + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, s.maxUploadBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.RemoveAll(dir)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	case written > s.maxUploadBytes:
		_ = os.RemoveAll(dir)
		return "", 0, ErrTooLarge
	case closeErr != nil:
		_ = os.RemoveAll(dir)
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", closeErr)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.RemoveAll(dir)
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return uploadID + "/" + fileName, written, nil
}

// Delete удаляет файл вместе с каталогом загрузки; отсутствие файла ошибкой не считается.
func (s *AttachmentStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	if dir := filepath.Dir(target); dir != filepath.Clean(s.rootPath) {
		// каталог загрузки содержит ровно один файл
		_ = os.Remove(dir)
	}
	return nil
}

// SanitizeFilename оставляет только базовое имя без разделителей путей и пробелов.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '?', '&', '#', '%':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		name = "attachment"
	}
	return name
}

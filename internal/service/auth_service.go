package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/validation"
)

// AdminAuthService проверяет пароль администратора и выдаёт токен.
type AdminAuthService struct {
	passwordHash []byte
	tokenManager *TokenManager
}

// NewAdminAuthService создаёт сервис входа администратора.
// Пустой хеш означает, что вход отключён.
func NewAdminAuthService(passwordHash string, tokenManager *TokenManager) *AdminAuthService {
	return &AdminAuthService{
		passwordHash: []byte(strings.TrimSpace(passwordHash)),
		tokenManager: tokenManager,
	}
}

// Enabled сообщает, настроен ли пароль администратора.
func (s *AdminAuthService) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login сверяет пароль с bcrypt хешем.
func (s *AdminAuthService) Login(ctx context.Context, password string) (*AccessToken, error) {
	if !s.Enabled() {
		logger.L().Warn("admin auth: ADMIN_PASSWORD_HASH не задан, вход отключён")
		return nil, apperror.ErrInvalidCredentials
	}
	if password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		logger.L().Warn("admin auth: неверный пароль")
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokenManager.IssueAdmin()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен")
	}
	return token, nil
}

// HashPassword проверяет пароль по политике и возвращает bcrypt хеш.
func HashPassword(password string) (string, error) {
	if err := validation.ValidatePassword(password); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захешировать пароль")
	}
	return string(hash), nil
}

package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/middleware"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

var (
	// ErrSessionNotFound - в контексте нет сессии посетителя
	ErrSessionNotFound = errors.New("сессия не найдена в контексте")

	// ErrInvalidUUID is returned when UUID parsing fails
	ErrInvalidUUID = errors.New("неверный формат UUID")
)

// CurrentSession извлекает сессию посетителя из контекста.
func CurrentSession(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return uuid.Nil, ErrSessionNotFound
	}

	id, ok := raw.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrSessionNotFound
	}

	return id, nil
}

// ParseUUIDParam parses UUID from URL parameter
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", paramName)
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// ParseUUIDs разбирает список идентификаторов из тела запроса.
func ParseUUIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, ErrInvalidUUID
		}
		out = append(out, id)
	}
	return out, nil
}

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("ошибка валидации запроса: %w", err)
	}
	return nil
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondAppError отвечает по коду AppError; прочие ошибки уходят в ErrorHandler.
func RespondAppError(c *gin.Context, err error) {
	status, body := middleware.Describe(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		return
	}
	c.JSON(status, body)
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message, Code: string(apperror.ErrCodeBadRequest)})
}

// RespondNoSession отвечает 400, если middleware сессии не отработал.
func RespondNoSession(c *gin.Context) {
	RespondBadRequest(c, ErrSessionNotFound.Error())
}

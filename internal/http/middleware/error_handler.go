package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Сообщения AppError отдаются клиенту, прочие ошибки маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, body := Describe(err)

		entry := logger.L().WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"status": status,
		})
		if status >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Warn("Request error")
		}

		c.JSON(status, body)
	}
}

// Describe превращает ошибку в HTTP статус и тело ответа.
func Describe(err error) (int, gin.H) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.HTTPStatus >= http.StatusInternalServerError && appErr.Code == apperror.ErrCodeInternal {
			message = "внутренняя ошибка сервера"
		}
		return appErr.HTTPStatus, gin.H{"error": message, "code": string(appErr.Code)}
	}
	return http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера", "code": string(apperror.ErrCodeInternal)}
}

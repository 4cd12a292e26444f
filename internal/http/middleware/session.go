package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader - заголовок с идентификатором сессии посетителя.
	SessionHeader = "X-Session-ID"
	// SessionCookie - cookie с тем же идентификатором.
	SessionCookie = "fc_session"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// Session определяет сессию посетителя по заголовку или cookie и выдаёт новую,
// если её нет или она невалидна. Корзина и вложения живут в рамках сессии.
func Session(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionFromRequest(c)
		if !ok {
			id = uuid.New()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id.String(), sessionCookieMaxAge, "/", "", secureCookie, true)
		}

		c.Header(SessionHeader, id.String())
		c.Set(ContextSessionKey, id)
		c.Next()
	}
}

func sessionFromRequest(c *gin.Context) (uuid.UUID, bool) {
	if raw := strings.TrimSpace(c.GetHeader(SessionHeader)); raw != "" {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			return id, true
		}
	}
	if raw, err := c.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

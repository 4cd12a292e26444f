package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// AuthHandler предоставляет вход администратора.
type AuthHandler struct {
	auth *service.AdminAuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login обрабатывает POST /api/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token.AccessToken,
		"token_type":   "Bearer",
		"expires_in":   int64(token.ExpiresIn.Seconds()),
		"expires_at":   token.ExpiresAt,
	})
}

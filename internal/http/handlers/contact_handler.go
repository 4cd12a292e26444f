package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// ContactHandler собирает ссылки со страницы контактов.
type ContactHandler struct {
	contact *service.ContactService
}

// NewContactHandler создаёт хэндлер контактов.
func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Message обрабатывает POST /api/contact/message.
func (h *ContactHandler) Message(c *gin.Context) {
	var req dto.ContactMessageRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	link, err := h.contact.Message(req.Message)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LinkResponse{DeepLink: link})
}

// Meeting обрабатывает POST /api/contact/meeting.
func (h *ContactHandler) Meeting(c *gin.Context) {
	var req dto.MeetingRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	link, err := h.contact.Meeting(req.Date, req.Time)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LinkResponse{DeepLink: link})
}

// Join обрабатывает GET /api/contact/join.
func (h *ContactHandler) Join(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LinkResponse{DeepLink: h.contact.Join()})
}

// Chat обрабатывает GET /api/contact/chat.
func (h *ContactHandler) Chat(c *gin.Context) {
	c.JSON(http.StatusOK, dto.LinkResponse{DeepLink: h.contact.Chat()})
}

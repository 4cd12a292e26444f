package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/logger"
	"github.com/rishidar/freelance-connector/internal/service"
	"github.com/rishidar/freelance-connector/internal/ws"
)

// WSHandler отвечает за живые сессии галерей.
type WSHandler struct {
	galleries *service.GalleryService
	hub       *ws.Hub
	upgrader  websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер.
func NewWSHandler(galleries *service.GalleryService, hub *ws.Hub, checkOrigin func(r *http.Request) bool) *WSHandler {
	return &WSHandler{
		galleries: galleries,
		hub:       hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Handle обслуживает GET /api/live/galleries/:slug.
func (h *WSHandler) Handle(c *gin.Context) {
	controller, err := h.galleries.NewController(c.Param("slug"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже записал ответ клиенту
		logger.L().WithError(err).Warn("ws: не удалось установить соединение")
		return
	}

	client := ws.NewClient(conn, h.hub, ws.NewSession(controller))
	client.Run(c.Request.Context())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/gallery"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// GalleryHandler отдаёт индекс работ и страницы галерей.
type GalleryHandler struct {
	galleries *service.GalleryService
}

// NewGalleryHandler создаёт хэндлер галерей.
func NewGalleryHandler(galleries *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleries: galleries}
}

// Works обрабатывает GET /api/works.
func (h *GalleryHandler) Works(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewListResponse(h.galleries.Works()))
}

// Gallery обрабатывает GET /api/galleries/:slug. Каждый запрос - новое посещение
// страницы со свежей загрузкой. Сбой загрузки отдаётся как 502 с телом страницы.
func (h *GalleryHandler) Gallery(c *gin.Context) {
	view, err := h.galleries.Page(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	status := http.StatusOK
	if view.State == gallery.StateFailed {
		status = http.StatusBadGateway
	}
	c.JSON(status, view)
}

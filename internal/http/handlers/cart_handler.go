package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// CartHandler управляет выбором исполнителей в сессии.
type CartHandler struct {
	carts   *service.CartService
	exports *service.ExportService
}

// NewCartHandler создаёт хэндлер корзины.
func NewCartHandler(carts *service.CartService, exports *service.ExportService) *CartHandler {
	return &CartHandler{carts: carts, exports: exports}
}

// Get обрабатывает GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}
	c.JSON(http.StatusOK, h.carts.Get(session))
}

// Add обрабатывает POST /api/cart.
func (h *CartHandler) Add(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}

	var req dto.CartAddRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	view, err := h.carts.Add(session, req.FreelancerID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Remove обрабатывает DELETE /api/cart/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}
	c.JSON(http.StatusOK, h.carts.Remove(session, c.Param("id")))
}

// Clear обрабатывает DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}
	c.JSON(http.StatusOK, h.carts.Clear(session))
}

// TeamPDF обрабатывает GET /api/cart/profile.pdf.
func (h *CartHandler) TeamPDF(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}

	doc, err := h.exports.TeamPDF(session)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	sendPDF(c, doc)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/export"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// FreelancerHandler отдаёт каталог исполнителей и их PDF профили.
type FreelancerHandler struct {
	freelancers *service.FreelancerService
	exports     *service.ExportService
}

// NewFreelancerHandler создаёт хэндлер каталога.
func NewFreelancerHandler(freelancers *service.FreelancerService, exports *service.ExportService) *FreelancerHandler {
	return &FreelancerHandler{freelancers: freelancers, exports: exports}
}

// List обрабатывает GET /api/freelancers.
func (h *FreelancerHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewListResponse(h.freelancers.List()))
}

// Get обрабатывает GET /api/freelancers/:id.
func (h *FreelancerHandler) Get(c *gin.Context) {
	f, err := h.freelancers.Get(c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// ProfilePDF обрабатывает GET /api/freelancers/:id/profile.pdf.
func (h *FreelancerHandler) ProfilePDF(c *gin.Context) {
	doc, err := h.exports.ProfilePDF(c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	sendPDF(c, doc)
}

func sendPDF(c *gin.Context, doc export.Document) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

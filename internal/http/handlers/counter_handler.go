package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// CounterHandler отдаёт и обновляет счётчики исполнителей.
type CounterHandler struct {
	counters *service.CounterService
}

// NewCounterHandler создаёт хэндлер счётчиков.
func NewCounterHandler(counters *service.CounterService) *CounterHandler {
	return &CounterHandler{counters: counters}
}

// List обрабатывает GET /api/counters.
func (h *CounterHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CountersResponse{Counters: h.counters.Counts(c.Request.Context())})
}

// Update обрабатывает PUT /api/admin/counters/:key.
func (h *CounterHandler) Update(c *gin.Context) {
	var req dto.CounterUpdateRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	category, err := h.counters.Set(c.Request.Context(), c.Param("key"), *req.Count)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

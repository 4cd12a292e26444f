package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/service"
)

// LeadHandler обслуживает форму подбора исполнителей.
type LeadHandler struct {
	leads    *service.LeadService
	counters *service.CounterService
}

// NewLeadHandler создаёт хэндлер заявок.
func NewLeadHandler(leads *service.LeadService, counters *service.CounterService) *LeadHandler {
	return &LeadHandler{leads: leads, counters: counters}
}

// Categories обрабатывает GET /api/leads/categories.
func (h *LeadHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewListResponse(h.counters.LeadCategories(c.Request.Context())))
}

// Create обрабатывает POST /api/leads.
func (h *LeadHandler) Create(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}

	var req dto.LeadRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	attachmentIDs, err := common.ParseUUIDs(req.AttachmentIDs)
	if err != nil {
		common.RespondBadRequest(c, "attachment_ids: "+err.Error())
		return
	}

	link, err := h.leads.Compose(c.Request.Context(), session, service.LeadInput{
		CategoryIDs:   req.CategoryIDs,
		MinBudget:     req.MinBudget,
		MaxBudget:     req.MaxBudget,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Requirements:  req.Requirements,
		AttachmentIDs: attachmentIDs,
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LinkResponse{DeepLink: link})
}

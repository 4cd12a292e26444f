package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rishidar/freelance-connector/internal/dto"
	"github.com/rishidar/freelance-connector/internal/http/handlers/common"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
	"github.com/rishidar/freelance-connector/internal/service"
)

// multipartOverhead - запас на заголовки multipart сверх лимита файла.
const multipartOverhead = 1 << 20

// AttachmentHandler принимает референсы к заявке.
type AttachmentHandler struct {
	attachments *service.AttachmentService
	maxBytes    int64
}

// NewAttachmentHandler создаёт хэндлер вложений.
func NewAttachmentHandler(attachments *service.AttachmentService, maxBytes int64) *AttachmentHandler {
	return &AttachmentHandler{attachments: attachments, maxBytes: maxBytes}
}

type attachmentResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// Upload обрабатывает POST /api/leads/attachments.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondAppError(c, apperror.New(apperror.ErrCodePayloadTooLarge, "файл слишком большой"))
			return
		}
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}

	if file.Size == 0 {
		common.RespondAppError(c, service.ErrEmptyFile)
		return
	}

	src, err := file.Open()
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer src.Close()

	att, err := h.attachments.Upload(c.Request.Context(), session, file.Filename, src)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attachmentResponse{
		ID:          att.ID.String(),
		Name:        att.Name,
		ContentType: att.ContentType,
		Size:        att.Size,
		URL:         h.attachments.PublicURL(att),
	})
}

// List обрабатывает GET /api/leads/attachments.
func (h *AttachmentHandler) List(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}

	items := h.attachments.List(session)
	out := make([]attachmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, attachmentResponse{
			ID:          a.ID.String(),
			Name:        a.Name,
			ContentType: a.ContentType,
			Size:        a.Size,
			URL:         h.attachments.PublicURL(a),
		})
	}
	c.JSON(http.StatusOK, dto.NewListResponse(out))
}

// Delete обрабатывает DELETE /api/leads/attachments/:id.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.RespondNoSession(c)
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.attachments.Delete(c.Request.Context(), session, id); err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

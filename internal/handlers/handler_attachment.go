package handlers

import (
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// attachmentHandler handles file upload and download requests.
type attachmentHandler struct {
	attachmentService portssvc.AttachmentSvcFacade
}

// newAttachmentHandler creates a new attachmentHandler.
func newAttachmentHandler(as portssvc.AttachmentSvcFacade) *attachmentHandler {
	return &attachmentHandler{attachmentService: as}
}

// registerAttachmentRoutes registers attachment routes.
func registerAttachmentRoutes(rg *gin.RouterGroup, attachmentService portssvc.AttachmentSvcFacade) {
	h := newAttachmentHandler(attachmentService)

	attachments := rg.Group("/attachments")
	{
		attachments.POST("", h.uploadAttachment)
		attachments.GET("/:attachment_id", h.getAttachment)
		attachments.GET("/:attachment_id/download", h.downloadAttachment)
	}
}

// uploadAttachment godoc
// @Summary Upload a file
// @Description Stores the file; the record stays unlinked until a message references it.
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} map[string]string "Invalid upload"
// @Security BearerAuth
// @Router /attachments [post]
func (h *attachmentHandler) uploadAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	uploaderID, ok := callerID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart field 'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	attachment, err := h.attachmentService.UploadAttachment(
		c.Request.Context(),
		uploaderID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		respondError(c, err, "Failed to store attachment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// getAttachment godoc
// @Summary Get attachment metadata
// @Tags attachments
// @Produce json
// @Param attachment_id path string true "Attachment ID"
// @Success 200 {object} dto.AttachmentResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /attachments/{attachment_id} [get]
func (h *attachmentHandler) getAttachment(c *gin.Context) {
	attachment, err := h.attachmentService.GetAttachmentByID(c.Request.Context(), c.Param("attachment_id"))
	if err != nil {
		respondError(c, err, "Failed to get attachment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttachmentResponse(attachment))
}

// downloadAttachment godoc
// @Summary Download an attachment
// @Tags attachments
// @Produce application/octet-stream
// @Param attachment_id path string true "Attachment ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /attachments/{attachment_id}/download [get]
func (h *attachmentHandler) downloadAttachment(c *gin.Context) {
	attachment, data, err := h.attachmentService.DownloadAttachment(c.Request.Context(), c.Param("attachment_id"))
	if err != nil {
		respondError(c, err, "Failed to download attachment")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+attachment.FileName+`"`)
	c.Data(http.StatusOK, attachment.ContentType, data)
}

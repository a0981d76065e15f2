package handlers

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khanhchel99/nkc-mail-backend/internal/api/response"
	"github.com/khanhchel99/nkc-mail-backend/internal/logger"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
)

// AttachmentHandler handles attachment metadata and downloads
type AttachmentHandler struct {
	attachmentRepo repository.AttachmentRepository
	emailRepo      repository.EmailRepository
	fileStorage    storage.FileStorage
	secLogger      *logger.SecurityLogger
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(
	attachmentRepo repository.AttachmentRepository,
	emailRepo repository.EmailRepository,
	fileStorage storage.FileStorage,
	secLogger *logger.SecurityLogger,
) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentRepo: attachmentRepo,
		emailRepo:      emailRepo,
		fileStorage:    fileStorage,
		secLogger:      secLogger,
	}
}

// List handles GET /api/emails/:email_id/attachments
func (h *AttachmentHandler) List(c echo.Context) error {
	emailID := c.Param("email_id")

	if _, err := h.emailRepo.GetByID(c.Request().Context(), emailID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "email not found")
		}
		return response.InternalError(c, "failed to get email")
	}

	attachments, err := h.attachmentRepo.ListByEmail(c.Request().Context(), emailID)
	if err != nil {
		return response.InternalError(c, "failed to list attachments")
	}

	return response.Success(c, attachments)
}

// Get handles GET /api/attachments/:id
func (h *AttachmentHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid attachment ID")
	}

	attachment, err := h.attachmentRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "attachment not found")
		}
		return response.InternalError(c, "failed to get attachment")
	}

	return response.Success(c, attachment)
}

// Download handles GET /api/attachments/:id/download, streaming the stored
// file
func (h *AttachmentHandler) Download(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid attachment ID")
	}

	attachment, err := h.attachmentRepo.GetByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "attachment not found")
		}
		return response.InternalError(c, "failed to get attachment")
	}

	file, err := h.fileStorage.Get(attachment.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrPathTraversal) {
			if h.secLogger != nil {
				h.secLogger.PathTraversalAttempt(c.RealIP(), c.Path(), attachment.FilePath)
			}
			return response.BadRequest(c, "invalid file path")
		}
		return response.InternalError(c, "failed to retrieve file")
	}
	defer file.Close()

	c.Response().Header().Set("Content-Type", attachment.ContentType)
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, attachment.Filename))
	if attachment.SizeBytes > 0 {
		c.Response().Header().Set("Content-Length", strconv.FormatInt(attachment.SizeBytes, 10))
	}

	if _, err := io.Copy(c.Response().Writer, file); err != nil {
		return response.InternalError(c, "failed to send file")
	}

	return nil
}

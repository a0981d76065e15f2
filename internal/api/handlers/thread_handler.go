package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/khanhchel99/nkc-mail-backend/internal/api/response"
	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/validator"
)

// ThreadHandler handles thread listing, conversation views, and admin replies
type ThreadHandler struct {
	threadRepo repository.ThreadRepository
	emailRepo  repository.EmailRepository
	dispatcher *mailer.Dispatcher
}

// NewThreadHandler creates a new ThreadHandler
func NewThreadHandler(threadRepo repository.ThreadRepository, emailRepo repository.EmailRepository, dispatcher *mailer.Dispatcher) *ThreadHandler {
	return &ThreadHandler{
		threadRepo: threadRepo,
		emailRepo:  emailRepo,
		dispatcher: dispatcher,
	}
}

// List handles GET /api/threads, newest first with email counts
func (h *ThreadHandler) List(c echo.Context) error {
	limit, offset := paginationParams(c)

	threads, total, err := h.threadRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list threads")
	}

	return response.Paginated(c, threads, total, limit, offset)
}

// Get handles GET /api/threads/:id, returning the thread with its full
// conversation in sent order
func (h *ThreadHandler) Get(c echo.Context) error {
	thread, err := h.threadRepo.GetWithEmails(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "thread not found")
		}
		return response.InternalError(c, "failed to get thread")
	}

	return response.Success(c, thread)
}

// ListEmails handles GET /api/threads/:id/emails with pagination
func (h *ThreadHandler) ListEmails(c echo.Context) error {
	threadID := c.Param("id")

	if _, err := h.threadRepo.GetByID(c.Request().Context(), threadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "thread not found")
		}
		return response.InternalError(c, "failed to get thread")
	}

	limit, offset := paginationParams(c)

	emails, total, err := h.emailRepo.ListByThread(c.Request().Context(), threadID, limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list emails")
	}

	return response.Paginated(c, emails, total, limit, offset)
}

// ReplyRequest is an admin reply into an existing thread
type ReplyRequest struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"html_content"`
	TextContent string `json:"text_content"`
}

// Reply handles POST /api/threads/:id/reply. The recipient defaults to the
// thread's customer and the subject picks up a "Re: " prefix when missing.
func (h *ThreadHandler) Reply(c echo.Context) error {
	threadID := c.Param("id")

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if req.Subject == "" {
		return response.BadRequest(c, "subject is required")
	}
	if req.HTMLContent == "" && req.TextContent == "" {
		return response.BadRequest(c, "html_content or text_content is required")
	}

	to := req.To
	if to == "" {
		thread, err := h.threadRepo.GetByID(c.Request().Context(), threadID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return response.NotFound(c, "thread not found")
			}
			return response.InternalError(c, "failed to get thread")
		}
		to = thread.CustomerEmail
	} else if err := validator.ValidateEmail(to); err != nil {
		return response.BadRequest(c, "invalid recipient email")
	}

	outcome, err := h.dispatcher.SendReplyEmail(
		c.Request().Context(),
		threadID,
		to,
		req.Subject,
		req.HTMLContent,
		req.TextContent,
		models.EmailTypeReply,
		true,
	)
	if err != nil {
		if errors.Is(err, apperrors.ErrThreadNotFound) {
			return response.NotFound(c, "thread not found")
		}
		return response.Error(c, err)
	}

	return response.Created(c, outcome)
}

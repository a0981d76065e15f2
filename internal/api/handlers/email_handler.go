package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/khanhchel99/nkc-mail-backend/internal/api/response"
	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
	"github.com/khanhchel99/nkc-mail-backend/internal/validator"
)

// EmailHandler handles templated sends and email record lookups
type EmailHandler struct {
	emailRepo  repository.EmailRepository
	dispatcher *mailer.Dispatcher
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(emailRepo repository.EmailRepository, dispatcher *mailer.Dispatcher) *EmailHandler {
	return &EmailHandler{
		emailRepo:  emailRepo,
		dispatcher: dispatcher,
	}
}

// SendEmailRequest is a templated send into an inquiry's thread
type SendEmailRequest struct {
	To            string         `json:"to"`
	Subject       string         `json:"subject"`
	TemplateID    string         `json:"template_id"`
	TemplateData  map[string]any `json:"template_data"`
	Language      string         `json:"language"`
	InquiryID     string         `json:"inquiry_id"`
	CustomerEmail string         `json:"customer_email"`
	CustomerName  string         `json:"customer_name"`
}

// Send handles POST /api/emails/send. The thread for the inquiry is created
// on first send and reused afterwards.
func (h *EmailHandler) Send(c echo.Context) error {
	var req SendEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if req.TemplateID == "" {
		return response.BadRequest(c, "template_id is required")
	}
	if err := validator.ValidateInquiryReference(req.InquiryID); err != nil {
		return response.BadRequest(c, "invalid inquiry_id: "+err.Error())
	}
	if err := validator.ValidateEmail(req.To); err != nil {
		return response.BadRequest(c, "invalid recipient email")
	}

	customerEmail := req.CustomerEmail
	if customerEmail == "" {
		customerEmail = req.To
	}

	outcome, err := h.dispatcher.SendEmailWithThread(c.Request().Context(), mailer.SendRequest{
		To:            req.To,
		Subject:       req.Subject,
		TemplateID:    req.TemplateID,
		TemplateData:  req.TemplateData,
		Language:      templates.ParseLanguage(req.Language),
		InquiryID:     req.InquiryID,
		CustomerEmail: customerEmail,
		CustomerName:  req.CustomerName,
		IsFromAdmin:   true,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			return response.NotFound(c, "template not found")
		}
		return response.Error(c, err)
	}

	return response.Created(c, outcome)
}

// Get handles GET /api/emails/:id, returning the full record with
// attachments
func (h *EmailHandler) Get(c echo.Context) error {
	email, err := h.emailRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "email not found")
		}
		return response.InternalError(c, "failed to get email")
	}

	return response.Success(c, email)
}

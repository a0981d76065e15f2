package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/khanhchel99/nkc-mail-backend/internal/api/response"
	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
	"github.com/khanhchel99/nkc-mail-backend/internal/validator"
)

// InquiryHandler handles inquiry intake and lookup
type InquiryHandler struct {
	inquiryRepo repository.InquiryRepository
	dispatcher  *mailer.Dispatcher
	logger      *slog.Logger
}

// NewInquiryHandler creates a new InquiryHandler
func NewInquiryHandler(inquiryRepo repository.InquiryRepository, dispatcher *mailer.Dispatcher, logger *slog.Logger) *InquiryHandler {
	return &InquiryHandler{
		inquiryRepo: inquiryRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// CreateInquiryRequest is the intake payload pushed by the storefront
type CreateInquiryRequest struct {
	Reference     string `json:"reference"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CompanyName   string `json:"company_name"`
	Message       string `json:"message"`
	ItemCount     int    `json:"item_count"`
	Language      string `json:"language"`
}

// CreateInquiryResponse reports the stored inquiry and whether the
// acknowledgment email went out
type CreateInquiryResponse struct {
	Inquiry        *models.Inquiry     `json:"inquiry"`
	Acknowledgment *mailer.SendOutcome `json:"acknowledgment,omitempty"`
	AckError       string              `json:"acknowledgment_error,omitempty"`
}

// Create handles POST /api/inquiries. The inquiry is persisted first; an
// acknowledgment failure does not roll it back, the response reports it
// instead so the admin UI can retry the send.
func (h *InquiryHandler) Create(c echo.Context) error {
	var req CreateInquiryRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validator.ValidateInquiryReference(req.Reference); err != nil {
		return response.BadRequest(c, "invalid inquiry reference: "+err.Error())
	}
	if err := validator.ValidateEmail(req.CustomerEmail); err != nil {
		return response.BadRequest(c, "invalid customer email: "+err.Error())
	}
	if req.CustomerName == "" {
		return response.BadRequest(c, "customer_name is required")
	}
	if req.ItemCount < 0 {
		return response.BadRequest(c, "item_count cannot be negative")
	}

	inquiry := &models.Inquiry{
		Reference:     req.Reference,
		CustomerName:  validator.SanitizeString(req.CustomerName, validator.MaxCustomerNameLength),
		CustomerEmail: req.CustomerEmail,
		CompanyName:   validator.SanitizeString(req.CompanyName, validator.MaxCompanyNameLength),
		Message:       validator.SanitizeMultiline(req.Message, validator.MaxMessageLength),
		ItemCount:     req.ItemCount,
	}

	if err := h.inquiryRepo.Create(c.Request().Context(), inquiry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return response.Conflict(c, "inquiry with this reference already exists")
		}
		return response.InternalError(c, "failed to create inquiry")
	}

	resp := &CreateInquiryResponse{Inquiry: inquiry}

	lang := templates.ParseLanguage(req.Language)
	outcome, err := h.dispatcher.SendInquiryAcknowledgment(c.Request().Context(), inquiry, lang)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("acknowledgment send failed",
				slog.String("reference", inquiry.Reference),
				slog.Any("error", err))
		}
		resp.AckError = apperrors.GetErrorCode(err)
	} else {
		resp.Acknowledgment = outcome
	}

	return response.Created(c, resp)
}

// List handles GET /api/inquiries
func (h *InquiryHandler) List(c echo.Context) error {
	limit, offset := paginationParams(c)

	inquiries, total, err := h.inquiryRepo.List(c.Request().Context(), limit, offset)
	if err != nil {
		return response.InternalError(c, "failed to list inquiries")
	}

	return response.Paginated(c, inquiries, total, limit, offset)
}

// Get handles GET /api/inquiries/:reference
func (h *InquiryHandler) Get(c echo.Context) error {
	reference := c.Param("reference")
	if err := validator.ValidateInquiryReference(reference); err != nil {
		return response.BadRequest(c, "invalid inquiry reference")
	}

	inquiry, err := h.inquiryRepo.GetByReference(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "inquiry not found")
		}
		return response.InternalError(c, "failed to get inquiry")
	}

	return response.Success(c, inquiry)
}

// GetThread handles GET /api/inquiries/:reference/thread, returning the
// conversation for an inquiry in sent order
func (h *InquiryHandler) GetThread(c echo.Context) error {
	reference := c.Param("reference")
	if err := validator.ValidateInquiryReference(reference); err != nil {
		return response.BadRequest(c, "invalid inquiry reference")
	}

	thread, err := h.dispatcher.GetEmailThread(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrThreadNotFound) {
			return response.NotFound(c, "no thread for this inquiry")
		}
		return response.InternalError(c, "failed to get thread")
	}

	return response.Success(c, thread)
}

// paginationParams reads limit/offset query parameters with sane bounds
func paginationParams(c echo.Context) (int, int) {
	limit := 0
	offset := 0

	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil {
			offset = parsed
		}
	}

	return validator.ValidatePagination(limit, offset)
}

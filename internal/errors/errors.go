package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicateEntry indicates a unique constraint violation
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrInquiryNotFound indicates the inquiry was not found
	ErrInquiryNotFound = errors.New("inquiry not found")

	// ErrThreadNotFound indicates the email thread was not found
	ErrThreadNotFound = errors.New("thread not found")

	// ErrEmailNotFound indicates the email record was not found
	ErrEmailNotFound = errors.New("email not found")

	// ErrAttachmentNotFound indicates the attachment was not found
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrTemplateNotFound indicates no template is registered for the id
	ErrTemplateNotFound = errors.New("template not found")

	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates forbidden access
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")

	// Mailer-specific errors

	// ErrTransportFailure indicates the mail transport reported a failed send
	ErrTransportFailure = errors.New("mail transport failure")

	// ErrTransportTimeout indicates the mail transport did not respond in time
	ErrTransportTimeout = errors.New("mail transport timeout")

	// ErrSentNotRecorded indicates the message was delivered to the transport
	// but the database write for its record failed. The send cannot be undone;
	// callers must treat this as "sent but not recorded" and reconcile manually.
	ErrSentNotRecorded = errors.New("email sent but not recorded")
)

// Error codes for API responses
const (
	CodeNotFound         = "NOT_FOUND"
	CodeDuplicateEntry   = "DUPLICATE_ENTRY"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
	CodeThreadNotFound   = "THREAD_NOT_FOUND"
	CodeTransportFailure = "TRANSPORT_FAILURE"
	CodeTransportTimeout = "TRANSPORT_TIMEOUT"
	CodeSentNotRecorded  = "SENT_NOT_RECORDED"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInquiryNotFound) ||
		errors.Is(err, ErrThreadNotFound) ||
		errors.Is(err, ErrEmailNotFound) ||
		errors.Is(err, ErrAttachmentNotFound)
}

// IsDuplicateEntry checks if the error is a duplicate entry error
func IsDuplicateEntry(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransportError checks if the error came from the mail transport,
// including timeouts.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransportFailure) || errors.Is(err, ErrTransportTimeout)
}

// IsSentNotRecorded checks for the partial-failure case where the transport
// accepted the message but persistence failed.
func IsSentNotRecorded(err error) bool {
	return errors.Is(err, ErrSentNotRecorded)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		return CodeTemplateNotFound
	case errors.Is(err, ErrThreadNotFound):
		return CodeThreadNotFound
	case IsNotFound(err):
		return CodeNotFound
	case IsDuplicateEntry(err):
		return CodeDuplicateEntry
	case IsInvalidInput(err):
		return CodeInvalidInput
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrTransportTimeout):
		return CodeTransportTimeout
	case errors.Is(err, ErrTransportFailure):
		return CodeTransportFailure
	case errors.Is(err, ErrSentNotRecorded):
		return CodeSentNotRecorded
	default:
		return CodeInternalError
	}
}

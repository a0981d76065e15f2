// Package response provides the standard JSON envelope for API responses.
package response

import (
	"net/http"

	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"github.com/labstack/echo/v4"
)

// APIResponse is the envelope for successful responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the envelope for failed responses. Code carries the
// machine-readable error code clients switch on.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// PaginatedResponse wraps a list with its pagination metadata.
type PaginatedResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    Meta        `json:"meta"`
}

type Meta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func Success(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

func SuccessWithMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func Paginated(c echo.Context, data interface{}, total int64, limit, offset int) error {
	return c.JSON(http.StatusOK, PaginatedResponse{
		Success: true,
		Data:    data,
		Meta:    Meta{Total: total, Limit: limit, Offset: offset},
	})
}

// Error renders err with the status its error code maps to.
func Error(c echo.Context, err error) error {
	code := apperrors.GetErrorCode(err)
	return fail(c, getHTTPStatus(code), err.Error(), code)
}

func BadRequest(c echo.Context, message string) error {
	return fail(c, http.StatusBadRequest, message, apperrors.CodeInvalidInput)
}

func NotFound(c echo.Context, message string) error {
	return fail(c, http.StatusNotFound, message, apperrors.CodeNotFound)
}

func Conflict(c echo.Context, message string) error {
	return fail(c, http.StatusConflict, message, apperrors.CodeDuplicateEntry)
}

func InternalError(c echo.Context, message string) error {
	return fail(c, http.StatusInternalServerError, message, apperrors.CodeInternalError)
}

func fail(c echo.Context, status int, message, code string) error {
	return c.JSON(status, ErrorResponse{Success: false, Error: message, Code: code})
}

// getHTTPStatus maps error codes to HTTP status codes. Transport errors map
// to gateway statuses since the upstream relay failed, not this service.
// SENT_NOT_RECORDED stays a 500: the message left the building but the
// record write failed, and the client must not retry the send.
func getHTTPStatus(code string) int {
	switch code {
	case apperrors.CodeNotFound, apperrors.CodeThreadNotFound, apperrors.CodeTemplateNotFound:
		return http.StatusNotFound
	case apperrors.CodeDuplicateEntry:
		return http.StatusConflict
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeTransportFailure:
		return http.StatusBadGateway
	case apperrors.CodeTransportTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/khanhchel99/nkc-mail-backend/internal/api/response"
	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
)

// TemplateHandler exposes the template registry to the admin UI
type TemplateHandler struct {
	registry *templates.Registry
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(registry *templates.Registry) *TemplateHandler {
	return &TemplateHandler{registry: registry}
}

// TemplateSummary lists a template without its bodies
type TemplateSummary struct {
	ID      string              `json:"id"`
	Name    templates.Bilingual `json:"name"`
	Subject templates.Bilingual `json:"subject"`
}

// List handles GET /api/templates, in registration order
func (h *TemplateHandler) List(c echo.Context) error {
	all := h.registry.All()

	summaries := make([]TemplateSummary, 0, len(all))
	for _, tmpl := range all {
		summaries = append(summaries, TemplateSummary{
			ID:      tmpl.ID,
			Name:    tmpl.Name,
			Subject: tmpl.Subject,
		})
	}

	return response.Success(c, summaries)
}

// Get handles GET /api/templates/:id
func (h *TemplateHandler) Get(c echo.Context) error {
	tmpl, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			return response.Error(c, err)
		}
		return response.InternalError(c, "failed to get template")
	}

	return response.Success(c, tmpl)
}

// PreviewRequest carries variables for a template preview render
type PreviewRequest struct {
	Language string         `json:"language"`
	Data     map[string]any `json:"data"`
}

// Preview handles POST /api/templates/:id/preview. It renders without
// sending, so the admin UI can show exactly what the customer would get.
func (h *TemplateHandler) Preview(c echo.Context) error {
	tmpl, err := h.registry.Lookup(c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrTemplateNotFound) {
			return response.Error(c, err)
		}
		return response.InternalError(c, "failed to get template")
	}

	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	rendered := templates.Render(tmpl, templates.ParseLanguage(req.Language), req.Data)
	return response.Success(c, rendered)
}

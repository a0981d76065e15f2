package templates

import (
	"fmt"

	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
)

// Registry holds the set of registered templates. Templates are registered
// once at construction and the registry is read-only afterwards, so it is
// safe for concurrent use.
type Registry struct {
	order []string
	byID  map[string]*Template
}

// NewRegistry builds a registry containing the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]*Template)}
	for _, tmpl := range builtinTemplates() {
		r.register(tmpl)
	}
	return r
}

func (r *Registry) register(tmpl *Template) {
	if _, exists := r.byID[tmpl.ID]; exists {
		panic(fmt.Sprintf("duplicate template ID %q", tmpl.ID))
	}
	r.order = append(r.order, tmpl.ID)
	r.byID[tmpl.ID] = tmpl
}

// Lookup returns the template with the given ID, or ErrTemplateNotFound.
func (r *Registry) Lookup(id string) (*Template, error) {
	tmpl, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("template '%s': %w", id, apperrors.ErrTemplateNotFound)
	}
	return tmpl, nil
}

// All returns every registered template in registration order.
func (r *Registry) All() []*Template {
	result := make([]*Template, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}

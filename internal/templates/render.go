package templates

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// Conditional blocks are resolved in a single pass before variable
	// substitution. The lazy inner match makes nested blocks unsupported.
	conditionalPattern = regexp.MustCompile(`(?s)\{\{#if\s+(\w+)\s*\}\}(.*?)\{\{/if\}\}`)
	variablePattern    = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)
)

// Rendered is the final content produced for one message.
type Rendered struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// Render produces the final subject, HTML body, and text body for a template
// in the chosen language. It is a pure function: no I/O, no state, the same
// inputs always produce the same output.
func Render(tmpl *Template, lang Language, vars map[string]any) Rendered {
	return Rendered{
		Subject: RenderString(tmpl.Subject.In(lang), vars),
		HTML:    RenderString(tmpl.HTML.In(lang), vars),
		Text:    RenderString(tmpl.Text.In(lang), vars),
	}
}

// RenderString applies conditional blocks and variable substitution to a
// single template string. Variables absent from vars render as the empty
// string, never as a literal {{name}} token.
func RenderString(s string, vars map[string]any) string {
	s = conditionalPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := conditionalPattern.FindStringSubmatch(match)
		if truthy(vars[groups[1]]) {
			return groups[2]
		}
		return ""
	})

	return variablePattern.ReplaceAllStringFunc(s, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			return ""
		}
		return stringify(value)
	})
}

// truthy reports whether a condition value includes its {{#if}} block:
// defined, non-empty for strings, non-zero for numbers.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case int:
		return value != 0
	case int64:
		return value != 0
	case float64:
		return value != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

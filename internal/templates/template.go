// Package templates holds the bilingual transactional email templates and
// the renderer that turns them into final message content.
package templates

// Language selects which variant of a bilingual template is rendered.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageVietnamese Language = "vi"
)

// ParseLanguage maps a request-supplied language code to a supported
// Language. Anything other than "vi" falls back to English.
func ParseLanguage(code string) Language {
	if code == string(LanguageVietnamese) {
		return LanguageVietnamese
	}
	return LanguageEnglish
}

// Bilingual is a pair of strings, one per supported language.
type Bilingual struct {
	EN string `json:"en"`
	VI string `json:"vi"`
}

// In returns the string for the given language.
func (b Bilingual) In(lang Language) string {
	if lang == LanguageVietnamese {
		return b.VI
	}
	return b.EN
}

// Template is a named, bilingual, dual-format message blueprint. All fields
// are set at process start and never mutated afterwards, so a Template is
// safe for concurrent use.
type Template struct {
	ID      string    `json:"id"`
	Name    Bilingual `json:"name"`
	Subject Bilingual `json:"subject"`
	HTML    Bilingual `json:"html"`
	Text    Bilingual `json:"text"`
}

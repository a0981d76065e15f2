package smtp

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/jhillyerd/enmime"
)

const snippetMaxLen = 255

// ParsedEmail represents a parsed inbound reply
type ParsedEmail struct {
	SenderEmail string
	SenderName  string
	Subject     string
	MessageID   string
	Snippet     string
	BodyText    string
	BodyHTML    string
	Attachments []ParsedAttachment
}

// ParsedAttachment represents a parsed email attachment
type ParsedAttachment struct {
	Filename    string
	ContentType string
	Content     io.Reader
	Size        int64
}

// fromHeaderRe matches `"Name" <email>`, `Name <email>`, or a bare address.
var fromHeaderRe = regexp.MustCompile(`^(?:"?([^"<]*)"?\s*)?<?([^<>]+@[^<>]+)>?$`)

// ParseEmail reads a raw MIME message and extracts the fields a reply record
// needs: sender, subject, Message-ID, both body variants, a display snippet,
// and any attachments (inline parts with filenames included, since customers
// often attach photos inline).
func ParseEmail(r io.Reader) (*ParsedEmail, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedEmail{
		Subject:   env.GetHeader("Subject"),
		MessageID: strings.TrimSpace(env.GetHeader("Message-ID")),
		BodyText:  env.Text,
		BodyHTML:  env.HTML,
	}
	parsed.SenderName, parsed.SenderEmail = parseFromHeader(env.GetHeader("From"))
	parsed.Snippet = generateSnippet(parsed.BodyText, parsed.BodyHTML)

	for _, att := range env.Attachments {
		parsed.Attachments = append(parsed.Attachments, toParsedAttachment(att))
	}
	for _, att := range env.Inlines {
		if att.FileName != "" {
			parsed.Attachments = append(parsed.Attachments, toParsedAttachment(att))
		}
	}

	return parsed, nil
}

func toParsedAttachment(part *enmime.Part) ParsedAttachment {
	return ParsedAttachment{
		Filename:    part.FileName,
		ContentType: part.ContentType,
		Content:     bytes.NewReader(part.Content),
		Size:        int64(len(part.Content)),
	}
}

// parseFromHeader extracts the display name and address from a From header.
// Anything unparseable is treated as a bare address.
func parseFromHeader(from string) (name, email string) {
	from = strings.TrimSpace(from)
	if from == "" {
		return "", ""
	}

	matches := fromHeaderRe.FindStringSubmatch(from)
	if len(matches) < 3 {
		return "", from
	}

	name = strings.Trim(strings.TrimSpace(matches[1]), `"`)
	email = strings.TrimSpace(matches[2])
	return name, email
}

// generateSnippet builds the short plain-text preview shown in thread lists,
// preferring the text body over stripped HTML.
func generateSnippet(bodyText, bodyHTML string) string {
	text := bodyText
	if text == "" && bodyHTML != "" {
		text = stripHTMLTags(bodyHTML)
	}

	// Collapse runs of whitespace from quoted-printable wrapping
	text = strings.Join(strings.Fields(text), " ")

	if len(text) > snippetMaxLen {
		text = text[:snippetMaxLen-3] + "..."
	}
	return text
}

var (
	scriptStyleRe = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>|<style[^>]*>[\s\S]*?</style>`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	htmlEntities  = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// stripHTMLTags reduces an HTML body to its visible text
func stripHTMLTags(html string) string {
	html = scriptStyleRe.ReplaceAllString(html, "")
	html = htmlTagRe.ReplaceAllString(html, " ")
	return htmlEntities.Replace(html)
}

package smtp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/storage"
	"github.com/khanhchel99/nkc-mail-backend/internal/validator"
	"github.com/khanhchel99/nkc-mail-backend/internal/websocket"
)

// replyAddressPrefix is the local-part prefix of thread reply addresses.
// Outbound mail sets Reply-To to replies+<threadID>@<replyDomain>, so the
// thread ID comes back in the recipient address.
const replyAddressPrefix = "replies+"

// Session represents one inbound SMTP transaction
type Session struct {
	backend   *Backend
	from      string
	threadIDs []string
}

// NewSession creates a new SMTP session
func NewSession(backend *Backend) *Session {
	return &Session{
		backend: backend,
	}
}

// AuthPlain handles PLAIN authentication. Inbound reply delivery does not
// require authentication.
func (s *Session) AuthPlain(username, password string) error {
	return nil
}

// Mail handles the MAIL FROM command
func (s *Session) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	if s.backend.logger != nil {
		s.backend.logger.Debug("MAIL FROM", slog.String("from", from))
	}
	return nil
}

// Rcpt handles the RCPT TO command. Only thread reply addresses are
// deliverable; everything else is rejected at this stage.
func (s *Session) Rcpt(to string, opts *smtp.RcptOptions) error {
	threadID, domain, err := parseReplyAddress(to)
	if err != nil {
		if s.backend.secLogger != nil {
			s.backend.secLogger.RejectedRecipient(s.from, to, "malformed_address")
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "Invalid recipient address",
		}
	}

	if s.backend.replyDomain != "" && domain != strings.ToLower(s.backend.replyDomain) {
		if s.backend.secLogger != nil {
			s.backend.secLogger.RejectedRecipient(s.from, to, "wrong_domain")
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 2},
			Message:      "Relay not permitted",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.backend.threadRepo.GetByID(ctx, threadID); err != nil {
		if s.backend.secLogger != nil {
			s.backend.secLogger.RejectedRecipient(s.from, to, "unknown_thread")
		}
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "No such conversation",
		}
	}

	s.threadIDs = append(s.threadIDs, threadID)
	if s.backend.logger != nil {
		s.backend.logger.Debug("RCPT TO accepted",
			slog.String("to", to),
			slog.String("thread_id", threadID))
	}
	return nil
}

// Data handles the DATA command, filing the message into every accepted
// thread. A failure on one thread does not block delivery to the others.
func (s *Session) Data(r io.Reader) error {
	if len(s.threadIDs) == 0 {
		return &smtp.SMTPError{
			Code:         554,
			EnhancedCode: smtp.EnhancedCode{5, 5, 1},
			Message:      "No valid recipients",
		}
	}

	parsed, err := ParseEmail(r)
	if err != nil {
		if s.backend.logger != nil {
			s.backend.logger.Error("failed to parse inbound message", slog.Any("error", err))
		}
		return &smtp.SMTPError{
			Code:         554,
			EnhancedCode: smtp.EnhancedCode{5, 6, 0},
			Message:      "Message could not be parsed",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var lastErr error
	for _, threadID := range s.threadIDs {
		if err := s.fileReply(ctx, threadID, parsed); err != nil {
			if s.backend.logger != nil {
				s.backend.logger.Error("failed to file reply",
					slog.String("thread_id", threadID),
					slog.Any("error", err))
			}
			lastErr = err
			continue
		}
	}

	if lastErr != nil && len(s.threadIDs) == 1 {
		return &smtp.SMTPError{
			Code:         451,
			EnhancedCode: smtp.EnhancedCode{4, 3, 0},
			Message:      "Temporary failure, try again later",
		}
	}

	return nil
}

// fileReply records a parsed customer reply in a thread and notifies
// subscribed admin clients.
func (s *Session) fileReply(ctx context.Context, threadID string, parsed *ParsedEmail) error {
	fromEmail := parsed.SenderEmail
	if fromEmail == "" {
		fromEmail = s.from
	}

	messageID := parsed.MessageID
	if messageID == "" {
		messageID = fmt.Sprintf("<%s@inbound>", uuid.NewString())
	}

	email := &models.Email{
		ID:          uuid.NewString(),
		ThreadID:    threadID,
		MessageID:   messageID,
		FromEmail:   strings.ToLower(fromEmail),
		ToEmail:     replyAddress(threadID, s.backend.replyDomain),
		Subject:     parsed.Subject,
		HTMLContent: parsed.BodyHTML,
		TextContent: parsed.BodyText,
		EmailType:   models.EmailTypeReply,
		IsFromAdmin: false,
	}

	attachments := s.saveAttachments(parsed)

	if err := s.backend.emailRepo.CreateWithAttachments(ctx, email, attachments); err != nil {
		// Don't leave orphaned files behind
		for _, att := range attachments {
			_ = s.backend.fileStorage.Delete(att.FilePath)
		}
		return fmt.Errorf("failed to record reply: %w", err)
	}

	if s.backend.logger != nil {
		s.backend.logger.Info("customer reply filed",
			slog.String("thread_id", threadID),
			slog.String("email_id", email.ID),
			slog.String("from", email.FromEmail),
			slog.Int("attachments", len(attachments)))
	}

	if s.backend.wsHub != nil {
		s.backend.wsHub.BroadcastNewReply(threadID, &websocket.NewReplyPayload{
			EmailID:         email.ID,
			ThreadID:        threadID,
			FromEmail:       email.FromEmail,
			Subject:         email.Subject,
			Snippet:         parsed.Snippet,
			SentAt:          time.Now().UTC().Format(time.RFC3339),
			AttachmentCount: len(attachments),
		})
	}

	return nil
}

// saveAttachments stores the parsed attachments that pass validation and
// returns their records. Rejected attachments are logged and skipped; they
// never fail the message.
func (s *Session) saveAttachments(parsed *ParsedEmail) []models.EmailAttachment {
	var records []models.EmailAttachment

	for _, att := range parsed.Attachments {
		filename := validator.SanitizeFilename(att.Filename)

		if err := storage.ValidateFile(filename, att.Size); err != nil {
			if s.backend.secLogger != nil {
				s.backend.secLogger.BlockedAttachment(s.from, filename, err.Error())
			}
			continue
		}

		filePath, size, err := s.backend.fileStorage.Save(filename, att.Content)
		if err != nil {
			if s.backend.logger != nil {
				s.backend.logger.Error("failed to save attachment",
					slog.String("filename", filename),
					slog.Any("error", err))
			}
			continue
		}

		records = append(records, models.EmailAttachment{
			Filename:    filename,
			ContentType: att.ContentType,
			FilePath:    filePath,
			SizeBytes:   size,
		})
	}

	return records
}

// Reset resets the session state
func (s *Session) Reset() {
	s.from = ""
	s.threadIDs = nil
}

// Logout handles session termination
func (s *Session) Logout() error {
	return nil
}

// parseReplyAddress extracts the thread ID and domain from a plus-addressed
// reply recipient like replies+<threadID>@<domain>.
func parseReplyAddress(addr string) (threadID, domain string, err error) {
	addr = strings.TrimSpace(addr)
	addr = strings.Trim(addr, "<>")
	addr = strings.ToLower(addr)

	parts := strings.Split(addr, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid email address format: %s", addr)
	}

	localPart, domain := parts[0], parts[1]
	if !strings.HasPrefix(localPart, replyAddressPrefix) {
		return "", "", fmt.Errorf("not a reply address: %s", addr)
	}

	threadID = strings.TrimPrefix(localPart, replyAddressPrefix)
	if threadID == "" {
		return "", "", fmt.Errorf("missing thread ID in reply address: %s", addr)
	}

	return threadID, domain, nil
}

// replyAddress builds the plus-addressed recipient for a thread
func replyAddress(threadID, domain string) string {
	if domain == "" {
		return ""
	}
	return replyAddressPrefix + threadID + "@" + domain
}

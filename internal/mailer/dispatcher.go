package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/khanhchel99/nkc-mail-backend/internal/errors"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
	"github.com/khanhchel99/nkc-mail-backend/internal/repository"
	"github.com/khanhchel99/nkc-mail-backend/internal/templates"
)

// Dispatcher orchestrates thread lookup/creation, template rendering,
// transport dispatch, and persistence for every outbound email.
type Dispatcher struct {
	registry    *templates.Registry
	transport   Transport
	threads     repository.ThreadRepository
	emails      repository.EmailRepository
	fromEmail   string
	replyDomain string
	logger      *slog.Logger
}

// NewDispatcher creates a Dispatcher. replyDomain is the domain customers
// reply to; each thread gets a plus-addressed reply address under it.
func NewDispatcher(
	registry *templates.Registry,
	transport Transport,
	threads repository.ThreadRepository,
	emails repository.EmailRepository,
	fromEmail string,
	replyDomain string,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry:    registry,
		transport:   transport,
		threads:     threads,
		emails:      emails,
		fromEmail:   fromEmail,
		replyDomain: replyDomain,
		logger:      logger,
	}
}

// SendRequest describes one templated send into an inquiry's thread.
type SendRequest struct {
	To           string
	Subject      string
	TemplateID   string
	TemplateData map[string]any
	Language     templates.Language

	InquiryID     string
	CustomerEmail string
	CustomerName  string
	IsFromAdmin   bool
}

// SendOutcome reports a completed send.
type SendOutcome struct {
	ThreadID  string `json:"thread_id"`
	EmailID   string `json:"email_id"`
	MessageID string `json:"message_id"`
}

// SendEmailWithThread sends a templated email into the thread belonging to
// the inquiry, creating the thread on first send. The sequence is strictly
// thread -> render -> transport -> persist; a transport failure leaves no
// email record behind.
func (d *Dispatcher) SendEmailWithThread(ctx context.Context, req SendRequest) (*SendOutcome, error) {
	tmpl, err := d.registry.Lookup(req.TemplateID)
	if err != nil {
		return nil, err
	}

	rendered := templates.Render(tmpl, req.Language, req.TemplateData)
	subject := req.Subject
	if subject == "" {
		subject = rendered.Subject
	}

	thread, created, err := d.threads.GetOrCreate(ctx, &models.Thread{
		InquiryID:     req.InquiryID,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Subject:       subject,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve thread for inquiry '%s': %w", req.InquiryID, err)
	}
	if created {
		d.logger.Info("email thread created",
			"thread_id", thread.ID,
			"inquiry_id", req.InquiryID)
	}

	return d.send(ctx, thread, &OutboundEmail{
		To:          req.To,
		ReplyTo:     d.replyAddress(thread.ID),
		Subject:     subject,
		HTMLContent: rendered.HTML,
		TextContent: rendered.Text,
	}, req.TemplateID, req.IsFromAdmin)
}

// SendReplyEmail sends pre-rendered content into an existing thread. The
// subject gets a "Re: " prefix when it does not already carry one.
func (d *Dispatcher) SendReplyEmail(ctx context.Context, threadID, to, subject, htmlContent, textContent, emailType string, isFromAdmin bool) (*SendOutcome, error) {
	thread, err := d.threads.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("thread '%s': %w", threadID, apperrors.ErrThreadNotFound)
		}
		return nil, fmt.Errorf("failed to look up thread '%s': %w", threadID, err)
	}

	if !strings.HasPrefix(subject, "Re: ") {
		subject = "Re: " + subject
	}

	return d.send(ctx, thread, &OutboundEmail{
		To:          to,
		ReplyTo:     d.replyAddress(thread.ID),
		Subject:     subject,
		HTMLContent: htmlContent,
		TextContent: textContent,
	}, emailType, isFromAdmin)
}

// SendInquiryAcknowledgment sends the acknowledgment template for a freshly
// submitted inquiry, deriving the template data from the inquiry fields.
func (d *Dispatcher) SendInquiryAcknowledgment(ctx context.Context, inquiry *models.Inquiry, lang templates.Language) (*SendOutcome, error) {
	dateLayout := "January 2, 2006"
	if lang == templates.LanguageVietnamese {
		dateLayout = "02/01/2006"
	}

	return d.SendEmailWithThread(ctx, SendRequest{
		To:         inquiry.CustomerEmail,
		TemplateID: templates.TemplateInquiryAcknowledgment,
		TemplateData: map[string]any{
			"customerName":  inquiry.CustomerName,
			"inquiryId":     inquiry.Reference,
			"companyName":   inquiry.CompanyName,
			"message":       inquiry.Message,
			"itemCount":     inquiry.ItemCount,
			"submittedDate": inquiry.SubmittedAt.Format(dateLayout),
		},
		Language:      lang,
		InquiryID:     inquiry.Reference,
		CustomerEmail: inquiry.CustomerEmail,
		CustomerName:  inquiry.CustomerName,
		IsFromAdmin:   true,
	})
}

// GetEmailThread returns the thread for an inquiry with its emails in
// conversation order.
func (d *Dispatcher) GetEmailThread(ctx context.Context, inquiryID string) (*models.Thread, error) {
	thread, err := d.threads.GetByInquiryIDWithEmails(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("no thread for inquiry '%s': %w", inquiryID, apperrors.ErrThreadNotFound)
		}
		return nil, err
	}
	return thread, nil
}

// send dispatches via the transport and records the email on success.
func (d *Dispatcher) send(ctx context.Context, thread *models.Thread, outbound *OutboundEmail, emailType string, isFromAdmin bool) (*SendOutcome, error) {
	result, err := d.transport.Send(ctx, outbound)
	if err != nil {
		d.logger.Error("email send failed",
			"thread_id", thread.ID,
			"to", outbound.To,
			"email_type", emailType,
			"error", err)
		return nil, err
	}

	messageID := result.MessageID
	if messageID == "" {
		messageID = fmt.Sprintf("<%s@%s>", uuid.NewString(), d.replyDomain)
	}

	email := &models.Email{
		ThreadID:    thread.ID,
		MessageID:   messageID,
		FromEmail:   d.fromEmail,
		ToEmail:     outbound.To,
		Subject:     outbound.Subject,
		HTMLContent: outbound.HTMLContent,
		TextContent: outbound.TextContent,
		EmailType:   emailType,
		IsFromAdmin: isFromAdmin,
	}
	if err := d.emails.Create(ctx, email); err != nil {
		// The message already left the relay; it cannot be unsent. Log at
		// error level with everything needed for manual reconciliation.
		d.logger.Error("email sent but not recorded",
			"thread_id", thread.ID,
			"message_id", messageID,
			"to", outbound.To,
			"subject", outbound.Subject,
			"email_type", emailType,
			"error", err)
		return nil, fmt.Errorf("email sent (message %s) but not recorded: %v: %w", messageID, err, apperrors.ErrSentNotRecorded)
	}

	d.logger.Info("email sent",
		"thread_id", thread.ID,
		"email_id", email.ID,
		"message_id", messageID,
		"email_type", emailType,
		"is_from_admin", isFromAdmin)

	return &SendOutcome{
		ThreadID:  thread.ID,
		EmailID:   email.ID,
		MessageID: messageID,
	}, nil
}

// replyAddress builds the plus-addressed reply address for a thread.
func (d *Dispatcher) replyAddress(threadID string) string {
	if d.replyDomain == "" {
		return ""
	}
	return fmt.Sprintf("replies+%s@%s", threadID, d.replyDomain)
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/khanhchel99/nkc-mail-backend/internal/mailer"
	"github.com/khanhchel99/nkc-mail-backend/internal/models"
)

// EmailHandlerTestSuite is the test suite for EmailHandler
type EmailHandlerTestSuite struct {
	suite.Suite
	env     *testEnv
	handler *EmailHandler
}

func (s *EmailHandlerTestSuite) SetupSuite() {
	s.env = newTestEnv(s.T())
}

func (s *EmailHandlerTestSuite) TearDownSuite() {
	s.env.close()
}

func (s *EmailHandlerTestSuite) SetupTest() {
	s.env.reset()
	s.handler = NewEmailHandler(s.env.emails, s.env.dispatcher)
}

func TestEmailHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EmailHandlerTestSuite))
}

// ==================== Send Tests ====================

func (s *EmailHandlerTestSuite) TestSend_CreatesThreadOnFirstSend() {
	// Arrange
	body := `{
		"to": "jane@example.com",
		"template_id": "quote_ready",
		"template_data": {"customerName": "Jane Buyer", "totalPrice": "$1,495.00"},
		"language": "en",
		"inquiry_id": "INQ-5001",
		"customer_name": "Jane Buyer"
	}`
	c, rec := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)

	// Act
	err := s.handler.Send(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)

	var resp struct {
		Data mailer.SendOutcome `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(s.T(), resp.Data.ThreadID)
	assert.NotEmpty(s.T(), resp.Data.EmailID)

	// Thread was created for the inquiry and the send went out
	thread, err := s.env.threads.GetByInquiryID(context.Background(), "INQ-5001")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), resp.Data.ThreadID, thread.ID)

	require.Len(s.T(), s.env.transport.sent, 1)
	assert.Equal(s.T(), "jane@example.com", s.env.transport.sent[0].To)
	assert.Contains(s.T(), s.env.transport.sent[0].HTMLContent, "Jane Buyer")
	assert.Equal(s.T(), "replies+"+thread.ID+"@reply.nkcfurniture.com", s.env.transport.sent[0].ReplyTo)
}

func (s *EmailHandlerTestSuite) TestSend_ReusesExistingThread() {
	// Arrange
	body := `{
		"to": "jane@example.com",
		"template_id": "follow_up",
		"template_data": {"customerName": "Jane Buyer"},
		"inquiry_id": "INQ-5002",
		"customer_name": "Jane Buyer"
	}`

	c1, _ := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)
	require.NoError(s.T(), s.handler.Send(c1))

	c2, rec := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)

	// Act
	err := s.handler.Send(c2)

	// Assert: both emails landed in the same thread
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusCreated, rec.Code)

	thread, err := s.env.threads.GetByInquiryID(context.Background(), "INQ-5002")
	require.NoError(s.T(), err)

	_, total, err := s.env.emails.ListByThread(context.Background(), thread.ID, 10, 0)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(2), total)
}

func (s *EmailHandlerTestSuite) TestSend_UnknownTemplate() {
	// Arrange
	body := `{"to": "jane@example.com", "template_id": "nope", "inquiry_id": "INQ-5003"}`
	c, rec := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)

	// Act
	err := s.handler.Send(c)

	// Assert: no send, no thread
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Empty(s.T(), s.env.transport.sent)

	_, err = s.env.threads.GetByInquiryID(context.Background(), "INQ-5003")
	assert.Error(s.T(), err)
}

func (s *EmailHandlerTestSuite) TestSend_RequiresTemplateID() {
	// Arrange
	body := `{"to": "jane@example.com", "inquiry_id": "INQ-5004"}`
	c, rec := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)

	// Act
	err := s.handler.Send(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *EmailHandlerTestSuite) TestSend_InvalidInquiryID() {
	// Arrange
	body := `{"to": "jane@example.com", "template_id": "follow_up", "inquiry_id": "not valid!"}`
	c, rec := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)

	// Act
	err := s.handler.Send(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *EmailHandlerTestSuite) TestSend_InvalidRecipient() {
	// Arrange
	body := `{"to": "not-an-email", "template_id": "follow_up", "inquiry_id": "INQ-5005"}`
	c, rec := s.env.jsonRequest(http.MethodPost, "/api/emails/send", body)

	// Act
	err := s.handler.Send(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

// ==================== Get Tests ====================

func (s *EmailHandlerTestSuite) TestGet_ReturnsEmail() {
	// Arrange
	thread := &models.Thread{
		InquiryID:     "INQ-5101",
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane Buyer",
	}
	require.NoError(s.T(), s.env.threads.Create(context.Background(), thread))

	email := &models.Email{
		ThreadID:    thread.ID,
		FromEmail:   "sales@nkcfurniture.com",
		ToEmail:     "jane@example.com",
		Subject:     "Your quote",
		EmailType:   models.EmailTypeReply,
		IsFromAdmin: true,
	}
	require.NoError(s.T(), s.env.emails.Create(context.Background(), email))

	c, rec := s.env.getRequest("/api/emails/" + email.ID)
	c.SetParamNames("id")
	c.SetParamValues(email.ID)

	// Act
	err := s.handler.Get(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "Your quote")
}

func (s *EmailHandlerTestSuite) TestGet_NotFound() {
	// Arrange
	c, rec := s.env.getRequest("/api/emails/missing")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	// Act
	err := s.handler.Get(c)

	// Assert
	require.NoError(s.T(), err)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

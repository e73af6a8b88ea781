package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConversationHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockConversationService *mockConversationService
	mockEmployeeService     *mockEmployeeService
	jwtSecret               string
	externalUserID          string
	employeeID              string
}

func (suite *ConversationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.externalUserID = "idp|" + uuid.NewString()
	suite.employeeID = uuid.NewString()

	suite.mockConversationService = new(mockConversationService)
	suite.mockEmployeeService = new(mockEmployeeService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, suite.mockEmployeeService))
	registerConversationRoutes(v1, suite.mockConversationService)
}

func (suite *ConversationHandlerTestSuite) signToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    "orbitcommerce-test",
		Subject:   suite.externalUserID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *ConversationHandlerTestSuite) expectAuth() {
	suite.mockEmployeeService.On("EmployeeForAuthenticatedUser", mock.Anything, suite.externalUserID).Return(&domain.Employee{
		EmployeeID:     suite.employeeID,
		ExternalUserID: suite.externalUserID,
		Status:         domain.EmployeeActive,
	}, nil).Once()
}

func (suite *ConversationHandlerTestSuite) authedRequest(method, url string, body []byte) *http.Request {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.signToken())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func (suite *ConversationHandlerTestSuite) TestSendMessage_Created() {
	suite.expectAuth()
	conversationID := uuid.NewString()
	sent := &domain.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       suite.employeeID,
		Content:        "shipping thursday",
		Sequence:       12,
		SentAt:         time.Now().UTC(),
	}

	suite.mockConversationService.On("SendMessage", mock.Anything, conversationID, suite.employeeID, mock.MatchedBy(func(r dto.SendMessageRequest) bool {
		return r.Content == "shipping thursday"
	})).Return(sent, nil).Once()

	body := []byte(`{"content":"shipping thursday"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/conversations/"+conversationID+"/messages", body))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(sent.MessageID, resp.MessageID)
	suite.Equal(int64(12), resp.Sequence)
	suite.mockConversationService.AssertExpectations(suite.T())
}

func (suite *ConversationHandlerTestSuite) TestSendMessage_EmptyContentRejected() {
	suite.expectAuth()
	conversationID := uuid.NewString()

	body := []byte(`{"content":""}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/conversations/"+conversationID+"/messages", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConversationService.AssertNotCalled(suite.T(), "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversationHandlerTestSuite) TestSendMessage_NonParticipantForbidden() {
	suite.expectAuth()
	conversationID := uuid.NewString()

	suite.mockConversationService.On("SendMessage", mock.Anything, conversationID, suite.employeeID, mock.AnythingOfType("dto.SendMessageRequest")).Return(nil, apperrors.ErrForbidden).Once()

	body := []byte(`{"content":"hello"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/conversations/"+conversationID+"/messages", body))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *ConversationHandlerTestSuite) TestGetMessages_PassesPagination() {
	suite.expectAuth()
	conversationID := uuid.NewString()

	suite.mockConversationService.On("GetMessages", mock.Anything, conversationID, suite.employeeID, 50, 25).Return([]domain.Message{}, true, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/conversations/"+conversationID+"/messages?skip=50&take=25", nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MessagesPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.HasMore)
	suite.mockConversationService.AssertExpectations(suite.T())
}

func (suite *ConversationHandlerTestSuite) TestCreateChannel_Created() {
	suite.expectAuth()
	created := &domain.Conversation{
		ConversationID: uuid.NewString(),
		Name:           "platform-eng",
		Type:           domain.ChannelPublic,
		Status:         domain.ConversationActive,
	}

	suite.mockConversationService.On("CreateChannel", mock.Anything, mock.MatchedBy(func(r dto.CreateChannelRequest) bool {
		return r.Name == "platform-eng" && r.Type == "PUBLIC"
	}), suite.employeeID).Return(created, nil).Once()

	body := []byte(`{"name":"platform-eng","type":"PUBLIC"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/conversations/channels", body))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ConversationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.ConversationID, resp.ConversationID)
}

func (suite *ConversationHandlerTestSuite) TestCreateChannel_UnknownTypeRejected() {
	suite.expectAuth()

	body := []byte(`{"name":"x","type":"SECRET"}`)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/conversations/channels", body))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConversationService.AssertNotCalled(suite.T(), "CreateChannel", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversationHandlerTestSuite) TestMarkAsRead_NoContent() {
	suite.expectAuth()
	conversationID := uuid.NewString()

	suite.mockConversationService.On("MarkAsRead", mock.Anything, conversationID, suite.employeeID).Return(nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/conversations/"+conversationID+"/read", nil))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockConversationService.AssertExpectations(suite.T())
}

func (suite *ConversationHandlerTestSuite) TestRemoveReaction_MissingEmojiRejected() {
	suite.expectAuth()
	conversationID := uuid.NewString()
	messageID := uuid.NewString()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/conversations/"+conversationID+"/messages/"+messageID+"/reactions", nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockConversationService.AssertNotCalled(suite.T(), "RemoveReaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversationHandlerTestSuite) TestMarkMentionRead_NotFound() {
	suite.expectAuth()
	mentionID := uuid.NewString()

	suite.mockConversationService.On("MarkMentionRead", mock.Anything, mentionID, suite.employeeID).Return(apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPut, "/api/v1/mentions/"+mentionID+"/read", nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestConversationHandler(t *testing.T) {
	suite.Run(t, new(ConversationHandlerTestSuite))
}

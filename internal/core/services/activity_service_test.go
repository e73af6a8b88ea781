package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ActivityServiceTestSuite struct {
	suite.Suite
	mockMessageRepo *MockMessageRepository
	mockMeetingRepo *MockMeetingRepository
	service         portssvc.ActivitySvcFacade
}

func (suite *ActivityServiceTestSuite) SetupTest() {
	suite.mockMessageRepo = new(MockMessageRepository)
	suite.mockMeetingRepo = new(MockMeetingRepository)
	suite.service = services.NewActivityService(suite.mockMessageRepo, suite.mockMeetingRepo)
}

func (suite *ActivityServiceTestSuite) TestGetActivityFeed_MergesNewestFirst() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	now := time.Now()
	messages := []domain.Message{
		{MessageID: "msg-new", ConversationID: "conv-1", Content: "latest", SentAt: now.Add(-time.Minute)},
		{MessageID: "msg-old", ConversationID: "conv-1", Content: "older", SentAt: now.Add(-2 * time.Hour)},
	}
	meetings := []domain.Meeting{
		{MeetingID: "mtg-soon", Title: "Standup", StartTime: now.Add(time.Hour)},
	}

	suite.mockMessageRepo.On("FindRecentMessagesForEmployee", ctx, employeeID, 20).Return(messages, nil).Once()
	suite.mockMeetingRepo.On("FindUpcomingMeetings", ctx, employeeID, mock.AnythingOfType("time.Time"), 20).Return(meetings, nil).Once()

	items, err := suite.service.GetActivityFeed(ctx, employeeID, 20, 0)

	suite.Require().NoError(err)
	suite.Require().Len(items, 3)
	suite.Equal(domain.ActivityMeeting, items[0].Kind)
	suite.Equal("mtg-soon", items[0].RefID)
	suite.Equal("msg-new", items[1].RefID)
	suite.Equal("msg-old", items[2].RefID)
}

func (suite *ActivityServiceTestSuite) TestGetActivityFeed_PaginationWindow() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	now := time.Now()
	messages := make([]domain.Message, 5)
	for i := range messages {
		messages[i] = domain.Message{
			MessageID:      uuid.NewString(),
			ConversationID: "conv",
			Content:        "m",
			SentAt:         now.Add(-time.Duration(i) * time.Minute),
		}
	}

	suite.mockMessageRepo.On("FindRecentMessagesForEmployee", ctx, employeeID, 4).Return(messages, nil).Once()
	suite.mockMeetingRepo.On("FindUpcomingMeetings", ctx, employeeID, mock.AnythingOfType("time.Time"), 4).Return([]domain.Meeting{}, nil).Once()

	items, err := suite.service.GetActivityFeed(ctx, employeeID, 2, 2)

	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal(messages[2].MessageID, items[0].RefID)
	suite.Equal(messages[3].MessageID, items[1].RefID)
}

func (suite *ActivityServiceTestSuite) TestGetActivityFeed_SkipBeyondItems() {
	ctx := context.Background()
	employeeID := uuid.NewString()

	suite.mockMessageRepo.On("FindRecentMessagesForEmployee", ctx, employeeID, 25).Return([]domain.Message{}, nil).Once()
	suite.mockMeetingRepo.On("FindUpcomingMeetings", ctx, employeeID, mock.AnythingOfType("time.Time"), 25).Return([]domain.Meeting{}, nil).Once()

	items, err := suite.service.GetActivityFeed(ctx, employeeID, 5, 20)

	suite.Require().NoError(err)
	suite.Empty(items)
}

func (suite *ActivityServiceTestSuite) TestGetActivityFeed_TruncatesPreview() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	long := strings.Repeat("x", 400)
	messages := []domain.Message{{MessageID: "msg", ConversationID: "conv", Content: long, SentAt: time.Now()}}

	suite.mockMessageRepo.On("FindRecentMessagesForEmployee", ctx, employeeID, 20).Return(messages, nil).Once()
	suite.mockMeetingRepo.On("FindUpcomingMeetings", ctx, employeeID, mock.AnythingOfType("time.Time"), 20).Return([]domain.Meeting{}, nil).Once()

	items, err := suite.service.GetActivityFeed(ctx, employeeID, 20, 0)

	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Len([]rune(items[0].Preview), 123)
	suite.True(strings.HasSuffix(items[0].Preview, "..."))
}

func (suite *ActivityServiceTestSuite) TestGetActivityFeed_ClampsCount() {
	ctx := context.Background()
	employeeID := uuid.NewString()

	suite.mockMessageRepo.On("FindRecentMessagesForEmployee", ctx, employeeID, 20).Return([]domain.Message{}, nil).Once()
	suite.mockMeetingRepo.On("FindUpcomingMeetings", ctx, employeeID, mock.AnythingOfType("time.Time"), 20).Return([]domain.Meeting{}, nil).Once()

	_, err := suite.service.GetActivityFeed(ctx, employeeID, 500, 0)

	suite.Require().NoError(err)
	suite.mockMessageRepo.AssertExpectations(suite.T())
}

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}

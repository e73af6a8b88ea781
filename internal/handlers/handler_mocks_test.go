package handlers

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock EmployeeService ---

type mockEmployeeService struct {
	mock.Mock
}

var _ portssvc.EmployeeSvcFacade = (*mockEmployeeService)(nil)

func (m *mockEmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *mockEmployeeService) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *mockEmployeeService) EmployeeForAuthenticatedUser(ctx context.Context, externalUserID string) (*domain.Employee, error) {
	args := m.Called(ctx, externalUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *mockEmployeeService) ProvisionEmployee(ctx context.Context, req dto.ProvisionEmployeeRequest, creatorID string) (*domain.Employee, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *mockEmployeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID, req, updaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *mockEmployeeService) UpdatePresence(ctx context.Context, employeeID string, presence domain.Presence) error {
	args := m.Called(ctx, employeeID, presence)
	return args.Error(0)
}

// --- Mock MeetingService ---

type mockMeetingService struct {
	mock.Mock
}

var _ portssvc.MeetingSvcFacade = (*mockMeetingService)(nil)

func (m *mockMeetingService) GetMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) GetCalendarEvents(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.Meeting, error) {
	args := m.Called(ctx, from, to, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) GetUpcomingMeetings(ctx context.Context, employeeID string, count int) ([]domain.Meeting, error) {
	args := m.Called(ctx, employeeID, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) ExportICS(ctx context.Context, meetingID string) (string, error) {
	args := m.Called(ctx, meetingID)
	return args.String(0), args.Error(1)
}

func (m *mockMeetingService) CreateMeeting(ctx context.Context, req dto.CreateMeetingRequest, organizerID string) (*domain.Meeting, error) {
	args := m.Called(ctx, req, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) UpdateMeeting(ctx context.Context, meetingID string, req dto.UpdateMeetingRequest, callerID string) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID, req, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) RespondToMeeting(ctx context.Context, meetingID, employeeID string, response domain.RSVPResponse) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID, employeeID, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *mockMeetingService) CancelMeeting(ctx context.Context, meetingID, callerID string) error {
	args := m.Called(ctx, meetingID, callerID)
	return args.Error(0)
}

func (m *mockMeetingService) GetJoinToken(ctx context.Context, meetingID, employeeID string) (string, error) {
	args := m.Called(ctx, meetingID, employeeID)
	return args.String(0), args.Error(1)
}

type mockConversationService struct {
	mock.Mock
}

var _ portssvc.ConversationSvcFacade = (*mockConversationService)(nil)

func (m *mockConversationService) GetConversationByID(ctx context.Context, conversationID, callerID string) (*domain.Conversation, error) {
	args := m.Called(ctx, conversationID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationService) GetChannels(ctx context.Context, employeeID string) ([]domain.ChannelSummary, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChannelSummary), args.Error(1)
}

func (m *mockConversationService) GetMessages(ctx context.Context, conversationID, callerID string, skip, take int) ([]domain.Message, bool, error) {
	args := m.Called(ctx, conversationID, callerID, skip, take)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Message), args.Bool(1), args.Error(2)
}

func (m *mockConversationService) SearchMessages(ctx context.Context, conversationID, callerID, query string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, callerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *mockConversationService) CreateConversation(ctx context.Context, req dto.CreateConversationRequest, creatorID string) (*domain.Conversation, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationService) CreateChannel(ctx context.Context, req dto.CreateChannelRequest, creatorID string) (*domain.Conversation, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *mockConversationService) JoinConversation(ctx context.Context, conversationID, callerID string) error {
	args := m.Called(ctx, conversationID, callerID)
	return args.Error(0)
}

func (m *mockConversationService) SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, senderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockConversationService) UpdateMessage(ctx context.Context, conversationID, messageID, callerID, content string) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, messageID, callerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *mockConversationService) DeleteMessage(ctx context.Context, conversationID, messageID, callerID string) error {
	args := m.Called(ctx, conversationID, messageID, callerID)
	return args.Error(0)
}

func (m *mockConversationService) MarkAsRead(ctx context.Context, conversationID, callerID string) error {
	args := m.Called(ctx, conversationID, callerID)
	return args.Error(0)
}

func (m *mockConversationService) AddReaction(ctx context.Context, conversationID, messageID, callerID, emoji string) (*domain.Reaction, error) {
	args := m.Called(ctx, conversationID, messageID, callerID, emoji)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reaction), args.Error(1)
}

func (m *mockConversationService) RemoveReaction(ctx context.Context, conversationID, messageID, callerID, emoji string) error {
	args := m.Called(ctx, conversationID, messageID, callerID, emoji)
	return args.Error(0)
}

func (m *mockConversationService) ListMentions(ctx context.Context, employeeID string, limit, offset int) ([]domain.MentionNotification, error) {
	args := m.Called(ctx, employeeID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MentionNotification), args.Error(1)
}

func (m *mockConversationService) MarkMentionRead(ctx context.Context, mentionID, employeeID string) error {
	args := m.Called(ctx, mentionID, employeeID)
	return args.Error(0)
}

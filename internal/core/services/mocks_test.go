package services_test

import (
	"context"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	"github.com/stretchr/testify/mock"
)

// --- Mock EmployeeRepository ---

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByExternalUserID(ctx context.Context, externalUserID string) (*domain.Employee, error) {
	args := m.Called(ctx, externalUserID)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByFullName(ctx context.Context, fullName string) (*domain.Employee, error) {
	args := m.Called(ctx, fullName)
	var employee *domain.Employee
	if args.Get(0) != nil {
		employee = args.Get(0).(*domain.Employee)
	}
	return employee, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	var employees []domain.Employee
	if args.Get(0) != nil {
		employees = args.Get(0).([]domain.Employee)
	}
	return employees, args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeesByIDs(ctx context.Context, employeeIDs []string) (map[string]domain.Employee, error) {
	args := m.Called(ctx, employeeIDs)
	var employees map[string]domain.Employee
	if args.Get(0) != nil {
		employees = args.Get(0).(map[string]domain.Employee)
	}
	return employees, args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdatePresence(ctx context.Context, employeeID string, presence domain.Presence, lastSeenAt time.Time) error {
	args := m.Called(ctx, employeeID, presence, lastSeenAt)
	return args.Error(0)
}

// --- Mock MeetingRepository ---

type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) FindMeetingByID(ctx context.Context, meetingID string) (*domain.Meeting, error) {
	args := m.Called(ctx, meetingID)
	var meeting *domain.Meeting
	if args.Get(0) != nil {
		meeting = args.Get(0).(*domain.Meeting)
	}
	return meeting, args.Error(1)
}

func (m *MockMeetingRepository) FindMeetingsInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]domain.Meeting, error) {
	args := m.Called(ctx, from, to, employeeID)
	var meetings []domain.Meeting
	if args.Get(0) != nil {
		meetings = args.Get(0).([]domain.Meeting)
	}
	return meetings, args.Error(1)
}

func (m *MockMeetingRepository) FindUpcomingMeetings(ctx context.Context, employeeID string, after time.Time, limit int) ([]domain.Meeting, error) {
	args := m.Called(ctx, employeeID, after, limit)
	var meetings []domain.Meeting
	if args.Get(0) != nil {
		meetings = args.Get(0).([]domain.Meeting)
	}
	return meetings, args.Error(1)
}

func (m *MockMeetingRepository) SaveMeeting(ctx context.Context, meeting domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) UpdateMeeting(ctx context.Context, meeting domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) UpdateMeetingStatus(ctx context.Context, meetingID string, status domain.MeetingStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, meetingID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockMeetingRepository) UpdateAttendeeResponse(ctx context.Context, meetingID, employeeID string, response domain.RSVPResponse, respondedAt time.Time) error {
	args := m.Called(ctx, meetingID, employeeID, response, respondedAt)
	return args.Error(0)
}

// --- Mock ConversationRepository ---

type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) FindConversationByID(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	args := m.Called(ctx, conversationID)
	var conversation *domain.Conversation
	if args.Get(0) != nil {
		conversation = args.Get(0).(*domain.Conversation)
	}
	return conversation, args.Error(1)
}

func (m *MockConversationRepository) FindConversationsForEmployee(ctx context.Context, employeeID string) ([]domain.Conversation, error) {
	args := m.Called(ctx, employeeID)
	var conversations []domain.Conversation
	if args.Get(0) != nil {
		conversations = args.Get(0).([]domain.Conversation)
	}
	return conversations, args.Error(1)
}

func (m *MockConversationRepository) FindUnreadCounts(ctx context.Context, employeeID string, conversationIDs []string) (map[string]int, error) {
	args := m.Called(ctx, employeeID, conversationIDs)
	var counts map[string]int
	if args.Get(0) != nil {
		counts = args.Get(0).(map[string]int)
	}
	return counts, args.Error(1)
}

func (m *MockConversationRepository) FindReadReceipt(ctx context.Context, conversationID, employeeID string) (*domain.ReadReceipt, error) {
	args := m.Called(ctx, conversationID, employeeID)
	var receipt *domain.ReadReceipt
	if args.Get(0) != nil {
		receipt = args.Get(0).(*domain.ReadReceipt)
	}
	return receipt, args.Error(1)
}

func (m *MockConversationRepository) SaveConversation(ctx context.Context, conversation domain.Conversation) error {
	args := m.Called(ctx, conversation)
	return args.Error(0)
}

func (m *MockConversationRepository) AddParticipant(ctx context.Context, conversationID, employeeID string, joinedAt time.Time) error {
	args := m.Called(ctx, conversationID, employeeID, joinedAt)
	return args.Error(0)
}

func (m *MockConversationRepository) UpsertReadReceipt(ctx context.Context, conversationID, employeeID string, readAt time.Time) error {
	args := m.Called(ctx, conversationID, employeeID, readAt)
	return args.Error(0)
}

// --- Mock MessageRepository ---

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) FindMessageByID(ctx context.Context, conversationID, messageID string) (*domain.Message, error) {
	args := m.Called(ctx, conversationID, messageID)
	var message *domain.Message
	if args.Get(0) != nil {
		message = args.Get(0).(*domain.Message)
	}
	return message, args.Error(1)
}

func (m *MockMessageRepository) FindMessagesPage(ctx context.Context, conversationID string, skip, take int) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, skip, take)
	var messages []domain.Message
	if args.Get(0) != nil {
		messages = args.Get(0).([]domain.Message)
	}
	return messages, args.Error(1)
}

func (m *MockMessageRepository) SearchMessages(ctx context.Context, conversationID, query string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID, query)
	var messages []domain.Message
	if args.Get(0) != nil {
		messages = args.Get(0).([]domain.Message)
	}
	return messages, args.Error(1)
}

func (m *MockMessageRepository) FindRecentMessagesForEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Message, error) {
	args := m.Called(ctx, employeeID, limit)
	var messages []domain.Message
	if args.Get(0) != nil {
		messages = args.Get(0).([]domain.Message)
	}
	return messages, args.Error(1)
}

func (m *MockMessageRepository) SaveMessage(ctx context.Context, message domain.Message, attachmentIDs []string, mentions []domain.MentionNotification) (*domain.Message, error) {
	args := m.Called(ctx, message, attachmentIDs, mentions)
	var saved *domain.Message
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Message)
	}
	return saved, args.Error(1)
}

func (m *MockMessageRepository) UpdateMessageContent(ctx context.Context, conversationID, messageID, content string, editedAt time.Time) error {
	args := m.Called(ctx, conversationID, messageID, content, editedAt)
	return args.Error(0)
}

func (m *MockMessageRepository) DeleteMessage(ctx context.Context, conversationID, messageID string) error {
	args := m.Called(ctx, conversationID, messageID)
	return args.Error(0)
}

func (m *MockMessageRepository) AddReaction(ctx context.Context, reaction domain.Reaction) (*domain.Reaction, error) {
	args := m.Called(ctx, reaction)
	var stored *domain.Reaction
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.Reaction)
	}
	return stored, args.Error(1)
}

func (m *MockMessageRepository) RemoveReaction(ctx context.Context, messageID, employeeID, emoji string) error {
	args := m.Called(ctx, messageID, employeeID, emoji)
	return args.Error(0)
}

func (m *MockMessageRepository) FindMentionsForEmployee(ctx context.Context, employeeID string, limit, offset int) ([]domain.MentionNotification, error) {
	args := m.Called(ctx, employeeID, limit, offset)
	var mentions []domain.MentionNotification
	if args.Get(0) != nil {
		mentions = args.Get(0).([]domain.MentionNotification)
	}
	return mentions, args.Error(1)
}

func (m *MockMessageRepository) MarkMentionRead(ctx context.Context, mentionID, employeeID string) error {
	args := m.Called(ctx, mentionID, employeeID)
	return args.Error(0)
}

// --- Mock AttachmentRepository ---

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.FileAttachment, error) {
	args := m.Called(ctx, attachmentID)
	var attachment *domain.FileAttachment
	if args.Get(0) != nil {
		attachment = args.Get(0).(*domain.FileAttachment)
	}
	return attachment, args.Error(1)
}

func (m *MockAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.FileAttachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

// --- Mock CallingGateway ---

type MockCallingGateway struct {
	mock.Mock
}

func (m *MockCallingGateway) CreateRoom(ctx context.Context, name string) (*gateways.Room, error) {
	args := m.Called(ctx, name)
	var room *gateways.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*gateways.Room)
	}
	return room, args.Error(1)
}

func (m *MockCallingGateway) GetRoom(ctx context.Context, name string) (*gateways.Room, error) {
	args := m.Called(ctx, name)
	var room *gateways.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*gateways.Room)
	}
	return room, args.Error(1)
}

func (m *MockCallingGateway) DeleteRoom(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCallingGateway) CreateJoinToken(ctx context.Context, roomName, displayName string, isOwner bool) (string, error) {
	args := m.Called(ctx, roomName, displayName, isOwner)
	return args.String(0), args.Error(1)
}

// --- Mock EventPublisher ---

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishMeetingBooked(ctx context.Context, event domain.MeetingBookedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishMeetingCancelled(ctx context.Context, event domain.MeetingCancelledEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock Broadcaster ---

type MockBroadcaster struct {
	mock.Mock
}

func (m *MockBroadcaster) Broadcast(channelID string, event gateways.RealtimeEvent) {
	m.Called(channelID, event)
}

// --- Mock FileStore ---

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	args := m.Called(ctx, data, filename, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) Get(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	var data []byte
	if args.Get(0) != nil {
		data = args.Get(0).([]byte)
	}
	return data, args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockFileStore) PublicURL(path string) string {
	args := m.Called(path)
	return args.String(0)
}

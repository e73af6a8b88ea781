package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/google/uuid"
)

// mentionPattern matches `@First Last` references in message text. Names
// are resolved against the directory case-insensitively; unresolvable
// candidates are ignored.
var mentionPattern = regexp.MustCompile(`@(\w+ \w+)`)

// ConversationService handles channels, messages, reactions, read receipts
// and the mention notification surface.
type ConversationService struct {
	conversationRepo portsrepo.ConversationRepositoryFacade
	messageRepo      portsrepo.MessageRepositoryFacade
	employeeRepo     portsrepo.EmployeeRepositoryFacade
	attachmentRepo   portsrepo.AttachmentRepositoryFacade
	meetingRepo      portsrepo.MeetingRepositoryFacade
	broadcaster      gateways.Broadcaster
}

// NewConversationService creates a new ConversationService.
func NewConversationService(
	cr portsrepo.ConversationRepositoryFacade,
	mr portsrepo.MessageRepositoryFacade,
	er portsrepo.EmployeeRepositoryFacade,
	ar portsrepo.AttachmentRepositoryFacade,
	meetings portsrepo.MeetingRepositoryFacade,
	b gateways.Broadcaster,
) portssvc.ConversationSvcFacade {
	return &ConversationService{
		conversationRepo: cr,
		messageRepo:      mr,
		employeeRepo:     er,
		attachmentRepo:   ar,
		meetingRepo:      meetings,
		broadcaster:      b,
	}
}

// Ensure ConversationService implements the portssvc.ConversationSvcFacade interface
var _ portssvc.ConversationSvcFacade = (*ConversationService)(nil)

// requireParticipant loads the conversation and checks the caller's
// membership. Message access always requires membership; public channels
// are only viewable as metadata through GetConversationByID until joined.
func (s *ConversationService) requireParticipant(ctx context.Context, conversationID, callerID string) (*domain.Conversation, error) {
	conversation, err := s.conversationRepo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller is not a participant of conversation %s: %w", conversationID, apperrors.ErrForbidden)
	}
	return conversation, nil
}

// GetConversationByID retrieves a conversation. Non-participants may view
// public channels; everything else requires membership.
func (s *ConversationService) GetConversationByID(ctx context.Context, conversationID, callerID string) (*domain.Conversation, error) {
	conversation, err := s.conversationRepo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation.Type != domain.ChannelPublic && !conversation.HasParticipant(callerID) {
		return nil, fmt.Errorf("caller is not a participant of conversation %s: %w", conversationID, apperrors.ErrForbidden)
	}
	return conversation, nil
}

// GetChannels lists the caller's conversations with unread counts, most
// recent message first.
func (s *ConversationService) GetChannels(ctx context.Context, employeeID string) ([]domain.ChannelSummary, error) {
	conversations, err := s.conversationRepo.FindConversationsForEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	if len(conversations) == 0 {
		return []domain.ChannelSummary{}, nil
	}

	ids := make([]string, len(conversations))
	for i, c := range conversations {
		ids[i] = c.ConversationID
	}
	unread, err := s.conversationRepo.FindUnreadCounts(ctx, employeeID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to compute unread counts: %w", err)
	}

	summaries := make([]domain.ChannelSummary, len(conversations))
	for i, c := range conversations {
		summaries[i] = domain.ChannelSummary{
			Conversation: c,
			UnreadCount:  unread[c.ConversationID],
		}
	}
	return summaries, nil
}

// GetMessages returns one display page in ascending order plus the hasMore
// heuristic: true whenever the page came back full.
func (s *ConversationService) GetMessages(ctx context.Context, conversationID, callerID string, skip, take int) ([]domain.Message, bool, error) {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return nil, false, err
	}
	if take <= 0 || take > 200 {
		take = 50
	}
	if skip < 0 {
		skip = 0
	}
	messages, err := s.messageRepo.FindMessagesPage(ctx, conversationID, skip, take)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load message page: %w", err)
	}
	return messages, len(messages) == take, nil
}

// SearchMessages performs a case-insensitive substring search within the
// conversation.
func (s *ConversationService) SearchMessages(ctx context.Context, conversationID, callerID, query string) ([]domain.Message, error) {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query must not be empty", apperrors.ErrValidation)
	}
	messages, err := s.messageRepo.SearchMessages(ctx, conversationID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search messages: %w", err)
	}
	return messages, nil
}

// CreateConversation starts an ad-hoc thread. The creator always joins;
// when MeetingID is set, the thread links back to the meeting as a
// follow-up discussion.
func (s *ConversationService) CreateConversation(ctx context.Context, req dto.CreateConversationRequest, creatorID string) (*domain.Conversation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.MeetingID != nil {
		if _, err := s.meetingRepo.FindMeetingByID(ctx, *req.MeetingID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: linked meeting %s not found", apperrors.ErrValidation, *req.MeetingID)
			}
			return nil, fmt.Errorf("failed to validate linked meeting: %w", err)
		}
	}

	conversation := s.buildConversation(req.Name, req.IconURL, domain.ChannelPrivate, req.ParticipantIDs, creatorID)
	conversation.MeetingID = req.MeetingID

	if err := s.conversationRepo.SaveConversation(ctx, *conversation); err != nil {
		logger.Error("Failed to save conversation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	logger.Info("Conversation created", slog.String("conversation_id", conversation.ConversationID), slog.String("creator_id", creatorID))
	return conversation, nil
}

// CreateChannel creates a persistent, named channel of the requested type.
func (s *ConversationService) CreateChannel(ctx context.Context, req dto.CreateChannelRequest, creatorID string) (*domain.Conversation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	channelType := domain.ChannelType(req.Type)
	if channelType == domain.ChannelDirectMessage && len(dedupe(append(req.ParticipantIDs, creatorID))) != 2 {
		return nil, fmt.Errorf("%w: a direct message needs exactly two participants", apperrors.ErrValidation)
	}

	conversation := s.buildConversation(req.Name, req.IconURL, channelType, req.ParticipantIDs, creatorID)

	if err := s.conversationRepo.SaveConversation(ctx, *conversation); err != nil {
		logger.Error("Failed to save channel", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	logger.Info("Channel created", slog.String("conversation_id", conversation.ConversationID), slog.String("type", req.Type), slog.String("creator_id", creatorID))
	return conversation, nil
}

func (s *ConversationService) buildConversation(name string, iconURL *string, channelType domain.ChannelType, participantIDs []string, creatorID string) *domain.Conversation {
	now := time.Now()
	conversation := domain.Conversation{
		ConversationID: uuid.NewString(),
		Name:           name,
		IconURL:        iconURL,
		Type:           channelType,
		Status:         domain.ConversationActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	for _, employeeID := range dedupe(append([]string{creatorID}, participantIDs...)) {
		conversation.Participants = append(conversation.Participants, domain.Participant{
			ConversationID: conversation.ConversationID,
			EmployeeID:     employeeID,
			JoinedAt:       now,
		})
	}
	return &conversation
}

// JoinConversation adds the caller to a public channel. Joining twice is a
// no-op; private conversations require an existing participant to add the
// caller at creation time.
func (s *ConversationService) JoinConversation(ctx context.Context, conversationID, callerID string) error {
	conversation, err := s.conversationRepo.FindConversationByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if conversation.Type != domain.ChannelPublic {
		return fmt.Errorf("only public channels can be joined: %w", apperrors.ErrForbidden)
	}
	if conversation.Status != domain.ConversationActive {
		return fmt.Errorf("%w: conversation is not active", apperrors.ErrValidation)
	}
	return s.conversationRepo.AddParticipant(ctx, conversationID, callerID, time.Now())
}

// SendMessage is the authoritative write path. The message row, the
// last-message watermark, attachment links and mention notifications
// commit atomically; the live fan-out happens strictly after the commit.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*domain.Message, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	conversation, err := s.requireParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if conversation.Status != domain.ConversationActive {
		return nil, fmt.Errorf("%w: conversation does not accept messages", apperrors.ErrValidation)
	}

	for _, attachmentID := range req.AttachmentIDs {
		attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, attachmentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: attachment %s not found", apperrors.ErrValidation, attachmentID)
			}
			return nil, fmt.Errorf("failed to validate attachment: %w", err)
		}
		if attachment.UploadedBy != senderID {
			return nil, fmt.Errorf("attachment %s belongs to another uploader: %w", attachmentID, apperrors.ErrForbidden)
		}
		if attachment.MessageID != nil {
			return nil, fmt.Errorf("%w: attachment %s is already linked", apperrors.ErrValidation, attachmentID)
		}
	}

	now := time.Now()
	message := domain.Message{
		MessageID:      uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        req.Content,
		SentAt:         now,
	}

	mentions := s.resolveMentions(ctx, *conversation, message)

	saved, err := s.messageRepo.SaveMessage(ctx, message, req.AttachmentIDs, mentions)
	if err != nil {
		logger.Error("Failed to save message", slog.String("error", err.Error()), slog.String("conversation_id", conversationID))
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.broadcaster.Broadcast(conversationID, gateways.RealtimeEvent{
		Type:      "message_created",
		ChannelID: conversationID,
		Payload:   dto.ToMessageResponse(saved),
	})

	logger.Info("Message sent",
		slog.String("conversation_id", conversationID),
		slog.String("message_id", saved.MessageID),
		slog.Int64("sequence", saved.Sequence),
		slog.Int("mentions", len(mentions)))
	return saved, nil
}

// resolveMentions extracts `@First Last` candidates from the message text
// and resolves them against the directory. The sender never mentions
// themselves; duplicates collapse to one notification. Resolution is
// best-effort and failures leave the message unaffected.
func (s *ConversationService) resolveMentions(ctx context.Context, conversation domain.Conversation, message domain.Message) []domain.MentionNotification {
	logger := middleware.GetLoggerFromCtx(ctx)

	matches := mentionPattern.FindAllStringSubmatch(message.Content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	mentions := []domain.MentionNotification{}
	for _, match := range matches {
		fullName := match[1]
		employee, err := s.employeeRepo.FindEmployeeByFullName(ctx, fullName)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Mention lookup failed", slog.String("error", err.Error()), slog.String("candidate", fullName))
			}
			continue
		}
		if employee.EmployeeID == message.SenderID {
			continue
		}
		if _, dup := seen[employee.EmployeeID]; dup {
			continue
		}
		seen[employee.EmployeeID] = struct{}{}
		mentions = append(mentions, domain.MentionNotification{
			MentionID:      uuid.NewString(),
			MessageID:      message.MessageID,
			ConversationID: conversation.ConversationID,
			EmployeeID:     employee.EmployeeID,
			SenderID:       message.SenderID,
			Read:           false,
			CreatedAt:      message.SentAt,
		})
	}
	return mentions
}

// UpdateMessage edits a message's text. Only the sender may edit.
func (s *ConversationService) UpdateMessage(ctx context.Context, conversationID, messageID, callerID, content string) (*domain.Message, error) {
	message, err := s.messageRepo.FindMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != callerID {
		return nil, fmt.Errorf("only the sender may edit a message: %w", apperrors.ErrForbidden)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content must not be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	if err := s.messageRepo.UpdateMessageContent(ctx, conversationID, messageID, content, now); err != nil {
		return nil, fmt.Errorf("failed to edit message: %w", err)
	}
	message.Content = content
	message.EditedAt = &now

	s.broadcaster.Broadcast(conversationID, gateways.RealtimeEvent{
		Type:      "message_updated",
		ChannelID: conversationID,
		Payload:   dto.ToMessageResponse(message),
	})
	return message, nil
}

// DeleteMessage removes the message outright. Only the sender may delete.
func (s *ConversationService) DeleteMessage(ctx context.Context, conversationID, messageID, callerID string) error {
	message, err := s.messageRepo.FindMessageByID(ctx, conversationID, messageID)
	if err != nil {
		return err
	}
	if message.SenderID != callerID {
		return fmt.Errorf("only the sender may delete a message: %w", apperrors.ErrForbidden)
	}

	if err := s.messageRepo.DeleteMessage(ctx, conversationID, messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	s.broadcaster.Broadcast(conversationID, gateways.RealtimeEvent{
		Type:      "message_deleted",
		ChannelID: conversationID,
		Payload:   map[string]string{"messageID": messageID},
	})
	return nil
}

// MarkAsRead advances the caller's read receipt to now. The stored
// watermark is monotonic, so a stale call never moves it backward.
func (s *ConversationService) MarkAsRead(ctx context.Context, conversationID, callerID string) error {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return err
	}
	return s.conversationRepo.UpsertReadReceipt(ctx, conversationID, callerID, time.Now())
}

// AddReaction toggles a reaction on. Adding the same emoji twice yields
// the one stored reaction.
func (s *ConversationService) AddReaction(ctx context.Context, conversationID, messageID, callerID, emoji string) (*domain.Reaction, error) {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return nil, err
	}
	if _, err := s.messageRepo.FindMessageByID(ctx, conversationID, messageID); err != nil {
		return nil, err
	}

	reaction, err := s.messageRepo.AddReaction(ctx, domain.Reaction{
		ReactionID: uuid.NewString(),
		MessageID:  messageID,
		EmployeeID: callerID,
		Emoji:      emoji,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add reaction: %w", err)
	}

	s.broadcaster.Broadcast(conversationID, gateways.RealtimeEvent{
		Type:      "reaction_added",
		ChannelID: conversationID,
		Payload:   dto.ToReactionResponse(reaction),
	})
	return reaction, nil
}

// RemoveReaction toggles a reaction off; an absent triple is a no-op.
func (s *ConversationService) RemoveReaction(ctx context.Context, conversationID, messageID, callerID, emoji string) error {
	if _, err := s.requireParticipant(ctx, conversationID, callerID); err != nil {
		return err
	}
	if err := s.messageRepo.RemoveReaction(ctx, messageID, callerID, emoji); err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}

	s.broadcaster.Broadcast(conversationID, gateways.RealtimeEvent{
		Type:      "reaction_removed",
		ChannelID: conversationID,
		Payload: map[string]string{
			"messageID":  messageID,
			"employeeID": callerID,
			"emoji":      emoji,
		},
	})
	return nil
}

// ListMentions retrieves the caller's mention notifications, newest first.
func (s *ConversationService) ListMentions(ctx context.Context, employeeID string, limit, offset int) ([]domain.MentionNotification, error) {
	mentions, err := s.messageRepo.FindMentionsForEmployee(ctx, employeeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentions: %w", err)
	}
	return mentions, nil
}

// MarkMentionRead flips the read flag on one of the caller's mentions.
func (s *ConversationService) MarkMentionRead(ctx context.Context, mentionID, employeeID string) error {
	if err := s.messageRepo.MarkMentionRead(ctx, mentionID, employeeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to mark mention read: %w", err)
	}
	return nil
}

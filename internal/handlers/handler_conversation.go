package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversationHandler handles HTTP requests for channels, messages,
// reactions, read receipts and mentions.
type conversationHandler struct {
	conversationService portssvc.ConversationSvcFacade
}

// newConversationHandler creates a new conversationHandler.
func newConversationHandler(cs portssvc.ConversationSvcFacade) *conversationHandler {
	return &conversationHandler{conversationService: cs}
}

// registerConversationRoutes registers messaging routes.
func registerConversationRoutes(rg *gin.RouterGroup, conversationService portssvc.ConversationSvcFacade) {
	h := newConversationHandler(conversationService)

	conversations := rg.Group("/conversations")
	{
		conversations.GET("", h.listChannels)
		conversations.POST("", h.createConversation)
		conversations.POST("/channels", h.createChannel)
		conversations.GET("/:conversation_id", h.getConversation)
		conversations.POST("/:conversation_id/join", h.joinConversation)
		conversations.POST("/:conversation_id/read", h.markAsRead)

		messages := conversations.Group("/:conversation_id/messages")
		{
			messages.GET("", h.getMessages)
			messages.POST("", h.sendMessage)
			messages.GET("/search", h.searchMessages)
			messages.PUT("/:message_id", h.updateMessage)
			messages.DELETE("/:message_id", h.deleteMessage)
			messages.POST("/:message_id/reactions", h.addReaction)
			messages.DELETE("/:message_id/reactions", h.removeReaction)
		}
	}

	mentions := rg.Group("/mentions")
	{
		mentions.GET("", h.listMentions)
		mentions.PUT("/:mention_id/read", h.markMentionRead)
	}
}

// listChannels godoc
// @Summary List the caller's channels
// @Description Lists conversations with unread counts, most recent message first.
// @Tags conversations
// @Produce json
// @Success 200 {object} dto.ListChannelsResponse
// @Security BearerAuth
// @Router /conversations [get]
func (h *conversationHandler) listChannels(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	summaries, err := h.conversationService.GetChannels(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err, "Failed to list channels")
		return
	}
	c.JSON(http.StatusOK, dto.ToListChannelsResponse(summaries))
}

// createConversation godoc
// @Summary Start an ad-hoc conversation
// @Description Starts a thread, optionally linked to a meeting as a follow-up discussion.
// @Tags conversations
// @Accept json
// @Produce json
// @Param conversation body dto.CreateConversationRequest true "Conversation details"
// @Success 201 {object} dto.ConversationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /conversations [post]
func (h *conversationHandler) createConversation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConversation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := h.conversationService.CreateConversation(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "Failed to create conversation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToConversationResponse(conversation))
}

// createChannel godoc
// @Summary Create a channel
// @Description Creates a persistent, named channel.
// @Tags conversations
// @Accept json
// @Produce json
// @Param channel body dto.CreateChannelRequest true "Channel details"
// @Success 201 {object} dto.ConversationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /conversations/channels [post]
func (h *conversationHandler) createChannel(c *gin.Context) {
	var req dto.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := h.conversationService.CreateChannel(c.Request.Context(), req, creatorID)
	if err != nil {
		respondError(c, err, "Failed to create channel")
		return
	}
	c.JSON(http.StatusCreated, dto.ToConversationResponse(conversation))
}

// getConversation godoc
// @Summary Get a conversation
// @Tags conversations
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} dto.ConversationResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /conversations/{conversation_id} [get]
func (h *conversationHandler) getConversation(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := h.conversationService.GetConversationByID(c.Request.Context(), c.Param("conversation_id"), caller)
	if err != nil {
		respondError(c, err, "Failed to get conversation")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversationResponse(conversation))
}

// joinConversation godoc
// @Summary Join a public channel
// @Description Joining twice is a no-op.
// @Tags conversations
// @Param conversation_id path string true "Conversation ID"
// @Success 204
// @Failure 403 {object} map[string]string "Not a public channel"
// @Security BearerAuth
// @Router /conversations/{conversation_id}/join [post]
func (h *conversationHandler) joinConversation(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.conversationService.JoinConversation(c.Request.Context(), c.Param("conversation_id"), caller); err != nil {
		respondError(c, err, "Failed to join conversation")
		return
	}
	c.Status(http.StatusNoContent)
}

// markAsRead godoc
// @Summary Mark a conversation as read
// @Description Advances the caller's read receipt to now; never moves it backward.
// @Tags conversations
// @Param conversation_id path string true "Conversation ID"
// @Success 204
// @Security BearerAuth
// @Router /conversations/{conversation_id}/read [post]
func (h *conversationHandler) markAsRead(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.conversationService.MarkAsRead(c.Request.Context(), c.Param("conversation_id"), caller); err != nil {
		respondError(c, err, "Failed to mark as read")
		return
	}
	c.Status(http.StatusNoContent)
}

// getMessages godoc
// @Summary Page through a conversation's messages
// @Description Page 0 is the newest take messages; messages come back in ascending order.
// @Tags messages
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param skip query int false "Messages to skip, counted from the newest" default(0)
// @Param take query int false "Page size" default(50)
// @Success 200 {object} dto.MessagesPageResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages [get]
func (h *conversationHandler) getMessages(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var params dto.MessagePageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	messages, hasMore, err := h.conversationService.GetMessages(c.Request.Context(), c.Param("conversation_id"), caller, params.Skip, params.Take)
	if err != nil {
		respondError(c, err, "Failed to load messages")
		return
	}
	c.JSON(http.StatusOK, dto.ToMessagesPageResponse(messages, hasMore))
}

// sendMessage godoc
// @Summary Send a message
// @Description Persists the message, links attachments, resolves mentions and fans out to live subscribers.
// @Tags messages
// @Accept json
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param message body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages [post]
func (h *conversationHandler) sendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	senderID, ok := callerID(c)
	if !ok {
		return
	}

	message, err := h.conversationService.SendMessage(c.Request.Context(), c.Param("conversation_id"), senderID, req)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMessageResponse(message))
}

// searchMessages godoc
// @Summary Search within a conversation
// @Description Case-insensitive substring search.
// @Tags messages
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param q query string true "Search text"
// @Success 200 {object} dto.MessagesPageResponse
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages/search [get]
func (h *conversationHandler) searchMessages(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var params dto.SearchMessagesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	messages, err := h.conversationService.SearchMessages(c.Request.Context(), c.Param("conversation_id"), caller, params.Query)
	if err != nil {
		respondError(c, err, "Failed to search messages")
		return
	}
	c.JSON(http.StatusOK, dto.ToMessagesPageResponse(messages, false))
}

// updateMessage godoc
// @Summary Edit a message
// @Description Sender-only.
// @Tags messages
// @Accept json
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param message_id path string true "Message ID"
// @Param message body dto.UpdateMessageRequest true "New content"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} map[string]string "Not the sender"
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages/{message_id} [put]
func (h *conversationHandler) updateMessage(c *gin.Context) {
	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerID(c)
	if !ok {
		return
	}

	message, err := h.conversationService.UpdateMessage(c.Request.Context(), c.Param("conversation_id"), c.Param("message_id"), caller, req.Content)
	if err != nil {
		respondError(c, err, "Failed to edit message")
		return
	}
	c.JSON(http.StatusOK, dto.ToMessageResponse(message))
}

// deleteMessage godoc
// @Summary Delete a message
// @Description Sender-only. Reactions, mentions and attachment links go with it.
// @Tags messages
// @Param conversation_id path string true "Conversation ID"
// @Param message_id path string true "Message ID"
// @Success 204
// @Failure 403 {object} map[string]string "Not the sender"
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages/{message_id} [delete]
func (h *conversationHandler) deleteMessage(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.conversationService.DeleteMessage(c.Request.Context(), c.Param("conversation_id"), c.Param("message_id"), caller); err != nil {
		respondError(c, err, "Failed to delete message")
		return
	}
	c.Status(http.StatusNoContent)
}

// addReaction godoc
// @Summary React to a message
// @Description Toggle on; adding the same emoji twice yields the one stored reaction.
// @Tags messages
// @Accept json
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param message_id path string true "Message ID"
// @Param reaction body dto.ReactionRequest true "Emoji"
// @Success 200 {object} dto.ReactionResponse
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages/{message_id}/reactions [post]
func (h *conversationHandler) addReaction(c *gin.Context) {
	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerID(c)
	if !ok {
		return
	}

	reaction, err := h.conversationService.AddReaction(c.Request.Context(), c.Param("conversation_id"), c.Param("message_id"), caller, req.Emoji)
	if err != nil {
		respondError(c, err, "Failed to add reaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToReactionResponse(reaction))
}

// removeReaction godoc
// @Summary Remove a reaction
// @Description Toggle off; removing an absent reaction is a no-op.
// @Tags messages
// @Param conversation_id path string true "Conversation ID"
// @Param message_id path string true "Message ID"
// @Param emoji query string true "Emoji"
// @Success 204
// @Security BearerAuth
// @Router /conversations/{conversation_id}/messages/{message_id}/reactions [delete]
func (h *conversationHandler) removeReaction(c *gin.Context) {
	emoji := c.Query("emoji")
	if emoji == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'emoji' is required"})
		return
	}

	caller, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.conversationService.RemoveReaction(c.Request.Context(), c.Param("conversation_id"), c.Param("message_id"), caller, emoji); err != nil {
		respondError(c, err, "Failed to remove reaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// listMentions godoc
// @Summary List the caller's mention notifications
// @Tags mentions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListMentionsResponse
// @Security BearerAuth
// @Router /mentions [get]
func (h *conversationHandler) listMentions(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	var params dto.ListMentionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	mentions, err := h.conversationService.ListMentions(c.Request.Context(), employeeID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list mentions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMentionsResponse(mentions))
}

// markMentionRead godoc
// @Summary Mark a mention notification as read
// @Tags mentions
// @Param mention_id path string true "Mention ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /mentions/{mention_id}/read [put]
func (h *conversationHandler) markMentionRead(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.conversationService.MarkMentionRead(c.Request.Context(), c.Param("mention_id"), employeeID); err != nil {
		respondError(c, err, "Failed to mark mention read")
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/orbitcommerce/collab_backend/internal/realtime"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
)

// writeTimeout bounds a single frame write to a subscriber.
const writeTimeout = 5 * time.Second

// wsHandler upgrades channel subscriptions to websockets and bridges them
// onto the distribution hub.
type wsHandler struct {
	conversationService portssvc.ConversationSvcFacade
	hub                 *realtime.Hub
}

// newWSHandler creates a new wsHandler.
func newWSHandler(cs portssvc.ConversationSvcFacade, hub *realtime.Hub) *wsHandler {
	return &wsHandler{conversationService: cs, hub: hub}
}

// registerRealtimeRoutes registers the live subscription route.
func registerRealtimeRoutes(rg *gin.RouterGroup, conversationService portssvc.ConversationSvcFacade, hub *realtime.Hub) {
	h := newWSHandler(conversationService, hub)
	rg.GET("/ws/conversations/:conversation_id", h.subscribe)
}

// inboundFrame is a client-to-server advisory frame. Only typing signals
// come upstream; everything authoritative goes through the REST surface.
type inboundFrame struct {
	Type string `json:"type"`
}

// subscribe godoc
// @Summary Subscribe to a conversation's live events
// @Description Upgrades to a websocket and streams message, reaction and presence events. Inbound frames carry typing signals only.
// @Tags realtime
// @Param conversation_id path string true "Conversation ID"
// @Success 101
// @Failure 403 {object} map[string]string "Not a participant"
// @Security BearerAuth
// @Router /ws/conversations/{conversation_id} [get]
func (h *wsHandler) subscribe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	conversationID := c.Param("conversation_id")

	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	conversation, err := h.conversationService.GetConversationByID(c.Request.Context(), conversationID, employeeID)
	if err != nil {
		respondError(c, err, "Failed to load conversation")
		return
	}
	if !conversation.HasParticipant(employeeID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Join the conversation before subscribing"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Failed to upgrade to websocket", slog.String("error", err.Error()))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "connection closed")

	ctx, cancelCtx := context.WithCancel(c.Request.Context())
	defer cancelCtx()

	sub, cancelSub := h.hub.Subscribe(conversationID)
	defer cancelSub()

	logger.Info("Realtime subscription opened",
		slog.String("conversation_id", conversationID),
		slog.String("employee_id", employeeID))

	// Read pump. Typing frames are rebroadcast as advisories; clients
	// expire them locally. A read error means the peer went away.
	go func() {
		defer cancelCtx()
		for {
			var frame inboundFrame
			if err := wsjson.Read(ctx, conn, &frame); err != nil {
				return
			}
			if frame.Type == "typing_start" || frame.Type == "typing_stop" {
				h.hub.Broadcast(conversationID, gateways.RealtimeEvent{
					Type:      frame.Type,
					ChannelID: conversationID,
					Payload:   map[string]string{"employeeID": employeeID},
				})
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, open := <-sub.C:
			if !open {
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, event)
			cancelWrite()
			if err != nil {
				logger.Info("Realtime subscription closed",
					slog.String("conversation_id", conversationID),
					slog.String("employee_id", employeeID))
				return
			}
		}
	}
}

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/core/domain"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// meetingHandler handles HTTP requests related to scheduling.
type meetingHandler struct {
	meetingService portssvc.MeetingSvcFacade
}

// newMeetingHandler creates a new meetingHandler.
func newMeetingHandler(ms portssvc.MeetingSvcFacade) *meetingHandler {
	return &meetingHandler{meetingService: ms}
}

// registerMeetingRoutes registers scheduling and calendar routes.
func registerMeetingRoutes(rg *gin.RouterGroup, meetingService portssvc.MeetingSvcFacade) {
	h := newMeetingHandler(meetingService)

	meetings := rg.Group("/meetings")
	{
		meetings.POST("", h.createMeeting)
		meetings.GET("/calendar", h.getCalendar)
		meetings.GET("/upcoming", h.getUpcoming)
		meetings.GET("/:meeting_id", h.getMeeting)
		meetings.PUT("/:meeting_id", h.updateMeeting)
		meetings.DELETE("/:meeting_id", h.cancelMeeting)
		meetings.POST("/:meeting_id/respond", h.respondToMeeting)
		meetings.GET("/:meeting_id/ics", h.exportICS)
		meetings.GET("/:meeting_id/join-token", h.getJoinToken)
	}
}

// createMeeting godoc
// @Summary Book a meeting
// @Description Books a meeting; virtual meetings get a calling room provisioned first.
// @Tags meetings
// @Accept json
// @Produce json
// @Param meeting body dto.CreateMeetingRequest true "Meeting details"
// @Success 201 {object} dto.MeetingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 502 {object} map[string]string "Calling provider unavailable"
// @Security BearerAuth
// @Router /meetings [post]
func (h *meetingHandler) createMeeting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMeeting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	organizerID, ok := callerID(c)
	if !ok {
		return
	}

	meeting, err := h.meetingService.CreateMeeting(c.Request.Context(), req, organizerID)
	if err != nil {
		respondError(c, err, "Failed to book meeting")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMeetingResponse(meeting))
}

// getCalendar godoc
// @Summary Calendar range query
// @Description Lists non-cancelled meetings overlapping [from, to), optionally scoped to one employee.
// @Tags meetings
// @Produce json
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Param employeeID query string false "Scope to one employee"
// @Success 200 {object} dto.ListMeetingsResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Security BearerAuth
// @Router /meetings/calendar [get]
func (h *meetingHandler) getCalendar(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, want RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, want RFC 3339"})
		return
	}
	var employeeID *string
	if v := c.Query("employeeID"); v != "" {
		employeeID = &v
	}

	meetings, err := h.meetingService.GetCalendarEvents(c.Request.Context(), from, to, employeeID)
	if err != nil {
		respondError(c, err, "Failed to query calendar")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMeetingsResponse(meetings))
}

// getUpcoming godoc
// @Summary Upcoming meetings for the caller
// @Tags meetings
// @Produce json
// @Param count query int false "Maximum entries" default(10)
// @Success 200 {object} dto.ListMeetingsResponse
// @Security BearerAuth
// @Router /meetings/upcoming [get]
func (h *meetingHandler) getUpcoming(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	var params struct {
		Count int `form:"count,default=10"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	meetings, err := h.meetingService.GetUpcomingMeetings(c.Request.Context(), employeeID, params.Count)
	if err != nil {
		respondError(c, err, "Failed to query upcoming meetings")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMeetingsResponse(meetings))
}

// getMeeting godoc
// @Summary Get a meeting
// @Tags meetings
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /meetings/{meeting_id} [get]
func (h *meetingHandler) getMeeting(c *gin.Context) {
	meeting, err := h.meetingService.GetMeetingByID(c.Request.Context(), c.Param("meeting_id"))
	if err != nil {
		respondError(c, err, "Failed to get meeting")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingResponse(meeting))
}

// updateMeeting godoc
// @Summary Edit a meeting
// @Description Organizer-only. Cancelled meetings accept no edits.
// @Tags meetings
// @Accept json
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Param meeting body dto.UpdateMeetingRequest true "Fields to update"
// @Success 200 {object} dto.MeetingResponse
// @Failure 403 {object} map[string]string "Not the organizer"
// @Security BearerAuth
// @Router /meetings/{meeting_id} [put]
func (h *meetingHandler) updateMeeting(c *gin.Context) {
	var req dto.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := callerID(c)
	if !ok {
		return
	}

	meeting, err := h.meetingService.UpdateMeeting(c.Request.Context(), c.Param("meeting_id"), req, caller)
	if err != nil {
		respondError(c, err, "Failed to update meeting")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingResponse(meeting))
}

// cancelMeeting godoc
// @Summary Cancel a meeting
// @Description Organizer-only, one-way transition. Attendees are notified best-effort.
// @Tags meetings
// @Param meeting_id path string true "Meeting ID"
// @Success 204
// @Failure 403 {object} map[string]string "Not the organizer"
// @Security BearerAuth
// @Router /meetings/{meeting_id} [delete]
func (h *meetingHandler) cancelMeeting(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.meetingService.CancelMeeting(c.Request.Context(), c.Param("meeting_id"), caller); err != nil {
		respondError(c, err, "Failed to cancel meeting")
		return
	}
	c.Status(http.StatusNoContent)
}

// respondToMeeting godoc
// @Summary RSVP to a meeting
// @Description Records the caller's response. Fails when the caller is not on the attendee list.
// @Tags meetings
// @Accept json
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Param response body dto.RespondToMeetingRequest true "RSVP"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} map[string]string "Not an attendee"
// @Security BearerAuth
// @Router /meetings/{meeting_id}/respond [post]
func (h *meetingHandler) respondToMeeting(c *gin.Context) {
	var req dto.RespondToMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	meeting, err := h.meetingService.RespondToMeeting(c.Request.Context(), c.Param("meeting_id"), employeeID, domain.RSVPResponse(req.Response))
	if err != nil {
		respondError(c, err, "Failed to record response")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeetingResponse(meeting))
}

// exportICS godoc
// @Summary Export a meeting as iCalendar
// @Tags meetings
// @Produce text/calendar
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {string} string "VCALENDAR object"
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /meetings/{meeting_id}/ics [get]
func (h *meetingHandler) exportICS(c *gin.Context) {
	ics, err := h.meetingService.ExportICS(c.Request.Context(), c.Param("meeting_id"))
	if err != nil {
		respondError(c, err, "Failed to export meeting")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="meeting.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// getJoinToken godoc
// @Summary Mint a calling join token
// @Description Returns a short-lived token for the caller to join the meeting's room.
// @Tags meetings
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {object} dto.JoinTokenResponse
// @Failure 400 {object} map[string]string "Not a virtual meeting"
// @Failure 403 {object} map[string]string "Not part of the meeting"
// @Security BearerAuth
// @Router /meetings/{meeting_id}/join-token [get]
func (h *meetingHandler) getJoinToken(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	token, err := h.meetingService.GetJoinToken(c.Request.Context(), c.Param("meeting_id"), employeeID)
	if err != nil {
		respondError(c, err, "Failed to mint join token")
		return
	}
	c.JSON(http.StatusOK, dto.JoinTokenResponse{Token: token})
}

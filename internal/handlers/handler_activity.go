package handlers

import (
	"net/http"

	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// activityHandler serves the merged activity feed.
type activityHandler struct {
	activityService portssvc.ActivitySvcFacade
}

// newActivityHandler creates a new activityHandler.
func newActivityHandler(as portssvc.ActivitySvcFacade) *activityHandler {
	return &activityHandler{activityService: as}
}

// registerActivityRoutes registers the activity feed route.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvcFacade) {
	h := newActivityHandler(activityService)
	rg.GET("/activity", h.getActivityFeed)
}

// getActivityFeed godoc
// @Summary Get the caller's activity feed
// @Description Recent messages and upcoming meetings merged newest first.
// @Tags activity
// @Produce json
// @Param count query int false "Page size" default(20)
// @Param skip query int false "Entries to skip" default(0)
// @Success 200 {object} dto.ActivityFeedResponse
// @Security BearerAuth
// @Router /activity [get]
func (h *activityHandler) getActivityFeed(c *gin.Context) {
	employeeID, ok := callerID(c)
	if !ok {
		return
	}

	var params dto.ActivityFeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	items, err := h.activityService.GetActivityFeed(c.Request.Context(), employeeID, params.Count, params.Skip)
	if err != nil {
		respondError(c, err, "Failed to load activity feed")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityFeedResponse(items))
}

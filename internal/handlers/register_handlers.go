package handlers

import (
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
	"github.com/orbitcommerce/collab_backend/internal/dto"
	"github.com/orbitcommerce/collab_backend/internal/middleware"
	"github.com/orbitcommerce/collab_backend/internal/platform/config"
	"github.com/orbitcommerce/collab_backend/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	registerCustomValidations()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, hub)
}

// registerCustomValidations wires struct-level rules into gin's validator.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterStructValidation(dto.MeetingTimesValidation, dto.CreateMeetingRequest{})
	}
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *realtime.Hub,
) {
	// AuthMiddleware resolves the token to an employee for the entire group.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, services.Employee))

	registerEmployeeRoutes(v1, services.Employee)
	registerMeetingRoutes(v1, services.Meeting)
	registerConversationRoutes(v1, services.Conversation)
	registerAttachmentRoutes(v1, services.Attachment)
	registerActivityRoutes(v1, services.Activity)
	registerRealtimeRoutes(v1, services.Conversation, hub)
}

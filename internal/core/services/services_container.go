package services

import (
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	portsrepo "github.com/orbitcommerce/collab_backend/internal/core/ports/repositories"
	portssvc "github.com/orbitcommerce/collab_backend/internal/core/ports/services"
)

// GatewayProvider holds the outward-facing adapters the services depend on.
type GatewayProvider struct {
	Calling     gateways.CallingGateway
	Publisher   gateways.EventPublisher
	FileStore   gateways.FileStore
	Broadcaster gateways.Broadcaster
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, gw GatewayProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Employee = NewEmployeeService(repos.EmployeeRepo, repos.ConversationRepo, gw.Broadcaster)
	container.Meeting = NewMeetingService(repos.MeetingRepo, repos.EmployeeRepo, gw.Calling, gw.Publisher)
	container.Conversation = NewConversationService(
		repos.ConversationRepo,
		repos.MessageRepo,
		repos.EmployeeRepo,
		repos.AttachmentRepo,
		repos.MeetingRepo,
		gw.Broadcaster,
	)
	container.Attachment = NewAttachmentService(repos.AttachmentRepo, gw.FileStore)
	container.Activity = NewActivityService(repos.MessageRepo, repos.MeetingRepo)

	return container
}

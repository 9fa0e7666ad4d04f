package services

import (
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize the property service first since the other services authorize
	// property access through it.
	container.Property = NewPropertyService(repos.PropertyRepo)

	propertyAuthorizer := container.Property.(portssvc.PropertyAuthorizerSvc)

	container.Room = NewRoomService(
		repos.RoomRepo,
		WithRoomPropertyAuthorizer(propertyAuthorizer),
	)
	container.Stay = NewStayService(
		repos.StayRepo,
		repos.RoomRepo,
		WithStayPropertyAuthorizer(propertyAuthorizer),
	)
	container.Cashbook = NewCashbookService(
		repos.LedgerRepo,
		repos.RoomRepo,
		WithCashbookPropertyAuthorizer(propertyAuthorizer),
	)
	container.User = NewUserService(repos.UserRepo)

	// Initialize TokenService
	container.TokenService = NewTokenService(cfg, container.User)

	// Initialize GoogleOAuthHandlerSvcFacade
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}

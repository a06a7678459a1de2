package services

import (
	portsrepo "github.com/synchroai/synchro_backend/internal/core/ports/repositories"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/platform/config"
)

// Adapters holds the external adapters the service layer is wired with.
type Adapters struct {
	Gateway   portssvc.CheckoutGateway
	Calendar  portssvc.CalendarClient
	Mailer    portssvc.MailSender
	BlobStore portssvc.BlobStore
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, adapters Adapters) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Wallet = NewWalletService(repos.UserRepo, repos.LedgerRepo)

	scheduler := NewConsultationScheduler(adapters.Calendar, adapters.Mailer, cfg.OperatorEmail)
	container.Catalog = NewCatalogService(
		repos.ServiceRepo,
		container.Wallet,
		WithConsultationScheduler(scheduler),
	)

	container.Order = NewOrderService(repos.OrderRepo, repos.ServiceRepo, adapters.BlobStore)
	container.TopUp = NewTopUpService(adapters.Gateway, container.Wallet)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

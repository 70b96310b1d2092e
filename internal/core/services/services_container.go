package services

import (
	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Afdeling = NewAfdelingService(repos.AfdelingRepo, repos.UserRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.UserRepo)

	// Drive comes before Transaction; receipt operations go through it.
	container.Drive = NewDriveService(repos.DriveCredRepo, cfg)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.SettingsRepo, repos.UserRepo, container.Drive)

	container.Dashboard = NewDashboardService(repos.TransactionRepo, repos.SettingsRepo, repos.UserRepo)
	container.Export = NewExportService(repos.TransactionRepo, repos.SettingsRepo, repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}

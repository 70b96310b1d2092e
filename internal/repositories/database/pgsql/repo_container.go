package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		AfdelingRepo:    newPgxAfdelingRepository(dbPool),
		SettingsRepo:    newPgxSettingsRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		DriveCredRepo:   newPgxDriveCredentialRepository(dbPool),
	}
}

package pgsql

import (
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	propertyRepo := newPgxPropertyRepository(dbPool)
	roomRepo := newPgxRoomRepository(dbPool)
	stayRepo := newPgxStayRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		PropertyRepo: propertyRepo,
		RoomRepo:     roomRepo,
		StayRepo:     stayRepo,
		LedgerRepo:   ledgerRepo,
	}
}

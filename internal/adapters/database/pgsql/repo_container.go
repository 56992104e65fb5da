package pgsql

import (
	portsrepo "github.com/SscSPs/amortization_manager/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AmortizationRepo: newPgxAmortizationRepository(dbPool),
		EntityRepo:       newPgxEntityRepository(dbPool),
	}
}

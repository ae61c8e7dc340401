package pgsql

import (
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository port to the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		FinancialsRepo:  newPgxFinancialsRepository(dbPool),
		AuditRepo:       newPgxAuditRepository(dbPool),
		UnitOfWork:      newPgxUnitOfWork(dbPool),
	}
}

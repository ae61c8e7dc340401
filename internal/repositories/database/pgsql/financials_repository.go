package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/bank_backoffice/internal/models"
	"github.com/SscSPs/bank_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// financialsRowID identifies the single bank_financials row.
const financialsRowID = 1

type PgxFinancialsRepository struct {
	BaseRepository
}

func newPgxFinancialsRepository(pool *pgxpool.Pool) *PgxFinancialsRepository {
	return &PgxFinancialsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FinancialsRepository = (*PgxFinancialsRepository)(nil)

// GetFinancials returns the bank financials row.
func (r *PgxFinancialsRepository) GetFinancials(ctx context.Context) (*domain.BankFinancials, error) {
	query := `SELECT retained_earnings, last_updated_at, last_updated_by FROM bank_financials WHERE id = $1;`
	var m models.BankFinancials
	if err := r.Pool.QueryRow(ctx, query, financialsRowID).Scan(&m.RetainedEarnings, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
		return nil, fmt.Errorf("failed to load bank financials: %w", err)
	}
	f := mapping.ToDomainFinancials(m)
	return &f, nil
}

// ApplyEarnings adds netIncome less dividends under a row lock.
func (r *PgxFinancialsRepository) ApplyEarnings(ctx context.Context, netIncome, dividends decimal.Decimal, userID string, now time.Time) (*domain.BankFinancials, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var m models.BankFinancials
	err = tx.QueryRow(ctx,
		`SELECT retained_earnings, last_updated_at, last_updated_by FROM bank_financials WHERE id = $1 FOR UPDATE;`,
		financialsRowID,
	).Scan(&m.RetainedEarnings, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to lock bank financials: %w", err)
	}

	f := mapping.ToDomainFinancials(m)
	f.ApplyEarnings(netIncome, dividends, userID, now)

	_, err = tx.Exec(ctx,
		`UPDATE bank_financials SET retained_earnings = $2, last_updated_at = $3, last_updated_by = $4 WHERE id = $1;`,
		financialsRowID, f.RetainedEarnings, f.LastUpdatedAt, f.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update bank financials: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &f, nil
}

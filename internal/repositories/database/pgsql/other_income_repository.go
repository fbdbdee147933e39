package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
	"github.com/shahmir3899/fee_ledger_app/internal/utils/mapping"
)

type PgxOtherIncomeRepository struct {
	BaseRepository
}

// newPgxOtherIncomeRepository creates a new repository for non-fee income entries.
func newPgxOtherIncomeRepository(pool *pgxpool.Pool) portsrepo.OtherIncomeRepositoryFacade {
	return &PgxOtherIncomeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOtherIncomeRepository implements portsrepo.OtherIncomeRepositoryFacade
var _ portsrepo.OtherIncomeRepositoryFacade = (*PgxOtherIncomeRepository)(nil)

const otherIncomeSelectColumns = `
	income_id, school_id, category, amount, income_date, account_id, description,
	created_at, created_by, last_updated_at, last_updated_by
`

// getOtherIncome runs the shared SELECT with the given filter clause and collects rows.
func (r *PgxOtherIncomeRepository) getOtherIncome(ctx context.Context, filterQuery string, args ...any) ([]domain.OtherIncome, error) {
	query := `SELECT ` + otherIncomeSelectColumns + ` FROM other_income ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query other income", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OtherIncome, error) {
		var m models.OtherIncome
		err := row.Scan(
			&m.IncomeID,
			&m.SchoolID,
			&m.Category,
			&m.Amount,
			&m.IncomeDate,
			&m.AccountID,
			&m.Description,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.OtherIncome{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect other income rows", err)
	}

	entries := make([]domain.OtherIncome, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainOtherIncome(m)
	}
	return entries, nil
}

func (r *PgxOtherIncomeRepository) FindOtherIncomeByID(ctx context.Context, schoolID, incomeID string) (*domain.OtherIncome, error) {
	entries, err := r.getOtherIncome(ctx, `WHERE school_id = $1 AND income_id = $2`, schoolID, incomeID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

func (r *PgxOtherIncomeRepository) ListOtherIncome(ctx context.Context, schoolID string, from, to time.Time) ([]domain.OtherIncome, error) {
	filter := `
		WHERE school_id = $1 AND income_date >= $2 AND income_date <= $3
		ORDER BY income_date DESC`
	return r.getOtherIncome(ctx, filter, schoolID, from, to)
}

func (r *PgxOtherIncomeRepository) SaveOtherIncome(ctx context.Context, income domain.OtherIncome) error {
	m := mapping.ToModelOtherIncome(income)
	query := `
		INSERT INTO other_income (
			income_id, school_id, category, amount, income_date, account_id, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.IncomeID,
		m.SchoolID,
		m.Category,
		m.Amount,
		m.IncomeDate,
		m.AccountID,
		m.Description,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to save other income "+m.IncomeID, err)
	}
	return nil
}

func (r *PgxOtherIncomeRepository) UpdateOtherIncome(ctx context.Context, income domain.OtherIncome) error {
	m := mapping.ToModelOtherIncome(income)
	query := `
		UPDATE other_income
		SET category = $1, amount = $2, income_date = $3, account_id = $4, description = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE school_id = $8 AND income_id = $9;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Category,
		m.Amount,
		m.IncomeDate,
		m.AccountID,
		m.Description,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SchoolID,
		m.IncomeID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update other income "+m.IncomeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOtherIncomeRepository) DeleteOtherIncome(ctx context.Context, schoolID, incomeID string) error {
	query := `DELETE FROM other_income WHERE school_id = $1 AND income_id = $2;`
	result, err := r.Pool.Exec(ctx, query, schoolID, incomeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete other income "+incomeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

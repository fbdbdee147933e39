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

type PgxFeeStructureRepository struct {
	BaseRepository
}

// newPgxFeeStructureRepository creates a new repository for fee structure rules.
func newPgxFeeStructureRepository(pool *pgxpool.Pool) portsrepo.FeeStructureRepositoryFacade {
	return &PgxFeeStructureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxFeeStructureRepository implements portsrepo.FeeStructureRepositoryFacade
var _ portsrepo.FeeStructureRepositoryFacade = (*PgxFeeStructureRepository)(nil)

const feeStructureSelectColumns = `
	structure_id, school_id, class_id, student_id, fee_type, monthly_amount,
	effective_from, is_active, created_at, created_by, last_updated_at, last_updated_by
`

func scanFeeStructureRow(row pgx.Row) (models.FeeStructure, error) {
	var m models.FeeStructure
	err := row.Scan(
		&m.StructureID,
		&m.SchoolID,
		&m.ClassID,
		&m.StudentID,
		&m.FeeType,
		&m.MonthlyAmount,
		&m.EffectiveFrom,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// getStructures runs the shared SELECT with the given filter clause and collects rows.
func (r *PgxFeeStructureRepository) getStructures(ctx context.Context, filterQuery string, args ...any) ([]domain.FeeStructure, error) {
	query := `SELECT ` + feeStructureSelectColumns + ` FROM fee_structures ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fee structures", err)
	}
	defer rows.Close()

	modelStructures, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FeeStructure, error) {
		return scanFeeStructureRow(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.FeeStructure{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect fee structure rows", err)
	}

	return mapping.ToDomainFeeStructures(modelStructures), nil
}

func (r *PgxFeeStructureRepository) FindStructureByID(ctx context.Context, structureID string) (*domain.FeeStructure, error) {
	structures, err := r.getStructures(ctx, `WHERE structure_id = $1`, structureID)
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &structures[0], nil
}

// FindActiveStudentOverride retrieves the active student-level override with the
// most recent effective_from on or before asOf.
func (r *PgxFeeStructureRepository) FindActiveStudentOverride(ctx context.Context, schoolID, studentID string, feeType domain.FeeType, asOf time.Time) (*domain.FeeStructure, error) {
	filter := `
		WHERE school_id = $1 AND student_id = $2 AND fee_type = $3
		  AND is_active = true AND effective_from <= $4
		ORDER BY effective_from DESC
		LIMIT 1`
	structures, err := r.getStructures(ctx, filter, schoolID, studentID, feeType, asOf)
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &structures[0], nil
}

// FindActiveClassStructure retrieves the active class-level default under the
// same effective-date rule as student overrides.
func (r *PgxFeeStructureRepository) FindActiveClassStructure(ctx context.Context, schoolID, classID string, feeType domain.FeeType, asOf time.Time) (*domain.FeeStructure, error) {
	filter := `
		WHERE school_id = $1 AND class_id = $2 AND fee_type = $3
		  AND is_active = true AND effective_from <= $4
		ORDER BY effective_from DESC
		LIMIT 1`
	structures, err := r.getStructures(ctx, filter, schoolID, classID, feeType, asOf)
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &structures[0], nil
}

// ListStructuresForFeeType retrieves every active structure of a fee type in a
// school so bulk generation can resolve all students from one query.
func (r *PgxFeeStructureRepository) ListStructuresForFeeType(ctx context.Context, schoolID string, feeType domain.FeeType) ([]domain.FeeStructure, error) {
	filter := `
		WHERE school_id = $1 AND fee_type = $2 AND is_active = true
		ORDER BY effective_from DESC`
	return r.getStructures(ctx, filter, schoolID, feeType)
}

func (r *PgxFeeStructureRepository) ListStructures(ctx context.Context, schoolID string) ([]domain.FeeStructure, error) {
	filter := `
		WHERE school_id = $1
		ORDER BY created_at DESC`
	return r.getStructures(ctx, filter, schoolID)
}

const insertFeeStructureQuery = `
	INSERT INTO fee_structures (
		structure_id, school_id, class_id, student_id, fee_type, monthly_amount,
		effective_from, is_active, created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func (r *PgxFeeStructureRepository) SaveStructure(ctx context.Context, structure domain.FeeStructure) error {
	m := mapping.ToModelFeeStructure(structure)
	_, err := r.Pool.Exec(ctx, insertFeeStructureQuery,
		m.StructureID,
		m.SchoolID,
		m.ClassID,
		m.StudentID,
		m.FeeType,
		m.MonthlyAmount,
		m.EffectiveFrom,
		m.IsActive,
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
		return apperrors.NewAppError(500, "failed to save fee structure "+m.StructureID, err)
	}
	return nil
}

// SaveStructureSuperseding deactivates any currently active structure for the
// same scope and fee type, then inserts the new one, within one transaction.
// Superseded rows are kept for audit.
func (r *PgxFeeStructureRepository) SaveStructureSuperseding(ctx context.Context, structure domain.FeeStructure) error {
	m := mapping.ToModelFeeStructure(structure)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var supersedeQuery string
	var scopeID string
	if m.StudentID != nil {
		supersedeQuery = `
			UPDATE fee_structures
			SET is_active = false, last_updated_at = $1, last_updated_by = $2
			WHERE school_id = $3 AND student_id = $4 AND fee_type = $5 AND is_active = true;
		`
		scopeID = *m.StudentID
	} else {
		supersedeQuery = `
			UPDATE fee_structures
			SET is_active = false, last_updated_at = $1, last_updated_by = $2
			WHERE school_id = $3 AND class_id = $4 AND fee_type = $5 AND is_active = true;
		`
		scopeID = *m.ClassID
	}

	_, err = tx.Exec(ctx, supersedeQuery, m.LastUpdatedAt, m.LastUpdatedBy, m.SchoolID, scopeID, m.FeeType)
	if err != nil {
		return apperrors.NewAppError(500, "failed to supersede fee structures for scope "+scopeID, err)
	}

	_, err = tx.Exec(ctx, insertFeeStructureQuery,
		m.StructureID,
		m.SchoolID,
		m.ClassID,
		m.StudentID,
		m.FeeType,
		m.MonthlyAmount,
		m.EffectiveFrom,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert fee structure "+m.StructureID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFeeStructureRepository) DeactivateStructure(ctx context.Context, structureID string, userID string, now time.Time) error {
	query := `
		UPDATE fee_structures
		SET is_active = false, last_updated_at = $1, last_updated_by = $2
		WHERE structure_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, now, userID, structureID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate fee structure "+structureID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

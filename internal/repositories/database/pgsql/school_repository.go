package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
	"github.com/shahmir3899/fee_ledger_app/internal/utils/mapping"
)

type PgxSchoolRepository struct {
	BaseRepository
}

// newPgxSchoolRepository creates a new repository for school (tenant) data.
func newPgxSchoolRepository(pool *pgxpool.Pool) portsrepo.SchoolRepositoryFacade {
	return &PgxSchoolRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxSchoolRepository implements portsrepo.SchoolRepositoryFacade
var _ portsrepo.SchoolRepositoryFacade = (*PgxSchoolRepository)(nil)

const schoolSelectColumns = `
	s.school_id, s.name, s.address, s.is_active,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
`

// getSchools runs the shared SELECT with the given filter clause and collects rows.
func (r *PgxSchoolRepository) getSchools(ctx context.Context, filterQuery string, args ...any) ([]domain.School, error) {
	query := `SELECT ` + schoolSelectColumns + ` FROM schools s ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schools", err)
	}
	defer rows.Close()

	modelSchools, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.School, error) {
		var m models.School
		err := row.Scan(
			&m.SchoolID,
			&m.Name,
			&m.Address,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.School{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect school rows", err)
	}

	schools := make([]domain.School, len(modelSchools))
	for i, m := range modelSchools {
		schools[i] = mapping.ToDomainSchool(m)
	}
	return schools, nil
}

func (r *PgxSchoolRepository) FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	schools, err := r.getSchools(ctx, `WHERE s.school_id = $1`, schoolID)
	if err != nil {
		return nil, err
	}
	if len(schools) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &schools[0], nil
}

// ListSchoolsByUserID retrieves all schools a user is a member of, excluding
// memberships marked REMOVED.
func (r *PgxSchoolRepository) ListSchoolsByUserID(ctx context.Context, userID string) ([]domain.School, error) {
	filter := `
		JOIN user_schools us ON s.school_id = us.school_id
		WHERE us.user_id = $1 AND us.role != $2
		ORDER BY s.name`
	return r.getSchools(ctx, filter, userID, domain.RoleRemoved)
}

func (r *PgxSchoolRepository) SaveSchool(ctx context.Context, school domain.School) error {
	m := mapping.ToModelSchool(school)
	query := `
		INSERT INTO schools (
			school_id, name, address, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SchoolID,
		m.Name,
		m.Address,
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
		return apperrors.NewAppError(500, "failed to save school "+m.SchoolID, err)
	}
	return nil
}

func (r *PgxSchoolRepository) UpdateSchool(ctx context.Context, school domain.School) error {
	m := mapping.ToModelSchool(school)
	query := `
		UPDATE schools
		SET name = $1, address = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE school_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Address,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SchoolID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update school "+m.SchoolID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSchoolRepository) AddUserToSchool(ctx context.Context, membership domain.UserSchool) error {
	query := `
		INSERT INTO user_schools (user_id, school_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, school_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.SchoolID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in school "+membership.SchoolID, err)
	}
	return nil
}

func (r *PgxSchoolRepository) FindUserSchoolRole(ctx context.Context, userID, schoolID string) (*domain.UserSchool, error) {
	query := `
		SELECT user_id, school_id, role, joined_at
		FROM user_schools
		WHERE user_id = $1 AND school_id = $2;
	`
	var us domain.UserSchool
	err := r.Pool.QueryRow(ctx, query, userID, schoolID).Scan(
		&us.UserID,
		&us.SchoolID,
		&us.Role,
		&us.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound // User is not a member of this school
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" school role in "+schoolID, err)
	}
	return &us, nil
}

// ListSchoolUsers retrieves all members of a school, excluding REMOVED memberships.
func (r *PgxSchoolRepository) ListSchoolUsers(ctx context.Context, schoolID string) ([]domain.UserSchool, error) {
	query := `
		SELECT us.user_id, u.name AS user_name, us.school_id, us.role, us.joined_at
		FROM user_schools us
		JOIN users u ON us.user_id = u.user_id
		WHERE us.school_id = $1 AND us.role != $2
		ORDER BY us.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, schoolID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for school "+schoolID, err)
	}
	defer rows.Close()

	var memberships []domain.UserSchool
	for rows.Next() {
		var us domain.UserSchool
		err := rows.Scan(
			&us.UserID,
			&us.UserName,
			&us.SchoolID,
			&us.Role,
			&us.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user school row", err)
		}
		memberships = append(memberships, us)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user school rows", err)
	}

	return memberships, nil
}

// UpdateUserSchoolRole updates a user's role in a school. Removal is a role
// change to REMOVED, keeping the membership row for audit.
func (r *PgxSchoolRepository) UpdateUserSchoolRole(ctx context.Context, userID, schoolID string, newRole domain.UserSchoolRole) error {
	query := `
		UPDATE user_schools
		SET role = $3
		WHERE user_id = $1 AND school_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, userID, schoolID, newRole)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID+" in school "+schoolID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

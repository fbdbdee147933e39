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

type PgxStudentRepository struct {
	BaseRepository
}

// newPgxStudentRepository creates a new repository for the student and class registries.
func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStudentRepository implements portsrepo.StudentRepositoryFacade
var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

const studentSelectColumns = `
	student_id, school_id, class_id, name, roll_no, status,
	created_at, created_by, last_updated_at, last_updated_by
`

// getStudents runs the shared SELECT with the given filter clause and collects rows.
func (r *PgxStudentRepository) getStudents(ctx context.Context, filterQuery string, args ...any) ([]domain.Student, error) {
	query := `SELECT ` + studentSelectColumns + ` FROM students ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query students", err)
	}
	defer rows.Close()

	modelStudents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Student, error) {
		var m models.Student
		err := row.Scan(
			&m.StudentID,
			&m.SchoolID,
			&m.ClassID,
			&m.Name,
			&m.RollNo,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Student{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect student rows", err)
	}

	students := make([]domain.Student, len(modelStudents))
	for i, m := range modelStudents {
		students[i] = mapping.ToDomainStudent(m)
	}
	return students, nil
}

func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, schoolID, studentID string) (*domain.Student, error) {
	students, err := r.getStudents(ctx, `WHERE school_id = $1 AND student_id = $2`, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &students[0], nil
}

// ListActiveStudents retrieves students with ACTIVE enrollment, optionally
// filtered to a single class. Bulk generation iterates this list.
func (r *PgxStudentRepository) ListActiveStudents(ctx context.Context, schoolID string, classID *string) ([]domain.Student, error) {
	if classID != nil {
		filter := `WHERE school_id = $1 AND class_id = $2 AND status = $3 ORDER BY name`
		return r.getStudents(ctx, filter, schoolID, *classID, domain.EnrollmentActive)
	}
	filter := `WHERE school_id = $1 AND status = $2 ORDER BY name`
	return r.getStudents(ctx, filter, schoolID, domain.EnrollmentActive)
}

func (r *PgxStudentRepository) ListStudents(ctx context.Context, schoolID string) ([]domain.Student, error) {
	return r.getStudents(ctx, `WHERE school_id = $1 ORDER BY name`, schoolID)
}

func (r *PgxStudentRepository) SaveStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)
	query := `
		INSERT INTO students (
			student_id, school_id, class_id, name, roll_no, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StudentID,
		m.SchoolID,
		m.ClassID,
		m.Name,
		m.RollNo,
		m.Status,
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
		return apperrors.NewAppError(500, "failed to save student "+m.StudentID, err)
	}
	return nil
}

func (r *PgxStudentRepository) UpdateStudent(ctx context.Context, student domain.Student) error {
	m := mapping.ToModelStudent(student)
	query := `
		UPDATE students
		SET class_id = $1, name = $2, roll_no = $3, status = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE school_id = $7 AND student_id = $8;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.ClassID,
		m.Name,
		m.RollNo,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SchoolID,
		m.StudentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update student "+m.StudentID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const classSelectColumns = `
	class_id, school_id, name, section,
	created_at, created_by, last_updated_at, last_updated_by
`

// getClasses runs the shared SELECT with the given filter clause and collects rows.
func (r *PgxStudentRepository) getClasses(ctx context.Context, filterQuery string, args ...any) ([]domain.SchoolClass, error) {
	query := `SELECT ` + classSelectColumns + ` FROM school_classes ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query classes", err)
	}
	defer rows.Close()

	modelClasses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SchoolClass, error) {
		var m models.SchoolClass
		err := row.Scan(
			&m.ClassID,
			&m.SchoolID,
			&m.Name,
			&m.Section,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.SchoolClass{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect class rows", err)
	}

	classes := make([]domain.SchoolClass, len(modelClasses))
	for i, m := range modelClasses {
		classes[i] = mapping.ToDomainSchoolClass(m)
	}
	return classes, nil
}

func (r *PgxStudentRepository) FindClassByID(ctx context.Context, schoolID, classID string) (*domain.SchoolClass, error) {
	classes, err := r.getClasses(ctx, `WHERE school_id = $1 AND class_id = $2`, schoolID, classID)
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &classes[0], nil
}

func (r *PgxStudentRepository) ListClasses(ctx context.Context, schoolID string) ([]domain.SchoolClass, error) {
	return r.getClasses(ctx, `WHERE school_id = $1 ORDER BY name, section`, schoolID)
}

func (r *PgxStudentRepository) SaveClass(ctx context.Context, class domain.SchoolClass) error {
	m := mapping.ToModelSchoolClass(class)
	query := `
		INSERT INTO school_classes (
			class_id, school_id, name, section,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClassID,
		m.SchoolID,
		m.Name,
		m.Section,
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
		return apperrors.NewAppError(500, "failed to save class "+m.ClassID, err)
	}
	return nil
}

func (r *PgxStudentRepository) UpdateClass(ctx context.Context, class domain.SchoolClass) error {
	m := mapping.ToModelSchoolClass(class)
	query := `
		UPDATE school_classes
		SET name = $1, section = $2, last_updated_at = $3, last_updated_by = $4
		WHERE school_id = $5 AND class_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Section,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SchoolID,
		m.ClassID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update class "+m.ClassID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

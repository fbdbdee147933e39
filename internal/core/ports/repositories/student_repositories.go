package repositories

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// StudentReader defines read operations for the student registry.
type StudentReader interface {
	// FindStudentByID retrieves a specific student by their ID.
	FindStudentByID(ctx context.Context, schoolID, studentID string) (*domain.Student, error)

	// ListActiveStudents retrieves students with ACTIVE enrollment, optionally
	// filtered to a single class.
	ListActiveStudents(ctx context.Context, schoolID string, classID *string) ([]domain.Student, error)

	// ListStudents retrieves all students of a school regardless of status.
	ListStudents(ctx context.Context, schoolID string) ([]domain.Student, error)
}

// StudentWriter defines write operations for the student registry.
type StudentWriter interface {
	// SaveStudent persists a new student.
	SaveStudent(ctx context.Context, student domain.Student) error

	// UpdateStudent updates an existing student's details.
	UpdateStudent(ctx context.Context, student domain.Student) error
}

// ClassReader defines read operations for the class registry.
type ClassReader interface {
	// FindClassByID retrieves a specific class by its ID.
	FindClassByID(ctx context.Context, schoolID, classID string) (*domain.SchoolClass, error)

	// ListClasses retrieves all classes of a school.
	ListClasses(ctx context.Context, schoolID string) ([]domain.SchoolClass, error)
}

// ClassWriter defines write operations for the class registry.
type ClassWriter interface {
	// SaveClass persists a new class.
	SaveClass(ctx context.Context, class domain.SchoolClass) error

	// UpdateClass updates an existing class's details.
	UpdateClass(ctx context.Context, class domain.SchoolClass) error
}

// StudentRepositoryFacade combines student and class registry interfaces.
type StudentRepositoryFacade interface {
	StudentReader
	StudentWriter
	ClassReader
	ClassWriter
}

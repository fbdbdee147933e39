package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// ClassReaderSvc defines read operations for class data
type ClassReaderSvc interface {
	// GetClassByID retrieves a specific class by its ID.
	GetClassByID(ctx context.Context, schoolID string, classID string, requestingUserID string) (*domain.SchoolClass, error)

	// ListClasses retrieves all classes in a school.
	ListClasses(ctx context.Context, schoolID string, requestingUserID string) ([]domain.SchoolClass, error)
}

// ClassWriterSvc defines write operations for class data
type ClassWriterSvc interface {
	// CreateClass persists a new class.
	CreateClass(ctx context.Context, schoolID string, req dto.CreateClassRequest, creatorUserID string) (*domain.SchoolClass, error)

	// UpdateClass updates class details.
	UpdateClass(ctx context.Context, schoolID string, classID string, req dto.UpdateClassRequest, requestingUserID string) (*domain.SchoolClass, error)
}

// StudentReaderSvc defines read operations for student data
type StudentReaderSvc interface {
	// GetStudentByID retrieves a specific student by their ID.
	GetStudentByID(ctx context.Context, schoolID string, studentID string, requestingUserID string) (*domain.Student, error)

	// ListStudents retrieves students in a school with optional filters.
	ListStudents(ctx context.Context, schoolID string, userID string, params dto.ListStudentsParams) ([]domain.Student, error)
}

// StudentWriterSvc defines write operations for student data
type StudentWriterSvc interface {
	// CreateStudent enrolls a new student.
	CreateStudent(ctx context.Context, schoolID string, req dto.CreateStudentRequest, creatorUserID string) (*domain.Student, error)

	// UpdateStudent updates student details, including enrollment status.
	UpdateStudent(ctx context.Context, schoolID string, studentID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.Student, error)
}

// StudentSvcFacade combines class and student service interfaces
type StudentSvcFacade interface {
	ClassReaderSvc
	ClassWriterSvc
	StudentReaderSvc
	StudentWriterSvc
}

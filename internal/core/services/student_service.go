package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shahmir3899/fee_ledger_app/internal/apperrors"
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	portsrepo "github.com/shahmir3899/fee_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/shahmir3899/fee_ledger_app/internal/core/ports/services"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// studentService manages the class and student registries.
type studentService struct {
	BaseService
	studentRepo portsrepo.StudentRepositoryFacade
}

// NewStudentService creates a new student service.
func NewStudentService(studentRepo portsrepo.StudentRepositoryFacade, authorizer portssvc.SchoolAuthorizerSvc) portssvc.StudentSvcFacade {
	return &studentService{
		BaseService: BaseService{SchoolAuthorizer: authorizer},
		studentRepo: studentRepo,
	}
}

var _ portssvc.StudentSvcFacade = (*studentService)(nil)

// CreateClass persists a new class.
func (s *studentService) CreateClass(ctx context.Context, schoolID string, req dto.CreateClassRequest, creatorUserID string) (*domain.SchoolClass, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}

	now := time.Now()
	class := domain.SchoolClass{
		ClassID:  uuid.NewString(),
		SchoolID: schoolID,
		Name:     req.Name,
		Section:  req.Section,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.studentRepo.SaveClass(ctx, class); err != nil {
		s.LogError(ctx, err, "Failed to save class", slog.String("school_id", schoolID), slog.String("class_name", req.Name))
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.LogInfo(ctx, "Class created", slog.String("class_id", class.ClassID), slog.String("school_id", schoolID))
	return &class, nil
}

// GetClassByID retrieves a class scoped to the school.
func (s *studentService) GetClassByID(ctx context.Context, schoolID string, classID string, requestingUserID string) (*domain.SchoolClass, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	class, err := s.studentRepo.FindClassByID(ctx, schoolID, classID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find class by ID", slog.String("class_id", classID))
		}
		return nil, err
	}
	return class, nil
}

// ListClasses retrieves all classes of a school.
func (s *studentService) ListClasses(ctx context.Context, schoolID string, requestingUserID string) ([]domain.SchoolClass, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	classes, err := s.studentRepo.ListClasses(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list classes", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	if classes == nil {
		return []domain.SchoolClass{}, nil
	}
	return classes, nil
}

// UpdateClass updates class details.
func (s *studentService) UpdateClass(ctx context.Context, schoolID string, classID string, req dto.UpdateClassRequest, requestingUserID string) (*domain.SchoolClass, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}

	class, err := s.studentRepo.FindClassByID(ctx, schoolID, classID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Section != nil {
		class.Section = *req.Section
	}
	class.LastUpdatedAt = time.Now()
	class.LastUpdatedBy = requestingUserID

	if err := s.studentRepo.UpdateClass(ctx, *class); err != nil {
		s.LogError(ctx, err, "Failed to update class", slog.String("class_id", classID))
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	s.LogInfo(ctx, "Class updated", slog.String("class_id", classID), slog.String("by_user_id", requestingUserID))
	return class, nil
}

// CreateStudent enrolls a new student into a class. New students start ACTIVE.
func (s *studentService) CreateStudent(ctx context.Context, schoolID string, req dto.CreateStudentRequest, creatorUserID string) (*domain.Student, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.FindClassByID(ctx, schoolID, req.ClassID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: class %s not found", apperrors.ErrValidation, req.ClassID)
		}
		return nil, fmt.Errorf("failed to validate class: %w", err)
	}

	now := time.Now()
	student := domain.Student{
		StudentID: uuid.NewString(),
		SchoolID:  schoolID,
		ClassID:   req.ClassID,
		Name:      req.Name,
		RollNo:    req.RollNo,
		Status:    domain.EnrollmentActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.studentRepo.SaveStudent(ctx, student); err != nil {
		s.LogError(ctx, err, "Failed to save student", slog.String("school_id", schoolID), slog.String("student_name", req.Name))
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.LogInfo(ctx, "Student enrolled", slog.String("student_id", student.StudentID), slog.String("class_id", req.ClassID))
	return &student, nil
}

// GetStudentByID retrieves a student scoped to the school.
func (s *studentService) GetStudentByID(ctx context.Context, schoolID string, studentID string, requestingUserID string) (*domain.Student, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, studentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find student by ID", slog.String("student_id", studentID))
		}
		return nil, err
	}
	return student, nil
}

// ListStudents retrieves students with optional class and status filters.
func (s *studentService) ListStudents(ctx context.Context, schoolID string, userID string, params dto.ListStudentsParams) ([]domain.Student, error) {
	if err := s.AuthorizeUser(ctx, userID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	students, err := s.studentRepo.ListStudents(ctx, schoolID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students", slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	result := make([]domain.Student, 0, len(students))
	for _, st := range students {
		if params.ClassID != nil && st.ClassID != *params.ClassID {
			continue
		}
		if params.Status != nil && string(st.Status) != *params.Status {
			continue
		}
		result = append(result, st)
	}
	return result, nil
}

// UpdateStudent updates student details, including enrollment status. A
// student moved off ACTIVE stops receiving generated fee records but keeps
// existing ones.
func (s *studentService) UpdateStudent(ctx context.Context, schoolID string, studentID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.Student, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, schoolID, domain.RoleStaff); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.FindStudentByID(ctx, schoolID, studentID)
	if err != nil {
		return nil, err
	}

	if req.ClassID != nil && *req.ClassID != student.ClassID {
		if _, err := s.studentRepo.FindClassByID(ctx, schoolID, *req.ClassID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: class %s not found", apperrors.ErrValidation, *req.ClassID)
			}
			return nil, fmt.Errorf("failed to validate class: %w", err)
		}
		student.ClassID = *req.ClassID
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.RollNo != nil {
		student.RollNo = *req.RollNo
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	student.LastUpdatedAt = time.Now()
	student.LastUpdatedBy = requestingUserID

	if err := s.studentRepo.UpdateStudent(ctx, *student); err != nil {
		s.LogError(ctx, err, "Failed to update student", slog.String("student_id", studentID))
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.LogInfo(ctx, "Student updated", slog.String("student_id", studentID), slog.String("by_user_id", requestingUserID))
	return student, nil
}

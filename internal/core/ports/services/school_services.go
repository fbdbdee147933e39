package services

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/dto"
)

// SchoolReaderSvc defines read operations for school data
type SchoolReaderSvc interface {
	// FindSchoolByID retrieves a specific school by its ID.
	FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error)

	// ListUserSchools retrieves schools a user belongs to.
	// If includeDisabled is true, it includes inactive schools.
	ListUserSchools(ctx context.Context, userID string, includeDisabled bool) ([]domain.School, error)

	// ListSchoolUsers retrieves all users and their roles for a specific school.
	// Only members of the school can access this data.
	ListSchoolUsers(ctx context.Context, schoolID string, requestingUserID string) ([]domain.UserSchool, error)
}

// SchoolWriterSvc defines write operations for school data
type SchoolWriterSvc interface {
	// CreateSchool persists a new school. The creator becomes its admin.
	CreateSchool(ctx context.Context, name, address, creatorUserID string) (*domain.School, error)

	// UpdateSchool updates a school's name or address. Only school admins
	// may update.
	UpdateSchool(ctx context.Context, schoolID string, req dto.UpdateSchoolRequest, requestingUserID string) (*domain.School, error)

	// DeactivateSchool marks a school as inactive.
	DeactivateSchool(ctx context.Context, schoolID string, requestingUserID string) error

	// ActivateSchool marks a school as active.
	ActivateSchool(ctx context.Context, schoolID string, requestingUserID string) error
}

// SchoolMembershipSvc defines operations for managing school membership
type SchoolMembershipSvc interface {
	// AddUserToSchool adds a user to a school with a specific role.
	AddUserToSchool(ctx context.Context, addingUserID, targetUserID, schoolID string, role domain.UserSchoolRole) error

	// RemoveUserFromSchool removes a user from a school.
	// Only school admins can remove users.
	RemoveUserFromSchool(ctx context.Context, requestingUserID, targetUserID, schoolID string) error

	// UpdateUserSchoolRole updates a user's role in a school.
	// Only school admins can update user roles.
	UpdateUserSchoolRole(ctx context.Context, requestingUserID, targetUserID, schoolID string, newRole domain.UserSchoolRole) error
}

// SchoolAuthorizerSvc defines operations for school authorization
type SchoolAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has required permissions for a school.
	AuthorizeUserAction(ctx context.Context, userID, schoolID string, requiredRole domain.UserSchoolRole) error
}

// SchoolSvcFacade combines all school-related service interfaces
// This is a facade for clients that need access to all operations
type SchoolSvcFacade interface {
	SchoolReaderSvc
	SchoolWriterSvc
	SchoolMembershipSvc
	SchoolAuthorizerSvc
}

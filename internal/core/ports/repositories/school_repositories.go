package repositories

import (
	"context"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// SchoolReader defines read operations for school (tenant) data.
type SchoolReader interface {
	// FindSchoolByID retrieves a specific school by its ID.
	FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error)

	// ListSchoolsByUserID retrieves all schools a user belongs to.
	ListSchoolsByUserID(ctx context.Context, userID string) ([]domain.School, error)
}

// SchoolWriter defines write operations for school data.
type SchoolWriter interface {
	// SaveSchool persists a new school.
	SaveSchool(ctx context.Context, school domain.School) error

	// UpdateSchool updates an existing school's details, including IsActive.
	UpdateSchool(ctx context.Context, school domain.School) error
}

// SchoolMembershipManager defines operations for managing school memberships.
type SchoolMembershipManager interface {
	// AddUserToSchool adds a user to a school with a specific role.
	AddUserToSchool(ctx context.Context, membership domain.UserSchool) error

	// FindUserSchoolRole retrieves the role of a user in a school.
	FindUserSchoolRole(ctx context.Context, userID, schoolID string) (*domain.UserSchool, error)

	// ListSchoolUsers retrieves all members of a school.
	ListSchoolUsers(ctx context.Context, schoolID string) ([]domain.UserSchool, error)

	// UpdateUserSchoolRole changes a user's role within a school. Removal is a
	// role change to RoleRemoved, keeping the membership row for audit.
	UpdateUserSchoolRole(ctx context.Context, userID, schoolID string, newRole domain.UserSchoolRole) error
}

// SchoolRepositoryFacade combines all school-related repository interfaces.
type SchoolRepositoryFacade interface {
	SchoolReader
	SchoolWriter
	SchoolMembershipManager
}

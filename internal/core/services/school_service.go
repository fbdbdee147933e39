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
	"github.com/shahmir3899/fee_ledger_app/internal/middleware"
)

// roleRank orders school roles for authorization checks. A user satisfies a
// required role when their own rank is at least as high.
var roleRank = map[domain.UserSchoolRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleStaff:    2,
	domain.RoleAdmin:    3,
}

// schoolService handles business logic related to schools and memberships.
type schoolService struct {
	schoolRepo portsrepo.SchoolRepositoryFacade
}

// NewSchoolService creates a new school service.
func NewSchoolService(sr portsrepo.SchoolRepositoryFacade) portssvc.SchoolSvcFacade {
	return &schoolService{schoolRepo: sr}
}

var _ portssvc.SchoolSvcFacade = (*schoolService)(nil)

// CreateSchool creates a new school and makes the creator the initial admin.
func (s *schoolService) CreateSchool(ctx context.Context, name, address, creatorUserID string) (*domain.School, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: school name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	newSchoolID := uuid.NewString()

	school := domain.School{
		SchoolID: newSchoolID,
		Name:     name,
		Address:  address,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.schoolRepo.SaveSchool(ctx, school); err != nil {
		logger.Error("Failed to save school in repository", slog.String("error", err.Error()), slog.String("school_name", name))
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	membership := domain.UserSchool{
		UserID:   creatorUserID,
		SchoolID: newSchoolID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.schoolRepo.AddUserToSchool(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin to new school", slog.String("error", err.Error()), slog.String("school_id", newSchoolID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to add creator to school: %w", err)
	}

	logger.Info("School created successfully", slog.String("school_id", newSchoolID), slog.String("creator_user_id", creatorUserID))
	return &school, nil
}

// UpdateSchool updates a school's name or address. Only admins may update.
func (s *schoolService) UpdateSchool(ctx context.Context, schoolID string, req dto.UpdateSchoolRequest, requestingUserID string) (*domain.School, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	school, err := s.schoolRepo.FindSchoolByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: school name cannot be empty", apperrors.ErrValidation)
		}
		school.Name = *req.Name
	}
	if req.Address != nil {
		school.Address = *req.Address
	}
	school.LastUpdatedAt = time.Now()
	school.LastUpdatedBy = requestingUserID

	if err := s.schoolRepo.UpdateSchool(ctx, *school); err != nil {
		logger.Error("Failed to update school in repository", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to update school %s: %w", schoolID, err)
	}

	logger.Info("School updated", slog.String("school_id", schoolID), slog.String("by_user_id", requestingUserID))
	return school, nil
}

// FindSchoolByID retrieves a school by its ID.
func (s *schoolService) FindSchoolByID(ctx context.Context, schoolID string) (*domain.School, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	school, err := s.schoolRepo.FindSchoolByID(ctx, schoolID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find school by ID in repository", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		}
		return nil, err
	}
	return school, nil
}

// ListUserSchools retrieves the schools a given user belongs to.
func (s *schoolService) ListUserSchools(ctx context.Context, userID string, includeDisabled bool) ([]domain.School, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	schools, err := s.schoolRepo.ListSchoolsByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to list schools for user from repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list schools for user %s: %w", userID, err)
	}

	result := make([]domain.School, 0, len(schools))
	for _, school := range schools {
		if !school.IsActive && !includeDisabled {
			continue
		}
		result = append(result, school)
	}

	logger.Debug("Schools listed successfully for user", slog.String("user_id", userID), slog.Int("count", len(result)))
	return result, nil
}

// ListSchoolUsers retrieves all members of a school. Only members can see the roster.
func (s *schoolService) ListSchoolUsers(ctx context.Context, schoolID string, requestingUserID string) ([]domain.UserSchool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, schoolID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.schoolRepo.ListSchoolUsers(ctx, schoolID)
	if err != nil {
		logger.Error("Failed to list school users from repository", slog.String("error", err.Error()), slog.String("school_id", schoolID))
		return nil, fmt.Errorf("failed to list users for school %s: %w", schoolID, err)
	}
	if members == nil {
		return []domain.UserSchool{}, nil
	}
	return members, nil
}

// DeactivateSchool marks a school as inactive.
func (s *schoolService) DeactivateSchool(ctx context.Context, schoolID string, requestingUserID string) error {
	return s.setSchoolActive(ctx, schoolID, requestingUserID, false)
}

// ActivateSchool marks a school as active.
func (s *schoolService) ActivateSchool(ctx context.Context, schoolID string, requestingUserID string) error {
	return s.setSchoolActive(ctx, schoolID, requestingUserID, true)
}

func (s *schoolService) setSchoolActive(ctx context.Context, schoolID, requestingUserID string, active bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}

	school, err := s.schoolRepo.FindSchoolByID(ctx, schoolID)
	if err != nil {
		return err
	}
	if school.IsActive == active {
		return nil // Already in the desired state
	}

	school.IsActive = active
	school.LastUpdatedAt = time.Now()
	school.LastUpdatedBy = requestingUserID

	if err := s.schoolRepo.UpdateSchool(ctx, *school); err != nil {
		logger.Error("Failed to update school active state", slog.String("error", err.Error()), slog.String("school_id", schoolID), slog.Bool("active", active))
		return fmt.Errorf("failed to update school %s: %w", schoolID, err)
	}

	logger.Info("School active state changed", slog.String("school_id", schoolID), slog.Bool("active", active), slog.String("by_user_id", requestingUserID))
	return nil
}

// AddUserToSchool adds a user to a school with a specific role.
func (s *schoolService) AddUserToSchool(ctx context.Context, addingUserID, targetUserID, schoolID string, role domain.UserSchoolRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, ok := roleRank[role]; !ok {
		return fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, role)
	}

	membership := domain.UserSchool{
		UserID:   targetUserID,
		SchoolID: schoolID,
		Role:     role,
		JoinedAt: time.Now(),
	}

	if err := s.schoolRepo.AddUserToSchool(ctx, membership); err != nil {
		logger.Error("Failed to add user to school in repository", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("school_id", schoolID))
		return fmt.Errorf("failed to add user %s to school %s: %w", targetUserID, schoolID, err)
	}

	logger.Info("User added to school", slog.String("target_user_id", targetUserID), slog.String("school_id", schoolID), slog.String("role", string(role)), slog.String("added_by_user_id", addingUserID))
	return nil
}

// RemoveUserFromSchool removes a user from a school. The membership row is kept
// with the REMOVED role for audit.
func (s *schoolService) RemoveUserFromSchool(ctx context.Context, requestingUserID, targetUserID, schoolID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}
	if requestingUserID == targetUserID {
		return fmt.Errorf("%w: admins cannot remove themselves", apperrors.ErrValidation)
	}

	if err := s.schoolRepo.UpdateUserSchoolRole(ctx, targetUserID, schoolID, domain.RoleRemoved); err != nil {
		logger.Error("Failed to remove user from school", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("school_id", schoolID))
		return fmt.Errorf("failed to remove user %s from school %s: %w", targetUserID, schoolID, err)
	}

	logger.Info("User removed from school", slog.String("target_user_id", targetUserID), slog.String("school_id", schoolID), slog.String("removed_by_user_id", requestingUserID))
	return nil
}

// UpdateUserSchoolRole changes a user's role in a school.
func (s *schoolService) UpdateUserSchoolRole(ctx context.Context, requestingUserID, targetUserID, schoolID string, newRole domain.UserSchoolRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, schoolID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, ok := roleRank[newRole]; !ok {
		return fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, newRole)
	}
	if requestingUserID == targetUserID && newRole != domain.RoleAdmin {
		return fmt.Errorf("%w: admins cannot demote themselves", apperrors.ErrValidation)
	}

	if err := s.schoolRepo.UpdateUserSchoolRole(ctx, targetUserID, schoolID, newRole); err != nil {
		logger.Error("Failed to update user school role", slog.String("error", err.Error()), slog.String("target_user_id", targetUserID), slog.String("school_id", schoolID))
		return fmt.Errorf("failed to update role for user %s in school %s: %w", targetUserID, schoolID, err)
	}

	logger.Info("User school role updated", slog.String("target_user_id", targetUserID), slog.String("school_id", schoolID), slog.String("new_role", string(newRole)), slog.String("updated_by_user_id", requestingUserID))
	return nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) within
// a specific school.
// Returns apperrors.ErrNotFound if the user is not a member, to avoid revealing
// school existence. Returns apperrors.ErrForbidden if the user is a member but
// lacks the required role.
func (s *schoolService) AuthorizeUserAction(ctx context.Context, userID, schoolID string, requiredRole domain.UserSchoolRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.schoolRepo.FindUserSchoolRole(ctx, userID, schoolID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user not a member of school", slog.String("user_id", userID), slog.String("school_id", schoolID))
			return apperrors.ErrNotFound
		}
		logger.Error("Failed to check user school role in repository", slog.String("error", err.Error()), slog.String("user_id", userID), slog.String("school_id", schoolID))
		return fmt.Errorf("failed to check authorization: %w", err)
	}

	userRank, ok := roleRank[membership.Role]
	if !ok {
		// REMOVED or unknown role: treat as non-member
		logger.Warn("Authorization failed: membership inactive", slog.String("user_id", userID), slog.String("school_id", schoolID), slog.String("role", string(membership.Role)))
		return apperrors.ErrNotFound
	}
	if userRank >= roleRank[requiredRole] {
		return nil
	}

	logger.Warn("Authorization failed: user lacks required role", slog.String("user_id", userID), slog.String("school_id", schoolID), slog.String("user_role", string(membership.Role)), slog.String("required_role", string(requiredRole)))
	return apperrors.ErrForbidden
}

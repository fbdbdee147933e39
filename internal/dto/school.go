package dto

import (
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// --- School DTOs ---

// CreateSchoolRequest defines data for creating a new school.
type CreateSchoolRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdateSchoolRequest defines data for updating a school. Pointer fields
// distinguish omitted fields from zero values.
type UpdateSchoolRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// SchoolResponse defines data returned for a school.
type SchoolResponse struct {
	SchoolID      string    `json:"schoolID"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ToSchoolResponse converts domain.School to DTO.
func ToSchoolResponse(s *domain.School) SchoolResponse {
	return SchoolResponse{
		SchoolID:      s.SchoolID,
		Name:          s.Name,
		Address:       s.Address,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
		LastUpdatedAt: s.LastUpdatedAt,
		LastUpdatedBy: s.LastUpdatedBy,
	}
}

// ListSchoolsResponse wraps a list of schools.
type ListSchoolsResponse struct {
	Schools []SchoolResponse `json:"schools"`
}

// ToListSchoolsResponse converts a slice of domain.School to DTO.
func ToListSchoolsResponse(schools []domain.School) ListSchoolsResponse {
	list := make([]SchoolResponse, len(schools))
	for i, s := range schools {
		list[i] = ToSchoolResponse(&s)
	}
	return ListSchoolsResponse{Schools: list}
}

// --- User School Membership DTOs ---

// AddUserToSchoolRequest defines data for adding a user to a school.
type AddUserToSchoolRequest struct {
	UserID string                `json:"userID" binding:"required"`
	Role   domain.UserSchoolRole `json:"role" binding:"required,oneof=ADMIN STAFF READONLY"`
}

// UserSchoolResponse defines data returned about a user's membership.
type UserSchoolResponse struct {
	UserID   string                `json:"userID"`
	UserName string                `json:"userName,omitempty"`
	SchoolID string                `json:"schoolID"`
	Role     domain.UserSchoolRole `json:"role"`
	JoinedAt time.Time             `json:"joinedAt"`
}

// ToUserSchoolResponse converts domain.UserSchool to DTO.
func ToUserSchoolResponse(us *domain.UserSchool) UserSchoolResponse {
	return UserSchoolResponse{
		UserID:   us.UserID,
		UserName: us.UserName,
		SchoolID: us.SchoolID,
		Role:     us.Role,
		JoinedAt: us.JoinedAt,
	}
}

// ToListUserSchoolResponse converts a slice of domain.UserSchool.
func ToListUserSchoolResponse(memberships []domain.UserSchool) []UserSchoolResponse {
	res := make([]UserSchoolResponse, len(memberships))
	for i := range memberships {
		res[i] = ToUserSchoolResponse(&memberships[i])
	}
	return res
}

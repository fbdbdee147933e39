package domain

import "time"

// School represents a single tenant. Every fee structure, student and ledger
// record belongs to exactly one school.
type School struct {
	SchoolID    string `json:"schoolID"` // Primary Key (e.g., UUID)
	Name        string `json:"name"`
	Address     string `json:"address"`     // Optional
	IsActive    bool   `json:"isActive"`    // Indicates whether the school is active or disabled
	AuditFields        // Embed common audit fields
}

// UserSchoolRole defines the possible roles a user can have within a school.
type UserSchoolRole string

const (
	RoleAdmin    UserSchoolRole = "ADMIN"
	RoleStaff    UserSchoolRole = "STAFF"
	RoleReadOnly UserSchoolRole = "READONLY"
	RoleRemoved  UserSchoolRole = "REMOVED" // For users who have been removed from the school
)

// UserSchool represents the membership of a User in a School.
type UserSchool struct {
	UserID   string         `json:"userID"`   // FK -> users.user_id
	UserName string         `json:"userName"` // Name of the user
	SchoolID string         `json:"schoolID"` // FK -> schools.school_id
	Role     UserSchoolRole `json:"role"`     // Role of the user in this specific school
	JoinedAt time.Time      `json:"joinedAt"` // Timestamp when the user joined the school
}

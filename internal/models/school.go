package models

import "time"

// School is the persistence row for a tenant school.
type School struct {
	SchoolID string `db:"school_id"`
	Name     string `db:"name"`
	Address  string `db:"address"`
	IsActive bool   `db:"is_active"`
	AuditFields
}

// UserSchool is the persistence row for user membership in a school.
type UserSchool struct {
	UserID   string    `db:"user_id"`
	SchoolID string    `db:"school_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

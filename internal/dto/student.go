package dto

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
)

// CreateClassRequest defines the data needed to create a school class.
type CreateClassRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Section string `json:"section" binding:"omitempty,max=20"`
}

// UpdateClassRequest defines the data for updating a class. Only provided
// fields are changed.
type UpdateClassRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Section *string `json:"section" binding:"omitempty,max=20"`
}

// ClassResponse defines the data returned for a school class.
type ClassResponse struct {
	ClassID string `json:"classID"`
	Name    string `json:"name"`
	Section string `json:"section,omitempty"`
}

// ToClassResponse converts a domain.SchoolClass to its response DTO.
func ToClassResponse(c *domain.SchoolClass) ClassResponse {
	return ClassResponse{
		ClassID: c.ClassID,
		Name:    c.Name,
		Section: c.Section,
	}
}

// ToListClassResponse converts a slice of domain.SchoolClass.
func ToListClassResponse(classes []domain.SchoolClass) []ClassResponse {
	res := make([]ClassResponse, len(classes))
	for i := range classes {
		res[i] = ToClassResponse(&classes[i])
	}
	return res
}

// CreateStudentRequest defines the data needed to enroll a student.
type CreateStudentRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	ClassID string `json:"classID" binding:"required"`
	RollNo  string `json:"rollNo" binding:"omitempty,max=20"`
}

// UpdateStudentRequest defines the data for updating a student. Only provided
// fields are changed.
type UpdateStudentRequest struct {
	Name    *string                  `json:"name" binding:"omitempty,min=1,max=255"`
	ClassID *string                  `json:"classID"`
	RollNo  *string                  `json:"rollNo" binding:"omitempty,max=20"`
	Status  *domain.EnrollmentStatus `json:"status" binding:"omitempty,oneof=ACTIVE LEFT GRADUATED"`
}

// StudentResponse defines the data returned for a student.
type StudentResponse struct {
	StudentID string                  `json:"studentID"`
	Name      string                  `json:"name"`
	ClassID   string                  `json:"classID"`
	RollNo    string                  `json:"rollNo,omitempty"`
	Status    domain.EnrollmentStatus `json:"status"`
}

// ToStudentResponse converts a domain.Student to its response DTO.
func ToStudentResponse(s *domain.Student) StudentResponse {
	return StudentResponse{
		StudentID: s.StudentID,
		Name:      s.Name,
		ClassID:   s.ClassID,
		RollNo:    s.RollNo,
		Status:    s.Status,
	}
}

// ToListStudentResponse converts a slice of domain.Student.
func ToListStudentResponse(students []domain.Student) []StudentResponse {
	res := make([]StudentResponse, len(students))
	for i := range students {
		res[i] = ToStudentResponse(&students[i])
	}
	return res
}

// ListStudentsParams defines query parameters for listing students.
type ListStudentsParams struct {
	ClassID *string `form:"classID"`
	Status  *string `form:"status" binding:"omitempty,oneof=ACTIVE LEFT GRADUATED"`
	Limit   int     `form:"limit,default=50"`
	Offset  int     `form:"offset,default=0"`
}

package domain

// EnrollmentStatus indicates whether a student is currently enrolled.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentLeft      EnrollmentStatus = "LEFT"
	EnrollmentGraduated EnrollmentStatus = "GRADUATED"
)

// SchoolClass represents a class (grade/section) within a school.
type SchoolClass struct {
	ClassID  string `json:"classID"`  // Primary Key (e.g., UUID)
	SchoolID string `json:"schoolID"` // FK -> schools.school_id
	Name     string `json:"name"`     // e.g., "Grade 5"
	Section  string `json:"section"`  // Optional, e.g., "B"
	AuditFields
}

// Student represents an enrolled student. Fee generation only considers
// students whose status is ACTIVE.
type Student struct {
	StudentID string           `json:"studentID"` // Primary Key (e.g., UUID)
	SchoolID  string           `json:"schoolID"`  // FK -> schools.school_id
	ClassID   string           `json:"classID"`   // FK -> school_classes.class_id
	Name      string           `json:"name"`
	RollNo    string           `json:"rollNo"`
	Status    EnrollmentStatus `json:"status"`
	AuditFields
}

// IsEligibleForFees reports whether the student should receive generated fee records.
func (s Student) IsEligibleForFees() bool {
	return s.Status == EnrollmentActive
}

package models

// SchoolClass is the persistence row for a class within a school.
type SchoolClass struct {
	ClassID  string `db:"class_id"`
	SchoolID string `db:"school_id"`
	Name     string `db:"name"`
	Section  string `db:"section"`
	AuditFields
}

// Student is the persistence row for an enrolled student.
type Student struct {
	StudentID string `db:"student_id"`
	SchoolID  string `db:"school_id"`
	ClassID   string `db:"class_id"`
	Name      string `db:"name"`
	RollNo    string `db:"roll_no"`
	Status    string `db:"status"`
	AuditFields
}

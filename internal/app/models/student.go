package models

// StudentRecord is one course enrollment of a student. A student's records
// share FirstName and LastName; the email is the ledger key.
type StudentRecord struct {
	FirstName string `json:"firstName" example:"Ada"`
	LastName  string `json:"lastName" example:"Lovelace"`
	CourseID  string `json:"courseId" example:"DATA200"`
	Grade     string `json:"grade" example:"A"`
	Marks     int    `json:"marks" example:"91"`
}

// Student is a student key with its enrollments.
type Student struct {
	Email   string          `json:"email" example:"ada@sjsu.edu"`
	Records []StudentRecord `json:"records"`
}

// Enrollment is the per-course part of a new student's data.
type Enrollment struct {
	CourseID string
	Grade    string
	Marks    string
}

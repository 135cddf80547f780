package models

// ProfessorRecord is one course taught by a professor. A professor's records
// share Name and Rank; the professor id is the ledger key.
type ProfessorRecord struct {
	Name     string `json:"name" example:"Grace Hopper"`
	Rank     string `json:"rank" example:"Senior Professor"`
	CourseID string `json:"courseId" example:"DATA200"`
}

// Professor is a professor key with its course records.
type Professor struct {
	ID      string            `json:"id" example:"hopper@sjsu.edu"`
	Records []ProfessorRecord `json:"records"`
}

// ProfessorPatch holds optional overrides for a professor. Nil or empty
// fields leave stored values unchanged; a non-empty Courses replaces the
// professor's whole course list.
type ProfessorPatch struct {
	Name    *string
	Rank    *string
	Courses []string
}

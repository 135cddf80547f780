package models

// CourseStat aggregates the marks recorded for one course.
type CourseStat struct {
	CourseID string  `json:"courseId" example:"DATA200"`
	Marks    []int   `json:"marks"`
	Mean     float64 `json:"mean" example:"85"`
	Median   float64 `json:"median" example:"85"`
}

// CourseMarks is one line of a student's marks report.
type CourseMarks struct {
	CourseID string  `json:"courseId" example:"DATA200"`
	Marks    int     `json:"marks" example:"91"`
	Mean     float64 `json:"mean" example:"85"`
	Median   float64 `json:"median" example:"85"`
}

// MarksReport lists a student's marks next to each course's mean and median.
// OverallMean is the unweighted average of the student's own marks.
type MarksReport struct {
	Email       string        `json:"email" example:"ada@sjsu.edu"`
	Courses     []CourseMarks `json:"courses"`
	OverallMean float64       `json:"overallMean" example:"83"`
}

// CourseGrade is one line of a student's grade report.
type CourseGrade struct {
	CourseID string `json:"courseId" example:"DATA200"`
	Marks    int    `json:"marks" example:"91"`
	Grade    string `json:"grade" example:"A"`
}

// GradeReport lists the relative grade per course and the most frequent one.
type GradeReport struct {
	Email        string        `json:"email" example:"ada@sjsu.edu"`
	Courses      []CourseGrade `json:"courses"`
	OverallGrade string        `json:"overallGrade" example:"A"`
}

// ImportResult summarizes a bulk student import.
type ImportResult struct {
	Imported int      `json:"imported" example:"12"`
	Skipped  int      `json:"skipped" example:"1"`
	Errors   []string `json:"errors,omitempty"`
}

package services

import (
	"context"
	"fmt"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/stats"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

// StudentSnapshot is a read-only copy of the student ledger.
type StudentSnapshot = []table.Entry[models.StudentRecord]

// StatisticsService defines the interface for grade statistics
type StatisticsService interface {
	CourseStats(ctx context.Context) []models.CourseStat
	MarksReport(ctx context.Context, email string) (*models.MarksReport, error)
	GradeReport(ctx context.Context, email string) (*models.GradeReport, error)
}

type statisticsServiceImpl struct {
	studentRepo *repositories.StudentRepository
}

// NewStatisticsService creates a new statistics service instance
func NewStatisticsService(studentRepo *repositories.StudentRepository) StatisticsService {
	return &statisticsServiceImpl{studentRepo: studentRepo}
}

// CourseStats returns per-course statistics in order of first appearance
func (s *statisticsServiceImpl) CourseStats(ctx context.Context) []models.CourseStat {
	snapshot := s.studentRepo.Snapshot(ctx)
	byCourse := CourseStats(snapshot)

	result := make([]models.CourseStat, 0, len(byCourse))
	for _, courseID := range courseOrder(snapshot) {
		result = append(result, byCourse[courseID])
	}
	return result
}

// MarksReport builds the marks report of one student
func (s *statisticsServiceImpl) MarksReport(ctx context.Context, email string) (*models.MarksReport, error) {
	return BuildMarksReport(s.studentRepo.Snapshot(ctx), email)
}

// GradeReport builds the relative grade report of one student
func (s *statisticsServiceImpl) GradeReport(ctx context.Context, email string) (*models.GradeReport, error) {
	return BuildGradeReport(s.studentRepo.Snapshot(ctx), email)
}

// CourseStats groups every record of snapshot by course id and computes the
// mean and median of each group.
func CourseStats(snapshot StudentSnapshot) map[string]models.CourseStat {
	marks := make(map[string][]int)
	for _, entry := range snapshot {
		for _, rec := range entry.Records {
			marks[rec.CourseID] = append(marks[rec.CourseID], rec.Marks)
		}
	}

	result := make(map[string]models.CourseStat, len(marks))
	for courseID, values := range marks {
		result[courseID] = models.CourseStat{
			CourseID: courseID,
			Marks:    values,
			Mean:     stats.Mean(values),
			Median:   stats.Median(values),
		}
	}
	return result
}

func courseOrder(snapshot StudentSnapshot) []string {
	seen := make(map[string]bool)
	var order []string
	for _, entry := range snapshot {
		for _, rec := range entry.Records {
			if !seen[rec.CourseID] {
				seen[rec.CourseID] = true
				order = append(order, rec.CourseID)
			}
		}
	}
	return order
}

func findStudent(snapshot StudentSnapshot, email string) ([]models.StudentRecord, error) {
	for _, entry := range snapshot {
		if entry.Key == email {
			return entry.Records, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("student %q not found", email))
}

// BuildMarksReport lists the student's marks per course with the course mean
// and median, plus the mean of the student's own marks.
func BuildMarksReport(snapshot StudentSnapshot, email string) (*models.MarksReport, error) {
	records, err := findStudent(snapshot, email)
	if err != nil {
		return nil, err
	}

	byCourse := CourseStats(snapshot)
	report := &models.MarksReport{Email: email, Courses: make([]models.CourseMarks, 0, len(records))}
	own := make([]int, 0, len(records))
	for _, rec := range records {
		stat := byCourse[rec.CourseID]
		report.Courses = append(report.Courses, models.CourseMarks{
			CourseID: rec.CourseID,
			Marks:    rec.Marks,
			Mean:     stat.Mean,
			Median:   stat.Median,
		})
		own = append(own, rec.Marks)
	}
	report.OverallMean = stats.Mean(own)
	return report, nil
}

// BuildGradeReport grades each of the student's courses against the course
// mean: A above, B equal, C below. The overall grade is the most frequent
// one; ties go to the grade met first in the student's record order.
func BuildGradeReport(snapshot StudentSnapshot, email string) (*models.GradeReport, error) {
	records, err := findStudent(snapshot, email)
	if err != nil {
		return nil, err
	}

	byCourse := CourseStats(snapshot)
	report := &models.GradeReport{Email: email, Courses: make([]models.CourseGrade, 0, len(records))}
	grades := make([]string, 0, len(records))
	for _, rec := range records {
		grade := RelativeGrade(rec.Marks, byCourse[rec.CourseID].Mean)
		report.Courses = append(report.Courses, models.CourseGrade{
			CourseID: rec.CourseID,
			Marks:    rec.Marks,
			Grade:    grade,
		})
		grades = append(grades, grade)
	}
	report.OverallGrade, _ = stats.Mode(grades)
	return report, nil
}

// RelativeGrade compares marks with a course mean.
func RelativeGrade(marks int, mean float64) string {
	switch m := float64(marks); {
	case m > mean:
		return models.GradeAboveMean
	case m == mean:
		return models.GradeAtMean
	default:
		return models.GradeBelowMean
	}
}

package services

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/yigit/checkmygrade/internal/app/repositories"
	"github.com/yigit/checkmygrade/internal/pkg/spreadsheet"
)

// Sheet names of the exported workbook
const (
	StudentsSheet    = "Students"
	CourseStatsSheet = "Course Stats"
)

// CourseStatsHeader is the header row of the course statistics sheet
var CourseStatsHeader = []string{"Course_id", "Students", "Mean", "Median"}

// ReportService renders the student ledger as a spreadsheet
type ReportService interface {
	Export(ctx context.Context, w io.Writer) error
}

type reportServiceImpl struct {
	studentRepo *repositories.StudentRepository
	statistics  StatisticsService
	logger      zerolog.Logger
}

// NewReportService creates a new report service instance
func NewReportService(studentRepo *repositories.StudentRepository, statistics StatisticsService, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		studentRepo: studentRepo,
		statistics:  statistics,
		logger:      logger,
	}
}

// Export writes an xlsx workbook with the student table and per-course statistics
func (s *reportServiceImpl) Export(ctx context.Context, w io.Writer) error {
	students := spreadsheet.Sheet{Name: StudentsSheet, Header: repositories.StudentHeader}
	for _, entry := range s.studentRepo.Snapshot(ctx) {
		for _, rec := range entry.Records {
			students.Rows = append(students.Rows, []interface{}{
				entry.Key, rec.FirstName, rec.LastName, rec.CourseID, rec.Grade, rec.Marks,
			})
		}
	}

	courseStats := spreadsheet.Sheet{Name: CourseStatsSheet, Header: CourseStatsHeader}
	for _, stat := range s.statistics.CourseStats(ctx) {
		courseStats.Rows = append(courseStats.Rows, []interface{}{
			stat.CourseID, len(stat.Marks), stat.Mean, stat.Median,
		})
	}

	if err := spreadsheet.Write(w, students, courseStats); err != nil {
		s.logger.Error().Err(err).Msg("Error exporting workbook")
		return err
	}

	s.logger.Info().Int("rows", len(students.Rows)).Int("courses", len(courseStats.Rows)).Msg("Workbook exported")
	return nil
}

package services

// Services defined in this package:
// - AuthService: login, account creation and password changes
// - StudentService: the student ledger and spreadsheet import
// - ProfessorService: the faculty ledger
// - CourseService: the course catalog
// - DirectoryService: lookups joining professors and courses
// - StatisticsService: per-course statistics, marks and grade reports
// - ReportService: spreadsheet export

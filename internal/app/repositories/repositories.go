package repositories

import (
	"github.com/yigit/checkmygrade/internal/config"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository   *StudentRepository
	CourseRepository    *CourseRepository
	ProfessorRepository *ProfessorRepository
	AccountRepository   *AccountRepository
}

// NewRepositories loads every table named in cfg
func NewRepositories(cfg *config.Config) (*Repositories, error) {
	students, err := NewStudentRepository(cfg.StudentPath())
	if err != nil {
		return nil, err
	}

	professors, err := NewProfessorRepository(cfg.ProfessorPath())
	if err != nil {
		return nil, err
	}

	accounts, err := NewAccountRepository(cfg.LoginPath())
	if err != nil {
		return nil, err
	}

	return &Repositories{
		StudentRepository:   students,
		CourseRepository:    NewCourseRepository(cfg.CoursePath(), cfg.Catalog.AllowDuplicateIDs),
		ProfessorRepository: professors,
		AccountRepository:   accounts,
	}, nil
}

package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/yigit/checkmygrade/internal/app/models"
	"github.com/yigit/checkmygrade/internal/pkg/apperrors"
	"github.com/yigit/checkmygrade/internal/pkg/logger"
	"github.com/yigit/checkmygrade/internal/pkg/table"
)

// ProfessorHeader is the header row of the professor table.
var ProfessorHeader = []string{"Professor_id", "professor_Name", "Rank", "course_id"}

type professorCodec struct{}

func (professorCodec) Header() []string { return ProfessorHeader }

func (professorCodec) Decode(row []string) (string, models.ProfessorRecord, error) {
	return row[0], models.ProfessorRecord{Name: row[1], Rank: row[2], CourseID: row[3]}, nil
}

func (professorCodec) Encode(id string, r models.ProfessorRecord) []string {
	return []string{id, r.Name, r.Rank, r.CourseID}
}

// ProfessorRepository is the faculty ledger: professor id → taught courses.
type ProfessorRepository struct {
	mu    sync.RWMutex
	table *table.Table[models.ProfessorRecord]
}

// NewProfessorRepository loads the professor table at path.
func NewProfessorRepository(path string) (*ProfessorRepository, error) {
	tbl := table.New[models.ProfessorRecord](path, professorCodec{})
	if err := tbl.Load(); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Error loading professor table")
		return nil, err
	}
	return &ProfessorRepository{table: tbl}, nil
}

// CreateProfessor adds a new professor key with its records.
func (r *ProfessorRepository) CreateProfessor(ctx context.Context, id string, records []models.ProfessorRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.table.Has(id) {
		return apperrors.NewAlreadyExistsError(fmt.Sprintf("professor %q already exists", id))
	}
	if err := r.table.Insert(id, records...); err != nil {
		logger.Error().Err(err).Str("professorID", id).Msg("Error creating professor")
		return err
	}
	return nil
}

// UpdateProfessor applies patch to a professor. Name and rank overrides
// reach every record; a non-empty course list replaces the records, each new
// one carrying the resulting name and rank.
func (r *ProfessorRepository) UpdateProfessor(ctx context.Context, id string, patch models.ProfessorPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := r.table.Get(id)
	if !ok {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("professor %q not found", id))
	}

	name, rank := records[0].Name, records[0].Rank
	if patch.Name != nil {
		name = *patch.Name
	}
	if patch.Rank != nil {
		rank = *patch.Rank
	}

	var err error
	if len(patch.Courses) > 0 {
		replacement := make([]models.ProfessorRecord, 0, len(patch.Courses))
		for _, courseID := range patch.Courses {
			replacement = append(replacement, models.ProfessorRecord{Name: name, Rank: rank, CourseID: courseID})
		}
		err = r.table.Replace(id, replacement...)
	} else {
		err = r.table.UpdateAll(id, func(rec *models.ProfessorRecord) {
			if patch.Name != nil {
				rec.Name = *patch.Name
			}
			if patch.Rank != nil {
				rec.Rank = *patch.Rank
			}
		})
	}
	if err != nil {
		logger.Error().Err(err).Str("professorID", id).Msg("Error updating professor")
		return err
	}
	return nil
}

// DeleteProfessor removes a professor and all of their records.
func (r *ProfessorRepository) DeleteProfessor(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.table.Has(id) {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("professor %q not found", id))
	}
	if err := r.table.Delete(id); err != nil {
		logger.Error().Err(err).Str("professorID", id).Msg("Error deleting professor")
		return err
	}
	return nil
}

// GetProfessor returns a copy of a professor's records.
func (r *ProfessorRepository) GetProfessor(ctx context.Context, id string) (*models.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.table.Get(id)
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("professor %q not found", id))
	}
	return &models.Professor{ID: id, Records: records}, nil
}

// GetAllProfessors returns every professor in ledger order.
func (r *ProfessorRepository) GetAllProfessors(ctx context.Context) []models.Professor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := r.table.Snapshot()
	professors := make([]models.Professor, 0, len(snapshot))
	for _, entry := range snapshot {
		professors = append(professors, models.Professor{ID: entry.Key, Records: entry.Records})
	}
	return professors
}

// FindByCourse returns the professors with at least one record for courseID,
// each with only the matching records.
func (r *ProfessorRepository) FindByCourse(ctx context.Context, courseID string) []models.Professor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var professors []models.Professor
	for _, entry := range r.table.Snapshot() {
		var matching []models.ProfessorRecord
		for _, rec := range entry.Records {
			if rec.CourseID == courseID {
				matching = append(matching, rec)
			}
		}
		if len(matching) > 0 {
			professors = append(professors, models.Professor{ID: entry.Key, Records: matching})
		}
	}
	return professors
}

// HasProfessor reports whether id is an exact key in the ledger.
func (r *ProfessorRepository) HasProfessor(ctx context.Context, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.table.Has(id)
}

// Reload rereads the professor table, discarding in-memory state.
func (r *ProfessorRepository) Reload(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Load()
}

// Persist rewrites the professor table from memory.
func (r *ProfessorRepository) Persist(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Persist()
}

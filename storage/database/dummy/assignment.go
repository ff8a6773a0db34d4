package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/iterhub/eduhub/core/assignment"
)

type assignmentRepository struct {
	db *assignmentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) query() []assignment.Assignment {
	assignments := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		assignments = append(assignments, *a)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].DueDate.Before(assignments[j].DueDate)
	})
	return assignments
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	a.ID = uuid.New().String()
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id string) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) QueryStudentAssignments(_ context.Context, studentID string) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var assignments []assignment.Assignment
	for _, a := range repo.query() {
		if a.StudentID == studentID {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (repo *assignmentRepository) FilterAssignments(_ context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var assignments []assignment.Assignment
	for _, a := range repo.query() {
		if filter.StudentID != "" && a.StudentID != filter.StudentID {
			continue
		}
		if filter.Subject != "" && a.Subject != filter.Subject {
			continue
		}
		if filter.IsSubmitted != nil && a.IsSubmitted != *filter.IsSubmitted {
			continue
		}
		if !filter.DueAfter.IsZero() && !a.DueDate.After(filter.DueAfter) {
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (repo *assignmentRepository) SetAssignmentSubmitted(_ context.Context, id string, submitted bool) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	a, ok := repo.db.table[id]
	if !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	a.IsSubmitted = submitted
	a.UpdatedAt = time.Now().UTC()
	return *a, nil
}

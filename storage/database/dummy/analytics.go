package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/iterhub/eduhub/core/analytics"
)

type analyticsRepository struct {
	db *analyticsTable
}

var _ analytics.Repository = (*analyticsRepository)(nil) // interface compliance check

func NewAnalyticsRepository(db *DB) *analyticsRepository {
	return &analyticsRepository{db: db.analytics}
}

func (repo *analyticsRepository) QueryStudentMarks(_ context.Context, studentID string) ([]analytics.Mark, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]analytics.Mark(nil), repo.db.marks[studentID]...), nil
}

func (repo *analyticsRepository) QueryStudentAttendance(_ context.Context, studentID string) ([]analytics.AttendanceSummary, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]analytics.AttendanceSummary(nil), repo.db.attendance[studentID]...), nil
}

// AddMark seeds a mark; test helper.
func (repo *analyticsRepository) AddMark(m analytics.Mark) analytics.Mark {
	repo.db.Lock()
	defer repo.db.Unlock()

	m.ID = uuid.New().String()
	repo.db.marks[m.StudentID] = append(repo.db.marks[m.StudentID], m)
	return m
}

// SetAttendance seeds an attendance summary; test helper.
func (repo *analyticsRepository) SetAttendance(studentID string, a analytics.AttendanceSummary) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.attendance[studentID] = append(repo.db.attendance[studentID], a)
}

package dummydb

import (
	"context"

	"github.com/iterhub/eduhub/core/schedule"
)

type preferencesRepository struct {
	db *preferencesTable
}

var _ schedule.PreferencesRepository = (*preferencesRepository)(nil) // interface compliance check

func NewPreferencesRepository(db *DB) schedule.PreferencesRepository {
	return &preferencesRepository{db: db.preferences}
}

func (repo *preferencesRepository) GetStudentPreferences(_ context.Context, studentID string) (schedule.Preferences, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if prefs, ok := repo.db.table[studentID]; ok {
		return *prefs, nil
	}
	return schedule.Preferences{}, schedule.ErrPreferencesNotFound
}

func (repo *preferencesRepository) UpsertStudentPreferences(_ context.Context, studentID string, prefs schedule.Preferences) (schedule.Preferences, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[studentID] = &prefs
	return prefs, nil
}

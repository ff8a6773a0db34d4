package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core/schedule"
)

type preferencesRepository struct {
	db *sqlx.DB
}

var _ schedule.PreferencesRepository = (*preferencesRepository)(nil) // interface compliance check

func NewPreferencesRepository(db *sqlx.DB) *preferencesRepository {
	return &preferencesRepository{db: db}
}

type preferencesRow struct {
	StudentID          string    `db:"student_id"`
	StudyHoursPerDay   float64   `db:"study_hours_per_day"`
	WeekendHours       float64   `db:"weekend_hours"`
	SessionDuration    int       `db:"session_duration"`
	BreakDuration      int       `db:"break_duration"`
	PreferredStartTime string    `db:"preferred_start_time"`
	PreferredEndTime   string    `db:"preferred_end_time"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (repo preferencesRepository) fromRow(row preferencesRow) schedule.Preferences {
	return schedule.Preferences{
		StudyHoursPerDay:   row.StudyHoursPerDay,
		WeekendHours:       row.WeekendHours,
		SessionDuration:    row.SessionDuration,
		BreakDuration:      row.BreakDuration,
		PreferredStartTime: row.PreferredStartTime,
		PreferredEndTime:   row.PreferredEndTime,
	}
}

func (repo preferencesRepository) GetStudentPreferences(ctx context.Context, studentID string) (schedule.Preferences, error) {
	var row preferencesRow
	query := `SELECT student_id, study_hours_per_day, weekend_hours, session_duration, break_duration,
		preferred_start_time, preferred_end_time, updated_at
		FROM study_preferences WHERE student_id = $1`
	if err := repo.db.GetContext(ctx, &row, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return schedule.Preferences{}, schedule.ErrPreferencesNotFound
		}
		return schedule.Preferences{}, errors.Wrap(err, "getting preferences")
	}
	return repo.fromRow(row), nil
}

func (repo preferencesRepository) UpsertStudentPreferences(ctx context.Context, studentID string, prefs schedule.Preferences) (schedule.Preferences, error) {
	row := preferencesRow{
		StudentID:          studentID,
		StudyHoursPerDay:   prefs.StudyHoursPerDay,
		WeekendHours:       prefs.WeekendHours,
		SessionDuration:    prefs.SessionDuration,
		BreakDuration:      prefs.BreakDuration,
		PreferredStartTime: prefs.PreferredStartTime,
		PreferredEndTime:   prefs.PreferredEndTime,
		UpdatedAt:          time.Now().UTC(),
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO study_preferences (student_id, study_hours_per_day, weekend_hours, session_duration,
			break_duration, preferred_start_time, preferred_end_time, updated_at)
		VALUES (:student_id, :study_hours_per_day, :weekend_hours, :session_duration,
			:break_duration, :preferred_start_time, :preferred_end_time, :updated_at)
		ON CONFLICT (student_id) DO UPDATE SET
			study_hours_per_day = EXCLUDED.study_hours_per_day,
			weekend_hours = EXCLUDED.weekend_hours,
			session_duration = EXCLUDED.session_duration,
			break_duration = EXCLUDED.break_duration,
			preferred_start_time = EXCLUDED.preferred_start_time,
			preferred_end_time = EXCLUDED.preferred_end_time,
			updated_at = EXCLUDED.updated_at`,
		row,
	)
	if err != nil {
		return schedule.Preferences{}, errors.Wrap(err, "upserting preferences")
	}
	return repo.fromRow(row), nil
}

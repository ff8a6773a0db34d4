package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iterhub/eduhub/core/analytics"
)

type analyticsRepository struct {
	db *sqlx.DB
}

var _ analytics.Repository = (*analyticsRepository)(nil) // interface compliance check

func NewAnalyticsRepository(db *sqlx.DB) *analyticsRepository {
	return &analyticsRepository{db: db}
}

type markRow struct {
	ID         string    `db:"id"`
	StudentID  string    `db:"student_id"`
	Subject    string    `db:"subject"`
	ExamType   string    `db:"exam_type"`
	Score      float64   `db:"score"`
	MaxScore   float64   `db:"max_score"`
	Credits    int       `db:"credits"`
	RecordedAt null.Time `db:"recorded_at"`
}

type attendanceRow struct {
	Subject  string `db:"subject"`
	Attended int    `db:"attended"`
	Held     int    `db:"held"`
}

func (repo analyticsRepository) QueryStudentMarks(ctx context.Context, studentID string) ([]analytics.Mark, error) {
	var rows []markRow
	query := `SELECT id, student_id, subject, exam_type, score, max_score, credits, recorded_at
		FROM mark WHERE student_id = $1 ORDER BY recorded_at ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying marks")
	}

	marks := make([]analytics.Mark, 0, len(rows))
	for _, row := range rows {
		marks = append(marks, analytics.Mark{
			ID:         row.ID,
			StudentID:  row.StudentID,
			Subject:    row.Subject,
			ExamType:   row.ExamType,
			Score:      row.Score,
			MaxScore:   row.MaxScore,
			Credits:    row.Credits,
			RecordedAt: row.RecordedAt.Time,
		})
	}
	return marks, nil
}

func (repo analyticsRepository) QueryStudentAttendance(ctx context.Context, studentID string) ([]analytics.AttendanceSummary, error) {
	var rows []attendanceRow
	query := `SELECT subject, attended, held FROM attendance WHERE student_id = $1 ORDER BY subject ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying attendance")
	}

	summaries := make([]analytics.AttendanceSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, analytics.AttendanceSummary{
			Subject:  row.Subject,
			Attended: row.Attended,
			Held:     row.Held,
		})
	}
	return summaries, nil
}

package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/iterhub/eduhub/core/assignment"
)

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

type assignmentRow struct {
	ID          string    `db:"id"`
	StudentID   string    `db:"student_id"`
	Title       string    `db:"title"`
	Subject     string    `db:"subject"`
	Type        string    `db:"type"`
	DueDate     null.Time `db:"due_date"`
	IsSubmitted bool      `db:"is_submitted"`
	CreatedAt   null.Time `db:"created_at"`
	UpdatedAt   null.Time `db:"updated_at"`
}

func (repo assignmentRepository) toRow(a assignment.Assignment) assignmentRow {
	return assignmentRow{
		ID:          a.ID,
		StudentID:   a.StudentID,
		Title:       a.Title,
		Subject:     a.Subject,
		Type:        a.Type,
		DueDate:     null.NewTime(a.DueDate.UTC(), !a.DueDate.IsZero()),
		IsSubmitted: a.IsSubmitted,
		CreatedAt:   null.NewTime(a.CreatedAt.UTC(), !a.CreatedAt.IsZero()),
		UpdatedAt:   null.NewTime(a.UpdatedAt.UTC(), !a.UpdatedAt.IsZero()),
	}
}

func (repo assignmentRepository) fromRow(row assignmentRow) assignment.Assignment {
	return assignment.Assignment{
		ID:          row.ID,
		StudentID:   row.StudentID,
		Title:       row.Title,
		Subject:     row.Subject,
		Type:        row.Type,
		DueDate:     row.DueDate.Time,
		IsSubmitted: row.IsSubmitted,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

func (repo assignmentRepository) fromRows(rows []assignmentRow) []assignment.Assignment {
	assignments := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, repo.fromRow(row))
	}
	return assignments
}

func (repo assignmentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return assignment.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

const assignmentColumns = `id, student_id, title, subject, type, due_date, is_submitted, created_at, updated_at`

func (repo assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	a.ID = uuid.New().String()
	row := repo.toRow(a)
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO assignment (`+assignmentColumns+`)
		VALUES (:id, :student_id, :title, :subject, :type, :due_date, :is_submitted, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return repo.fromRow(row), nil
}

func (repo assignmentRepository) GetAssignmentByID(ctx context.Context, id string) (assignment.Assignment, error) {
	var row assignmentRow
	query := `SELECT ` + assignmentColumns + ` FROM assignment WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, query, id); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "getting assignment")
	}
	return repo.fromRow(row), nil
}

func (repo assignmentRepository) QueryStudentAssignments(ctx context.Context, studentID string) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	query := `SELECT ` + assignmentColumns + ` FROM assignment WHERE student_id = $1 ORDER BY due_date ASC`
	if err := repo.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return repo.fromRows(rows), nil
}

func (repo assignmentRepository) FilterAssignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	conds := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conds = append(conds, fmt.Sprintf("student_id = $%d", len(args)))
	}
	if filter.Subject != "" {
		args = append(args, filter.Subject)
		conds = append(conds, fmt.Sprintf("subject = $%d", len(args)))
	}
	if filter.IsSubmitted != nil {
		args = append(args, *filter.IsSubmitted)
		conds = append(conds, fmt.Sprintf("is_submitted = $%d", len(args)))
	}
	if !filter.DueAfter.IsZero() {
		args = append(args, filter.DueAfter.UTC())
		conds = append(conds, fmt.Sprintf("due_date > $%d", len(args)))
	}

	query := `SELECT ` + assignmentColumns + ` FROM assignment`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY due_date ASC`

	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering assignments")
	}
	return repo.fromRows(rows), nil
}

func (repo assignmentRepository) SetAssignmentSubmitted(ctx context.Context, id string, submitted bool) (assignment.Assignment, error) {
	var row assignmentRow
	query := `UPDATE assignment SET is_submitted = $1, updated_at = NOW() AT TIME ZONE 'utc' WHERE id = $2 RETURNING ` + assignmentColumns
	if err := repo.db.GetContext(ctx, &row, query, submitted, id); err != nil {
		return assignment.Assignment{}, repo.trapNoRowsErr(err, "updating assignment")
	}
	return repo.fromRow(row), nil
}

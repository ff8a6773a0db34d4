package assignment

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core"
)

var ErrNotFound = errors.New("assignment not found")

type (
	// QueryFilter applies AND operation on available fields.
	QueryFilter struct {
		StudentID   string
		Subject     string
		IsSubmitted *bool
		DueAfter    time.Time
	}

	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		QueryStudentAssignments(ctx context.Context, studentID string) ([]Assignment, error)
		FilterAssignments(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		SetAssignmentSubmitted(ctx context.Context, id string, submitted bool) (Assignment, error)
	}

	ServiceInterface interface {
		Create(ctx context.Context, na NewAssignment) (Assignment, error)
		GetByID(ctx context.Context, id string) (Assignment, error)
		QueryForStudent(ctx context.Context, studentID string) ([]Assignment, error)
		Pending(ctx context.Context, studentID string, now time.Time) ([]Assignment, error)
		SetSubmitted(ctx context.Context, id string, submitted bool) (Assignment, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	now := time.Now().UTC()
	a := Assignment{
		StudentID: na.StudentID,
		Title:     core.CleanString(na.Title),
		Subject:   core.CleanString(na.Subject),
		Type:      core.CleanString(na.Type, true /* lower */),
		DueDate:   na.DueDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateAssignment(ctx, a)
}

func (svc *service) GetByID(ctx context.Context, id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *service) QueryForStudent(ctx context.Context, studentID string) ([]Assignment, error) {
	return svc.repo.QueryStudentAssignments(ctx, studentID)
}

// Pending returns the student's unsubmitted assignments due after `now`,
// sorted ascending by due date. This is the study planner's work feed.
func (svc *service) Pending(ctx context.Context, studentID string, now time.Time) ([]Assignment, error) {
	submitted := false
	assignments, err := svc.repo.FilterAssignments(ctx, QueryFilter{
		StudentID:   studentID,
		IsSubmitted: &submitted,
		DueAfter:    now.UTC(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "filtering pending assignments")
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].DueDate.Before(assignments[j].DueDate)
	})
	return assignments, nil
}

func (svc *service) SetSubmitted(ctx context.Context, id string, submitted bool) (Assignment, error) {
	return svc.repo.SetAssignmentSubmitted(ctx, id, submitted)
}

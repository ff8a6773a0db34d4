package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core"
	"github.com/iterhub/eduhub/core/assignment"
)

// risk classifier weights; marks and attendance dominate, submission
// discipline contributes the rest.
const (
	riskMarksWeight      = 0.4
	riskAttendanceWeight = 0.4
	riskSubmissionWeight = 0.2

	riskMediumFloor = 0.35
	riskHighFloor   = 0.65
)

type (
	Repository interface {
		QueryStudentMarks(ctx context.Context, studentID string) ([]Mark, error)
		QueryStudentAttendance(ctx context.Context, studentID string) ([]AttendanceSummary, error)
	}

	ServiceInterface interface {
		StudentPerformance(ctx context.Context, studentID string) (Performance, error)
		WeakSubjects(ctx context.Context, studentID string) ([]WeakSubject, error)
	}

	service struct {
		repo    Repository
		asgSvc  assignment.ServiceInterface
		conf    *core.Config
		NowFunc func() time.Time // mockable
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository, asgSvc assignment.ServiceInterface, conf *core.Config) *service {
	return &service{
		repo:    repo,
		asgSvc:  asgSvc,
		conf:    conf,
		NowFunc: time.Now,
	}
}

// StudentPerformance aggregates a student's marks, attendance and submission
// history into per-subject averages, weak subjects, a GPA and a risk band.
func (svc *service) StudentPerformance(ctx context.Context, studentID string) (Performance, error) {
	marks, err := svc.repo.QueryStudentMarks(ctx, studentID)
	if err != nil {
		return Performance{}, errors.Wrap(err, "querying marks")
	}
	attendance, err := svc.repo.QueryStudentAttendance(ctx, studentID)
	if err != nil {
		return Performance{}, errors.Wrap(err, "querying attendance")
	}
	assignments, err := svc.asgSvc.QueryForStudent(ctx, studentID)
	if err != nil {
		return Performance{}, errors.Wrap(err, "querying assignments")
	}

	subjects := subjectAverages(marks, svc.conf.Schedule.WeakSubjectThreshold)

	perf := Performance{
		StudentID:    studentID,
		GPA:          GPA(marks),
		Subjects:     subjects,
		WeakSubjects: make([]WeakSubject, 0, len(subjects)),
	}
	for _, sp := range subjects {
		if sp.Weak {
			perf.WeakSubjects = append(perf.WeakSubjects, WeakSubject{Subject: sp.Subject, Average: sp.Average})
		}
	}

	perf.RiskScore = riskScore(marks, attendance, assignments, svc.NowFunc().UTC())
	perf.RiskLevel = riskLevel(perf.RiskScore)
	return perf, nil
}

// WeakSubjects is the study planner's view of StudentPerformance.
func (svc *service) WeakSubjects(ctx context.Context, studentID string) ([]WeakSubject, error) {
	perf, err := svc.StudentPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return perf.WeakSubjects, nil
}

// subjectAverages computes the per-subject mean percentage, ordered by
// subject name for stable output.
func subjectAverages(marks []Mark, weakThreshold float64) []SubjectPerformance {
	totals := make(map[string]struct {
		sum   float64
		count int
	})
	for _, m := range marks {
		t := totals[m.Subject]
		t.sum += m.Percent()
		t.count++
		totals[m.Subject] = t
	}

	subjects := make([]SubjectPerformance, 0, len(totals))
	for subject, t := range totals {
		avg := t.sum / float64(t.count)
		subjects = append(subjects, SubjectPerformance{
			Subject: subject,
			Average: avg,
			Weak:    avg < weakThreshold,
		})
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Subject < subjects[j].Subject })
	return subjects
}

// GPA computes the credit-weighted grade point average on the institute's
// 10-point scale.
func GPA(marks []Mark) float64 {
	var points, credits float64
	for _, m := range marks {
		c := float64(m.Credits)
		if c <= 0 {
			c = 1
		}
		points += gradePoint(m.Percent()) * c
		credits += c
	}
	if credits == 0 {
		return 0
	}
	return points / credits
}

func gradePoint(percent float64) float64 {
	switch {
	case percent >= 90:
		return 10
	case percent >= 80:
		return 9
	case percent >= 70:
		return 8
	case percent >= 60:
		return 7
	case percent >= 50:
		return 6
	case percent >= 45:
		return 5
	case percent >= 40:
		return 4
	default:
		return 0
	}
}

// riskScore is a weighted sum of marks, attendance and submission gaps;
// 0 is no risk, 1 is maximal risk.
func riskScore(marks []Mark, attendance []AttendanceSummary, assignments []assignment.Assignment, now time.Time) float64 {
	var marksRatio float64 = 1
	if len(marks) > 0 {
		var sum float64
		for _, m := range marks {
			sum += m.Percent() / 100
		}
		marksRatio = sum / float64(len(marks))
	}

	var attRatio float64 = 1
	if len(attendance) > 0 {
		var sum float64
		for _, a := range attendance {
			sum += a.Ratio()
		}
		attRatio = sum / float64(len(attendance))
	}

	// submitted / (submitted + overdue-unsubmitted); future work is not held
	// against the student
	var subRatio float64 = 1
	var submitted, overdue int
	for _, a := range assignments {
		if a.IsSubmitted {
			submitted++
		} else if !a.DueDate.After(now) {
			overdue++
		}
	}
	if submitted+overdue > 0 {
		subRatio = float64(submitted) / float64(submitted+overdue)
	}

	return riskMarksWeight*(1-marksRatio) +
		riskAttendanceWeight*(1-attRatio) +
		riskSubmissionWeight*(1-subRatio)
}

func riskLevel(score float64) string {
	switch {
	case score >= riskHighFloor:
		return RiskHigh
	case score >= riskMediumFloor:
		return RiskMedium
	default:
		return RiskLow
	}
}

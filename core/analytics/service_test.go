package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterhub/eduhub/core"
	"github.com/iterhub/eduhub/core/assignment"
)

var now = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

type repoStub struct {
	marks      []Mark
	attendance []AttendanceSummary
	err        error
}

var _ Repository = (*repoStub)(nil)

func (r *repoStub) QueryStudentMarks(context.Context, string) ([]Mark, error) {
	return r.marks, r.err
}

func (r *repoStub) QueryStudentAttendance(context.Context, string) ([]AttendanceSummary, error) {
	return r.attendance, r.err
}

type asgSvcStub struct {
	assignments []assignment.Assignment
}

var _ assignment.ServiceInterface = (*asgSvcStub)(nil)

func (s *asgSvcStub) Create(context.Context, assignment.NewAssignment) (assignment.Assignment, error) {
	panic("not used")
}
func (s *asgSvcStub) GetByID(context.Context, string) (assignment.Assignment, error) {
	panic("not used")
}
func (s *asgSvcStub) QueryForStudent(context.Context, string) ([]assignment.Assignment, error) {
	return s.assignments, nil
}
func (s *asgSvcStub) Pending(context.Context, string, time.Time) ([]assignment.Assignment, error) {
	return s.assignments, nil
}
func (s *asgSvcStub) SetSubmitted(context.Context, string, bool) (assignment.Assignment, error) {
	panic("not used")
}

func newTestService(repo Repository, asgSvc assignment.ServiceInterface) *service {
	conf := &core.Config{Schedule: core.ScheduleConfig{WeakSubjectThreshold: 60}}
	svc := NewService(repo, asgSvc, conf)
	svc.NowFunc = func() time.Time { return now }
	return svc
}

func TestGPA(t *testing.T) {
	tests := []struct {
		name  string
		marks []Mark
		want  float64
	}{
		{name: "no marks", want: 0},
		{
			name:  "single subject",
			marks: []Mark{{Subject: "Math", Score: 92, MaxScore: 100, Credits: 4}},
			want:  10,
		},
		{
			name: "credit weighted",
			marks: []Mark{
				{Subject: "Math", Score: 92, MaxScore: 100, Credits: 1}, // 10 points
				{Subject: "OS", Score: 55, MaxScore: 100, Credits: 3},   // 6 points
			},
			want: (10 + 3*6) / 4.0,
		},
		{
			name:  "zero credits default to 1",
			marks: []Mark{{Subject: "Math", Score: 75, MaxScore: 100}},
			want:  8,
		},
		{
			name:  "failing grade",
			marks: []Mark{{Subject: "Math", Score: 20, MaxScore: 100, Credits: 4}},
			want:  0,
		},
		{
			name:  "non-100 max score",
			marks: []Mark{{Subject: "Math", Score: 45, MaxScore: 50, Credits: 2}}, // 90%
			want:  10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GPA(tt.marks), 0.001)
		})
	}
}

func Test_service_StudentPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("weak subjects sit below the threshold", func(t *testing.T) {
		repo := &repoStub{
			marks: []Mark{
				{Subject: "Math", Score: 40, MaxScore: 100, Credits: 4},
				{Subject: "Math", Score: 60, MaxScore: 100, Credits: 4}, // Math avg 50
				{Subject: "OS", Score: 80, MaxScore: 100, Credits: 4},
			},
		}
		svc := newTestService(repo, &asgSvcStub{})

		perf, err := svc.StudentPerformance(ctx, "student-1")
		require.NoError(t, err)

		require.Len(t, perf.Subjects, 2)
		// ordered by subject name
		assert.Equal(t, "Math", perf.Subjects[0].Subject)
		assert.InDelta(t, 50, perf.Subjects[0].Average, 0.001)
		assert.True(t, perf.Subjects[0].Weak)
		assert.Equal(t, "OS", perf.Subjects[1].Subject)
		assert.False(t, perf.Subjects[1].Weak)

		require.Len(t, perf.WeakSubjects, 1)
		assert.Equal(t, "Math", perf.WeakSubjects[0].Subject)
	})

	t.Run("clean record is low risk", func(t *testing.T) {
		repo := &repoStub{
			marks:      []Mark{{Subject: "Math", Score: 90, MaxScore: 100, Credits: 4}},
			attendance: []AttendanceSummary{{Subject: "Math", Attended: 19, Held: 20}},
		}
		svc := newTestService(repo, &asgSvcStub{assignments: []assignment.Assignment{
			{Subject: "Math", IsSubmitted: true, DueDate: now.AddDate(0, 0, -3)},
		}})

		perf, err := svc.StudentPerformance(ctx, "student-1")
		require.NoError(t, err)
		assert.Equal(t, RiskLow, perf.RiskLevel)
		assert.Less(t, perf.RiskScore, riskMediumFloor)
	})

	t.Run("poor record is high risk", func(t *testing.T) {
		repo := &repoStub{
			marks:      []Mark{{Subject: "Math", Score: 20, MaxScore: 100, Credits: 4}},
			attendance: []AttendanceSummary{{Subject: "Math", Attended: 4, Held: 20}},
		}
		svc := newTestService(repo, &asgSvcStub{assignments: []assignment.Assignment{
			{Subject: "Math", DueDate: now.AddDate(0, 0, -3)}, // overdue, unsubmitted
		}})

		perf, err := svc.StudentPerformance(ctx, "student-1")
		require.NoError(t, err)
		assert.Equal(t, RiskHigh, perf.RiskLevel)
		assert.GreaterOrEqual(t, perf.RiskScore, riskHighFloor)
	})

	t.Run("future work does not count against the student", func(t *testing.T) {
		repo := &repoStub{marks: []Mark{{Subject: "Math", Score: 90, MaxScore: 100, Credits: 4}}}
		svc := newTestService(repo, &asgSvcStub{assignments: []assignment.Assignment{
			{Subject: "Math", DueDate: now.AddDate(0, 0, 5)}, // not due yet
		}})

		perf, err := svc.StudentPerformance(ctx, "student-1")
		require.NoError(t, err)
		assert.Equal(t, RiskLow, perf.RiskLevel)
	})

	t.Run("no data at all is low risk", func(t *testing.T) {
		svc := newTestService(&repoStub{}, &asgSvcStub{})

		perf, err := svc.StudentPerformance(ctx, "student-1")
		require.NoError(t, err)
		assert.Zero(t, perf.GPA)
		assert.Equal(t, RiskLow, perf.RiskLevel)
		assert.Empty(t, perf.WeakSubjects)
	})
}

func TestAttendanceSummary_Ratio(t *testing.T) {
	assert.Equal(t, 1.0, AttendanceSummary{}.Ratio()) // no classes held
	assert.InDelta(t, 0.9, AttendanceSummary{Attended: 18, Held: 20}.Ratio(), 0.001)
}

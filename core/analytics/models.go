package analytics

import "time"

// Risk levels
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Mark is a single graded result for a student in a subject.
type Mark struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	Subject    string    `json:"subject"`
	ExamType   string    `json:"exam_type"` // eg. "internal", "semester", "quiz"
	Score      float64   `json:"score"`
	MaxScore   float64   `json:"max_score"`
	Credits    int       `json:"credits"`
	RecordedAt time.Time `json:"recorded_at"` // UTC
}

// Percent returns the mark as a 0-100 percentage.
func (m Mark) Percent() float64 {
	if m.MaxScore <= 0 {
		return 0
	}
	return m.Score / m.MaxScore * 100
}

// AttendanceSummary is a per-subject attendance tally.
type AttendanceSummary struct {
	Subject  string `json:"subject"`
	Attended int    `json:"attended"`
	Held     int    `json:"held"`
}

// Ratio returns the attended fraction in [0,1]; a subject with no
// classes held counts as full attendance.
func (a AttendanceSummary) Ratio() float64 {
	if a.Held <= 0 {
		return 1
	}
	return float64(a.Attended) / float64(a.Held)
}

// SubjectPerformance is the per-subject average of a student's marks.
type SubjectPerformance struct {
	Subject string  `json:"subject"`
	Average float64 `json:"average"` // 0-100
	Weak    bool    `json:"weak"`
}

// WeakSubject flags a subject whose average sits below the weak threshold.
// The study planner uses it as a priority bonus and review filler.
type WeakSubject struct {
	Subject string  `json:"subject"`
	Average float64 `json:"metric"`
}

// Performance bundles everything the dashboards and the study planner
// consume about one student.
type Performance struct {
	StudentID    string               `json:"student_id"`
	GPA          float64              `json:"gpa"`
	RiskScore    float64              `json:"risk_score"` // 0-1, higher is worse
	RiskLevel    string               `json:"risk_level"`
	Subjects     []SubjectPerformance `json:"subjects"`
	WeakSubjects []WeakSubject        `json:"weakSubjects"`
}

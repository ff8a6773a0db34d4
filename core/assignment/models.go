package assignment

import (
	"time"
)

// Assignment types
const (
	TypeProject    = "project"
	TypeAssignment = "assignment"
	TypeLab        = "lab"
	TypeHomework   = "homework"
)

var AllTypes = []string{TypeProject, TypeAssignment, TypeLab, TypeHomework}

// estimatedHours maps an assignment type to the study effort it is
// expected to demand, in hours.
var estimatedHours = map[string]float64{
	TypeProject:    10,
	TypeAssignment: 5,
	TypeLab:        3,
	TypeHomework:   2,
}

const defaultEstimatedHours = 4

// EstimatedHours returns the expected study effort for an assignment type.
// Unknown types get a flat default.
func EstimatedHours(typ string) float64 {
	if h, ok := estimatedHours[typ]; ok {
		return h
	}
	return defaultEstimatedHours
}

// Assignment is a piece of work handed out to a student.
type Assignment struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Type        string    `json:"type"`
	DueDate     time.Time `json:"due_date"` // UTC
	IsSubmitted bool      `json:"isSubmitted"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// EstimatedHours returns the expected study effort for this assignment.
func (a Assignment) EstimatedHours() float64 {
	return EstimatedHours(a.Type)
}

// IsPending reports whether the assignment still needs study time as of now:
// not submitted and due in the future.
func (a Assignment) IsPending(now time.Time) bool {
	return !a.IsSubmitted && a.DueDate.After(now)
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	StudentID string    `json:"student_id" validate:"required"`
	Title     string    `json:"title" validate:"required"`
	Subject   string    `json:"subject" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=project assignment lab homework"`
	DueDate   time.Time `json:"due_date" validate:"required"`
}

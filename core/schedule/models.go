package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/iterhub/eduhub/core"
)

// Session types
const (
	SessionAssignment = "assignment"
	SessionReview     = "review"
)

// Session priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Preferences are a student's study-time settings. They used to live in the
// web client only; they are now persisted per student server-side.
type Preferences struct {
	StudyHoursPerDay   float64 `json:"studyHoursPerDay" validate:"required,gt=0,lte=16"`
	WeekendHours       float64 `json:"weekendHours" validate:"required,gt=0,lte=16"`
	SessionDuration    int     `json:"sessionDuration" validate:"required,min=15,max=180"` // minutes
	BreakDuration      int     `json:"breakDuration" validate:"min=0,max=60"`              // minutes
	PreferredStartTime string  `json:"preferredStartTime" validate:"required,hhmm"`
	PreferredEndTime   string  `json:"preferredEndTime" validate:"required,hhmm"`
}

// DefaultPreferences returns the planner defaults applied when a student
// has never saved their own.
func DefaultPreferences() Preferences {
	return Preferences{
		StudyHoursPerDay:   6,
		WeekendHours:       8,
		SessionDuration:    45,
		BreakDuration:      15,
		PreferredStartTime: "09:00",
		PreferredEndTime:   "22:00",
	}
}

// DayBudget returns the available study hours for the given date.
func (p Preferences) DayBudget(date time.Time) float64 {
	if core.IsWeekend(date) {
		return p.WeekendHours
	}
	return p.StudyHoursPerDay
}

// StartOfDay anchors PreferredStartTime on the given date (UTC).
// A malformed clock value falls back to the default start.
func (p Preferences) StartOfDay(date time.Time) time.Time {
	h, m := parseClock(p.PreferredStartTime, 9, 0)
	date = core.DateOf(date)
	return date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func parseClock(s string, defH, defM int) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return defH, defM
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return defH, defM
	}
	return h, m
}

// Session is a single contiguous block of scheduled study time for one
// subject. Sessions are derived values: created fresh on every plan
// generation and never mutated.
type Session struct {
	Subject   string    `json:"subject"`
	Title     string    `json:"title"`
	Type      string    `json:"type"` // assignment | review
	StartTime time.Time `json:"startTime"` // UTC
	EndTime   time.Time `json:"endTime"`   // UTC
	Duration  int       `json:"durationMinutes"`
	Priority  string    `json:"priority"` // high | medium | low
}

// DaySchedule is one day of the generated plan.
type DaySchedule struct {
	Date       time.Time `json:"date"` // UTC midnight
	DayName    string    `json:"dayName"`
	Sessions   []Session `json:"sessions"`
	TotalHours float64   `json:"totalHoursUsed"`
}

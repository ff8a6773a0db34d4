package schedule

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/iterhub/eduhub/core"
	"github.com/iterhub/eduhub/core/analytics"
	"github.com/iterhub/eduhub/core/assignment"
)

// Planner constants. The horizon is the fixed forward-looking window the
// plan covers; the caps keep any single assignment from eating a whole day.
const (
	HorizonDays = 14

	maxDailySubjectHours = 2.0
	minAllocationHours   = 0.5

	urgencyCeiling   = 10
	weakSubjectBonus = 5

	highPriorityFloor   = 10
	mediumPriorityFloor = 5
)

// workItem is a pending assignment annotated with its per-day demand.
type workItem struct {
	asg assignment.Assignment

	// hoursPerDay is the daily commitment needed to finish the estimated
	// effort by the day before the deadline. It is recomputed from the same
	// inputs for every horizon day rather than decremented as days pass:
	// a per-day demand estimate, not a remaining-work tracker.
	hoursPerDay float64
	weak        bool
}

// Generate produces a conflict-free, time-budgeted study plan covering
// HorizonDays consecutive days starting at `today`.
//
// It is pure and deterministic: identical inputs (including `today`)
// produce identical output. All times are UTC.
func Generate(assignments []assignment.Assignment, weakSubjects []analytics.WeakSubject, prefs Preferences, today time.Time) []DaySchedule {
	today = core.DateOf(today)

	weak := make(map[string]bool, len(weakSubjects))
	for _, ws := range weakSubjects {
		weak[strings.ToLower(ws.Subject)] = true
	}

	items := buildWorkItems(assignments, weak, today)

	days := make([]DaySchedule, 0, HorizonDays)
	for i := 0; i < HorizonDays; i++ {
		date := today.AddDate(0, 0, i)
		days = append(days, planDay(date, items, weakSubjects, prefs))
	}
	return days
}

func buildWorkItems(assignments []assignment.Assignment, weak map[string]bool, today time.Time) []workItem {
	pending := make([]assignment.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.IsPending(today) {
			pending = append(pending, a)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DueDate.Before(pending[j].DueDate)
	})

	items := make([]workItem, 0, len(pending))
	for _, a := range pending {
		daysUntilDue := daysUntil(today, a.DueDate)
		denom := daysUntilDue - 1
		if denom < 1 {
			denom = 1
		}
		items = append(items, workItem{
			asg:         a,
			hoursPerDay: math.Ceil(a.EstimatedHours() / float64(denom)),
			weak:        weak[strings.ToLower(a.Subject)],
		})
	}
	return items
}

// daysUntil returns the number of days from `from` until `due`, rounded up.
func daysUntil(from, due time.Time) int {
	return int(math.Ceil(due.Sub(from).Hours() / 24))
}

// priorityScore ranks an assignment's claim on a given day: closer
// deadlines score higher, weak subjects get a flat bonus.
func priorityScore(it workItem, date time.Time) int {
	daysLeft := daysUntil(date, it.asg.DueDate)
	urgency := urgencyCeiling - daysLeft
	if urgency < 0 {
		urgency = 0
	}
	score := urgency
	if it.weak {
		score += weakSubjectBonus
	}
	return score
}

func sessionPriority(score int) string {
	switch {
	case score >= highPriorityFloor:
		return PriorityHigh
	case score >= mediumPriorityFloor:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// planDay allocates the day's hour budget greedily across the ranked
// pending work, then fills leftover time with a weak-subject review.
func planDay(date time.Time, items []workItem, weakSubjects []analytics.WeakSubject, prefs Preferences) DaySchedule {
	day := DaySchedule{
		Date:     date,
		DayName:  date.Weekday().String(),
		Sessions: []Session{},
	}
	remaining := prefs.DayBudget(date)

	// rank today's candidates; assignments due on or before this day no
	// longer get study time. Stable sort keeps due-date order on ties.
	ranked := make([]workItem, 0, len(items))
	for _, it := range items {
		if daysUntil(date, it.asg.DueDate) > 0 {
			ranked = append(ranked, it)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return priorityScore(ranked[i], date) > priorityScore(ranked[j], date)
	})

	cursor := prefs.StartOfDay(date)
	sessionLen := time.Duration(prefs.SessionDuration) * time.Minute
	breakLen := time.Duration(prefs.BreakDuration) * time.Minute

	for _, it := range ranked {
		alloc := it.hoursPerDay
		if alloc > remaining {
			alloc = remaining
		}
		if alloc > maxDailySubjectHours {
			alloc = maxDailySubjectHours
		}
		if alloc < minAllocationHours {
			continue // not worth a session
		}

		priority := sessionPriority(priorityScore(it, date))
		numSessions := int(math.Ceil(alloc * 60 / float64(prefs.SessionDuration)))
		for s := 0; s < numSessions; s++ {
			day.Sessions = append(day.Sessions, Session{
				Subject:   it.asg.Subject,
				Title:     it.asg.Title,
				Type:      SessionAssignment,
				StartTime: cursor,
				EndTime:   cursor.Add(sessionLen),
				Duration:  prefs.SessionDuration,
				Priority:  priority,
			})
			cursor = cursor.Add(sessionLen + breakLen)
		}

		remaining -= alloc
		day.TotalHours += alloc
	}

	// leftover time goes to reviewing the first weak subject
	if remaining > 0 && len(weakSubjects) > 0 {
		reviewMins := float64(prefs.SessionDuration)
		if remaining*60 < reviewMins {
			reviewMins = remaining * 60
		}
		reviewLen := time.Duration(reviewMins) * time.Minute
		day.Sessions = append(day.Sessions, Session{
			Subject:   weakSubjects[0].Subject,
			Title:     "Review: " + weakSubjects[0].Subject,
			Type:      SessionReview,
			StartTime: cursor,
			EndTime:   cursor.Add(reviewLen),
			Duration:  int(reviewMins),
			Priority:  PriorityLow,
		})
		day.TotalHours += reviewMins / 60
	}

	return day
}

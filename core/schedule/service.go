package schedule

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/iterhub/eduhub/core"
	"github.com/iterhub/eduhub/core/analytics"
	"github.com/iterhub/eduhub/core/assignment"
	"github.com/iterhub/eduhub/core/user"
)

var ErrPreferencesNotFound = errors.New("study preferences not found")

type (
	PreferencesRepository interface {
		GetStudentPreferences(ctx context.Context, studentID string) (Preferences, error)
		UpsertStudentPreferences(ctx context.Context, studentID string, prefs Preferences) (Preferences, error)
	}

	ServiceInterface interface {
		GetPreferences(ctx context.Context, studentID string) (Preferences, error)
		SavePreferences(ctx context.Context, studentID string, prefs Preferences) (Preferences, error)
		GeneratePlan(ctx context.Context, studentID string, now time.Time) []DaySchedule
		ExportPlanICS(ctx context.Context, studentID string, now time.Time) []byte
		EmailWeeklyPlan(ctx context.Context, usr user.User, now time.Time) error
	}

	service struct {
		repo    PreferencesRepository
		asgSvc  assignment.ServiceInterface
		anlSvc  analytics.ServiceInterface
		mailSvc core.EmailService
		logger  core.Logger
		conf    *core.Config
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(
	repo PreferencesRepository,
	asgSvc assignment.ServiceInterface,
	anlSvc analytics.ServiceInterface,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *service {
	return &service{
		repo:    repo,
		asgSvc:  asgSvc,
		anlSvc:  anlSvc,
		mailSvc: mailSvc,
		logger:  logger,
		conf:    conf,
	}
}

// GetPreferences returns the student's saved preferences, falling back to
// the defaults when none were ever saved.
func (svc *service) GetPreferences(ctx context.Context, studentID string) (Preferences, error) {
	prefs, err := svc.repo.GetStudentPreferences(ctx, studentID)
	if err != nil {
		if errors.Cause(err) == ErrPreferencesNotFound {
			return DefaultPreferences(), nil
		}
		return Preferences{}, errors.Wrap(err, "getting preferences")
	}
	return prefs, nil
}

func (svc *service) SavePreferences(ctx context.Context, studentID string, prefs Preferences) (Preferences, error) {
	return svc.repo.UpsertStudentPreferences(ctx, studentID, prefs)
}

// GeneratePlan builds the student's study plan. A failed assignments or
// analytics fetch degrades that input to empty rather than failing the
// plan: the schedule then simply shows no sessions for the missing data.
func (svc *service) GeneratePlan(ctx context.Context, studentID string, now time.Time) []DaySchedule {
	prefs, err := svc.GetPreferences(ctx, studentID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("plan: loading preferences for %s: %v", studentID, err), err)
		prefs = DefaultPreferences()
	}

	pending, err := svc.asgSvc.Pending(ctx, studentID, now)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("plan: loading assignments for %s: %v", studentID, err), err)
		pending = nil
	}

	weak, err := svc.anlSvc.WeakSubjects(ctx, studentID)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("plan: loading weak subjects for %s: %v", studentID, err), err)
		weak = nil
	}

	return Generate(pending, weak, prefs, now)
}

// ExportPlanICS generates the plan and renders it as an iCalendar document.
func (svc *service) ExportPlanICS(ctx context.Context, studentID string, now time.Time) []byte {
	return ExportICS(svc.GeneratePlan(ctx, studentID, now))
}

// EmailWeeklyPlan sends the first week of the plan as a text digest with
// the full horizon attached as an .ics file.
func (svc *service) EmailWeeklyPlan(ctx context.Context, usr user.User, now time.Time) error {
	if usr.Email == "" {
		return errors.New("user has no email address")
	}

	plan := svc.GeneratePlan(ctx, usr.ID, now)

	msg := &core.EmailMessage{
		To:          []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:     "Your study plan for the week",
		TextContent: weeklyDigest(plan),
	}
	if err := msg.Attach(bytes.NewReader(ExportICS(plan)), "study-plan.ics", "text/calendar"); err != nil {
		return errors.Wrap(err, "attaching calendar")
	}

	svc.mailSvc.SendMessages(msg)
	return nil
}

// weeklyDigest renders the first 7 days of the plan as plain text.
func weeklyDigest(plan []DaySchedule) string {
	days := plan
	if len(days) > 7 {
		days = days[:7]
	}

	var buf bytes.Buffer
	buf.WriteString("Here is your study plan for the coming week.\n")
	for _, day := range days {
		fmt.Fprintf(&buf, "\n%s %s (%.1fh)\n", day.DayName, day.Date.Format("Jan 2"), day.TotalHours)
		if len(day.Sessions) == 0 {
			buf.WriteString("  no sessions scheduled\n")
			continue
		}
		for _, s := range day.Sessions {
			fmt.Fprintf(&buf, "  %s - %s  %s (%s)\n",
				s.StartTime.Format("15:04"), s.EndTime.Format("15:04"), s.Subject, s.Type)
		}
	}
	return buf.String()
}

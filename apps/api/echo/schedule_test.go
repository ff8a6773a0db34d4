package echoapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterhub/eduhub/core/assignment"
	"github.com/iterhub/eduhub/core/schedule"
	"github.com/iterhub/eduhub/core/user"
	emailsvc "github.com/iterhub/eduhub/services/email"
)

func seedAssignment(t *testing.T, env *testEnv, studentID, title, subject, typ string, due time.Time) assignment.Assignment {
	t.Helper()

	asg, err := env.asgRepo.CreateAssignment(context.Background(), assignment.Assignment{
		StudentID: studentID,
		Title:     title,
		Subject:   subject,
		Type:      typ,
		DueDate:   due,
	})
	if err != nil {
		t.Fatalf("CreateAssignment(): %v", err)
	}
	return asg
}

func Test_scheduleApi_preferences(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	token := env.getToken(t, student)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/schedule/preferences")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("defaults when never saved", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/schedule/preferences", token)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, schedule.DefaultPreferences())}, rec)
	})

	t.Run("save and read back", func(t *testing.T) {
		prefs := schedule.Preferences{
			StudyHoursPerDay:   4,
			WeekendHours:       6,
			SessionDuration:    60,
			BreakDuration:      10,
			PreferredStartTime: "08:30",
			PreferredEndTime:   "21:00",
		}
		req, rec := newAuthRequest(http.MethodPut, "/v1/schedule/preferences", token, marchallObj(t, prefs))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, prefs)}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/v1/schedule/preferences", token)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, prefs)}, rec)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		tests := []httpTest{
			{
				name: "zero hours", body: marchallObj(t, schedule.Preferences{
					WeekendHours: 8, SessionDuration: 45, PreferredStartTime: "09:00", PreferredEndTime: "22:00",
				}),
			},
			{
				name: "bad clock", body: marchallObj(t, schedule.Preferences{
					StudyHoursPerDay: 6, WeekendHours: 8, SessionDuration: 45,
					PreferredStartTime: "9am", PreferredEndTime: "22:00",
				}),
			},
			{
				name: "session too short", body: marchallObj(t, schedule.Preferences{
					StudyHoursPerDay: 6, WeekendHours: 8, SessionDuration: 5,
					PreferredStartTime: "09:00", PreferredEndTime: "22:00",
				}),
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newAuthRequest(http.MethodPut, "/v1/schedule/preferences", token, tt.body)
				env.app.ServeHTTP(rec, req)
				assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			})
		}
	})
}

func Test_scheduleApi_plan(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	token := env.getToken(t, student)

	now := time.Now().UTC()
	seedAssignment(t, env, student.ID, "Graphs problem set", "Math", assignment.TypeAssignment, now.AddDate(0, 0, 4))
	seedAssignment(t, env, student.ID, "DBMS mini project", "DBMS", assignment.TypeProject, now.AddDate(0, 0, 10))

	req, rec := newAuthRequest(http.MethodGet, "/v1/schedule/plan", token)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Success bool                   `json:"success"`
		Data    []schedule.DaySchedule `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	require.Len(t, res.Data, 14)

	prefs := schedule.DefaultPreferences()
	for i, day := range res.Data {
		if i > 0 {
			assert.Equal(t, res.Data[i-1].Date.AddDate(0, 0, 1), day.Date, "days must be consecutive")
		}
		assert.LessOrEqual(t, day.TotalHours, prefs.DayBudget(day.Date))

		// sessions must not overlap
		for j := 1; j < len(day.Sessions); j++ {
			assert.False(t, day.Sessions[j].StartTime.Before(day.Sessions[j-1].EndTime),
				"sessions overlap on %s", day.DayName)
		}
	}

	// the pending work must show up somewhere in the plan
	var subjects []string
	for _, day := range res.Data {
		for _, s := range day.Sessions {
			subjects = append(subjects, s.Subject)
		}
	}
	assert.Contains(t, subjects, "Math")
	assert.Contains(t, subjects, "DBMS")
}

func Test_scheduleApi_planICS(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	token := env.getToken(t, student)

	now := time.Now().UTC()
	seedAssignment(t, env, student.ID, "Graphs problem set", "Math", assignment.TypeAssignment, now.AddDate(0, 0, 4))

	req, rec := newAuthRequest(http.MethodGet, "/v1/schedule/plan.ics", token)
	env.app.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "study-plan.ics")

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Contains(t, body, "SUMMARY:Study: Math")
	assert.Contains(t, body, "END:VCALENDAR")
}

func Test_scheduleApi_emailPlan(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	token := env.getToken(t, student)

	now := time.Now().UTC()
	seedAssignment(t, env, student.ID, "Graphs problem set", "Math", assignment.TypeAssignment, now.AddDate(0, 0, 4))

	req, rec := newAuthRequest(http.MethodPost, "/v1/schedule/email-plan", token)
	env.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, emailsvc.SentMessages, 1)
	msg := emailsvc.SentMessages[0]
	assert.Equal(t, student.Email, msg.To[0].Address)
	assert.Equal(t, "Your study plan for the week", msg.Subject)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "study-plan.ics", msg.Attachments[0].Filename)
	assert.Equal(t, "text/calendar", msg.Attachments[0].ContentType)
}

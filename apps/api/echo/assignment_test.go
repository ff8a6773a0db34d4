package echoapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterhub/eduhub/core/assignment"
	"github.com/iterhub/eduhub/core/user"
)

func Test_assignmentApi_myAssignments(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	other := env.createUser(t, "Ravi Das", "ravi", "ravi@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)

	now := time.Now().UTC()
	asg1 := seedAssignment(t, env, student.ID, "Graphs problem set", "Math", assignment.TypeAssignment, now.AddDate(0, 0, 2))
	asg2 := seedAssignment(t, env, student.ID, "OS lab 3", "OS", assignment.TypeLab, now.AddDate(0, 0, 5))
	seedAssignment(t, env, other.ID, "Not yours", "Math", assignment.TypeHomework, now.AddDate(0, 0, 3))

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "own assignments only", token: env.getToken(t, student), wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{"success": true, "data": []assignment.Assignment{asg1, asg2}}),
		},
		{
			name: "empty list", token: env.getToken(t, env.createUser(t, "New Kid", "newkid", "newkid@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]interface{}{"success": true, "data": []assignment.Assignment{}}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/assignments/my-assignments", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_assignmentApi_create(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	teacher := env.createUser(t, "Prof Sen", "profsen", "sen@test.cd", "s3cr3tpwd", []string{user.RoleTeacher}, true)

	newAsg := assignment.NewAssignment{
		StudentID: student.ID,
		Title:     "Graphs problem set",
		Subject:   "Math",
		Type:      assignment.TypeAssignment,
		DueDate:   time.Now().UTC().AddDate(0, 0, 7),
	}

	t.Run("students cannot create", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments", env.getToken(t, student), marchallObj(t, newAsg))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		bad := newAsg
		bad.Type = "exam"
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments", env.getToken(t, teacher), marchallObj(t, bad))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("teacher creates", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/assignments", env.getToken(t, teacher), marchallObj(t, newAsg))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var asg assignment.Assignment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &asg))
		assert.NotEmpty(t, asg.ID)
		assert.Equal(t, student.ID, asg.StudentID)
		assert.False(t, asg.IsSubmitted)
	})
}

func Test_assignmentApi_submit(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	other := env.createUser(t, "Ravi Das", "ravi", "ravi@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)

	asg := seedAssignment(t, env, student.ID, "OS lab 3", "OS", assignment.TypeLab, time.Now().UTC().AddDate(0, 0, 5))
	body := marchallObj(t, map[string]bool{"isSubmitted": true})

	t.Run("not the owner", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/assignments/%s/submit", asg.ID), env.getToken(t, other), body)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/assignments/lol/submit", env.getToken(t, student), body)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	})

	t.Run("submit own", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/assignments/%s/submit", asg.ID), env.getToken(t, student), body)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated assignment.Assignment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.True(t, updated.IsSubmitted)
	})
}

package echoapi_test

import (
	"encoding/json"
	"net/http"
	"testing"

	. "github.com/iterhub/eduhub/apps/api/echo"
	"github.com/iterhub/eduhub/core/user"
)

func Test_userApi_login(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	naughty := env.createUser(t, "N Dog", "ndog", "ndog@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, false)

	tests := []httpTest{
		{
			name: "empty body", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "username is a required field",
				"password": "password is a required field",
			}),
		},
		{
			name: "unknown user", body: marchallObj(t, LoginRequest{Username: "lol", Password: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: marchallObj(t, LoginRequest{Username: student.Username, Password: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "deactivated account", body: marchallObj(t, LoginRequest{Username: naughty.Username, Password: "s3cr3tpwd"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("login with username", func(t *testing.T) {
		body := marchallObj(t, LoginRequest{Username: student.Username, Password: "s3cr3tpwd"})
		req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling LoginResponse: %v", err)
		}
		if res.Token == "" {
			t.Error("expected a token")
		}
	})

	t.Run("login with email", func(t *testing.T) {
		body := marchallObj(t, LoginRequest{Username: student.Email, Password: "s3cr3tpwd"})
		req, rec := newRequest(http.MethodPost, "/v1/users/login", body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
	})
}

func Test_userApi_refreshToken(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/token-refresh")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)
	})

	t.Run("refresh", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", env.getToken(t, student))
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res LoginResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("unmarshalling LoginResponse: %v", err)
		}
		if res.Token == "" {
			t.Error("expected a token")
		}
	})
}

func Test_userApi_me(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "me", token: env.getToken(t, student), wantCode: http.StatusOK, wantData: marchallObj(t, student)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_userApi_query(t *testing.T) {
	env := setup(t)

	student := env.createUser(t, "Asha Rao", "asha", "asha@test.cd", "s3cr3tpwd", []string{user.RoleStudent}, true)
	admin := env.createUser(t, "Admin", "admin", "admin@test.cd", "s3cr3tpwd", []string{user.RoleAdmin}, true)

	tests := []httpTest{
		{name: "auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "admin required", path: "/v1/users", token: env.getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "get all", path: "/v1/users", token: env.getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, []user.User{admin, student}),
		},
		{
			name: "search", path: "/v1/users?search=asha", token: env.getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, []user.User{student}),
		},
		{
			name: "filter role", path: "/v1/users?role=admin:", token: env.getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, []user.User{admin}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

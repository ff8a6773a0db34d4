package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/iterhub/eduhub/apps/api/echo"
	"github.com/iterhub/eduhub/core"
	"github.com/iterhub/eduhub/core/analytics"
	"github.com/iterhub/eduhub/core/assignment"
	"github.com/iterhub/eduhub/core/flashcard"
	"github.com/iterhub/eduhub/core/schedule"
	"github.com/iterhub/eduhub/core/user"
	emailsvc "github.com/iterhub/eduhub/services/email"
	dummydb "github.com/iterhub/eduhub/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

// analyticsSeeder exposes the dummy repo's seeding helpers.
type analyticsSeeder interface {
	AddMark(analytics.Mark) analytics.Mark
	SetAttendance(string, analytics.AttendanceSummary)
}

type testEnv struct {
	conf    *core.Config
	app     Server
	usrRepo user.Repository
	asgRepo assignment.Repository
	anlRepo analyticsSeeder
	prfRepo schedule.PreferencesRepository
	crdRepo flashcard.Repository
}

func newTestConfig() *core.Config {
	return &core.Config{
		AppName:          "EduHub",
		Env:              "TEST",
		TestMode:         true,
		SecretKey:        []byte("testing-secret"),
		DefaultFromEmail: "noreply@eduhub.test",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		Schedule: core.ScheduleConfig{
			HorizonDays:          14,
			MaxDailySubjectHours: 2,
			MinAllocationHours:   0.5,
			WeakSubjectThreshold: 60,
		},
	}
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}

	conf := newTestConfig()
	logger := testLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	emailsvc.ClearSentMessages()

	usrRepo := dummydb.NewUserRepository(db)
	asgRepo := dummydb.NewAssignmentRepository(db)
	anlRepo := dummydb.NewAnalyticsRepository(db)
	prfRepo := dummydb.NewPreferencesRepository(db)
	crdRepo := dummydb.NewFlashcardRepository(db)

	usrSvc := user.NewService(usrRepo, conf)
	asgSvc := assignment.NewService(asgRepo)
	anlSvc := analytics.NewService(anlRepo, asgSvc, conf)
	schedSvc := schedule.NewService(prfRepo, asgSvc, anlSvc, mailSvc, logger, conf)
	cardSvc := flashcard.NewService(crdRepo)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	app := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		UserSvc:    usrSvc,
		AsgSvc:     asgSvc,
		AnlSvc:     anlSvc,
		SchedSvc:   schedSvc,
		CardSvc:    cardSvc,
	})

	return &testEnv{
		conf:    conf,
		app:     app,
		usrRepo: usrRepo,
		asgRepo: asgRepo,
		anlRepo: anlRepo,
		prfRepo: prfRepo,
		crdRepo: crdRepo,
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// testLogger swallows log output; tests assert on responses, not logs.
type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (env *testEnv) getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(env.conf, usr)
	token, err := GenerateToken(env.conf, claims)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func (env *testEnv) createUser(t *testing.T, name, uname, email, pwd string, roles []string, isActive bool) user.User {
	t.Helper()

	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword(): %v", err)
		}
	}
	usr, err := env.usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ObjectsAreEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

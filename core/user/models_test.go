package user

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterhub/eduhub/core"
)

func newTestValidator() *validator.Validate {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func TestRolePriority(t *testing.T) {
	assert.Greater(t, RolePriority(RoleAdminOwner), RolePriority(RoleAdmin))
	assert.Greater(t, RolePriority(RoleAdmin), RolePriority(RoleTeacher))
	assert.Greater(t, RolePriority(RoleTeacher), RolePriority(RoleStudent))
	assert.Zero(t, RolePriority("unknown:"))

	assert.Equal(t, RolePriority(RoleAdmin), MaxRolePriority([]string{RoleStudent, RoleAdmin}))
	assert.Zero(t, MaxRolePriority(nil))
}

func TestUser_passwords(t *testing.T) {
	usr := User{}
	require.NoError(t, usr.SetPassword("s3cr3t-Pass"))
	assert.NotEmpty(t, usr.PasswordHash)

	assert.NoError(t, usr.CheckPassword("s3cr3t-Pass"))
	assert.Error(t, usr.CheckPassword("wrong"))
}

func TestUser_roleChecks(t *testing.T) {
	admin := User{Roles: []string{RoleAdminOwner}}
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsTeacher())

	teacher := User{Roles: []string{RoleTeacher}}
	assert.True(t, teacher.IsTeacher())
	assert.False(t, teacher.IsAdmin())

	student := User{Roles: []string{RoleStudent}}
	assert.True(t, student.IsStudent())
	assert.False(t, student.RoleStartsWith(RoleAdmin))
}

type uniquenessStub struct {
	ServiceInterface
	err error
}

func (s uniquenessStub) CheckUniqueness(string, string, ...User) error { return s.err }

func TestNewUser_Validate(t *testing.T) {
	validate := newTestValidator()
	svc := uniquenessStub{}

	valid := func() NewUser {
		return NewUser{
			Name:            " Asha Rao ",
			Username:        "AshaRao",
			Email:           "Asha@Test.CD",
			Password:        "s3cr3t-Pass",
			PasswordConfirm: "s3cr3t-Pass",
			Roles:           []string{RoleStudent},
		}
	}

	t.Run("cleans and lowers identifiers", func(t *testing.T) {
		nu := valid()
		require.NoError(t, nu.Validate(validate, svc))
		assert.Equal(t, "Asha Rao", nu.Name)
		assert.Equal(t, "asharao", nu.Username)
		assert.Equal(t, "asha@test.cd", nu.Email)
	})

	t.Run("requires username or email", func(t *testing.T) {
		nu := valid()
		nu.Username = ""
		nu.Email = ""
		assert.Error(t, nu.Validate(validate, svc))
	})

	t.Run("password policy", func(t *testing.T) {
		tests := []struct {
			name string
			pwd  string
			ok   bool
		}{
			{name: "too short", pwd: "ab1"},
			{name: "has whitespace", pwd: "pass word 1"},
			{name: "all numeric", pwd: "12345678"},
			{name: "acceptable", pwd: "s3cr3t-Pass", ok: true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				nu := valid()
				nu.Password = tt.pwd
				nu.PasswordConfirm = tt.pwd
				err := nu.Validate(validate, svc)
				if tt.ok {
					assert.NoError(t, err)
				} else {
					assert.Error(t, err)
				}
			})
		}
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		nu := valid()
		nu.PasswordConfirm = "something-else"
		assert.Error(t, nu.Validate(validate, svc))
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		nu := valid()
		nu.Roles = []string{"superuser:"}
		assert.Error(t, nu.Validate(validate, svc))
	})

	t.Run("propagates uniqueness failure", func(t *testing.T) {
		nu := valid()
		assert.Error(t, nu.Validate(validate, uniquenessStub{err: ErrUserExists}))
	})
}

func TestUpdateUser_Validate(t *testing.T) {
	validate := newTestValidator()
	svc := uniquenessStub{}
	orig := User{Name: "Asha Rao", Username: "asharao", Email: "asha@test.cd"}

	t.Run("empty fields fall back to current values", func(t *testing.T) {
		uu := UpdateUser{}
		require.NoError(t, uu.Validate(validate, orig, svc))
		assert.Equal(t, orig.Name, uu.Name)
		assert.Equal(t, orig.Username, uu.Username)
		assert.Equal(t, orig.Email, uu.Email)
	})

	t.Run("empty password skips the policy", func(t *testing.T) {
		uu := UpdateUser{Name: "New Name"}
		assert.NoError(t, uu.Validate(validate, orig, svc))
	})

	t.Run("provided password must pass the policy", func(t *testing.T) {
		uu := UpdateUser{Password: "short", PasswordConfirm: "short"}
		assert.Error(t, uu.Validate(validate, orig, svc))
	})
}

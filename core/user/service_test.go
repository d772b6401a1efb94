package user_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumaini/malengo/core"
	"github.com/tumaini/malengo/core/user"
	emailsvc "github.com/tumaini/malengo/services/email"
	dummydb "github.com/tumaini/malengo/storage/database/dummy"
)

func setup() (*user.Service, user.Repository) {
	repo := dummydb.NewUserRepository(dummydb.Open())
	return user.NewService(core.Conf, repo, emailsvc.NewConsoleServiceMock(core.Conf)), repo
}

func validNewUser() user.NewUser {
	return user.NewUser{
		Email:           "amina@example.com",
		Username:        "amina_k",
		Password:        "S3cure.pass",
		PasswordConfirm: "S3cure.pass",
	}
}

func Test_NewUser_Validate(t *testing.T) {
	svc, _ := setup()

	tests := []struct {
		name     string
		mutate   func(nu *user.NewUser)
		wantTags map[string]string // field -> failing tag
	}{
		{name: "valid", mutate: func(nu *user.NewUser) {}},
		{
			name:     "bad email",
			mutate:   func(nu *user.NewUser) { nu.Email = "not-an-email" },
			wantTags: map[string]string{"email": "email"},
		},
		{
			name:     "short username",
			mutate:   func(nu *user.NewUser) { nu.Username = "ab" },
			wantTags: map[string]string{"username": "min"},
		},
		{
			name:     "long username",
			mutate:   func(nu *user.NewUser) { nu.Username = "this_is_way_too_long_a_name" },
			wantTags: map[string]string{"username": "max"},
		},
		{
			name:     "bad username chars",
			mutate:   func(nu *user.NewUser) { nu.Username = "bad name!" },
			wantTags: map[string]string{"username": "username_chars"},
		},
		{
			name: "password mismatch",
			mutate: func(nu *user.NewUser) {
				nu.PasswordConfirm = "Different.1"
			},
			wantTags: map[string]string{"password_confirm": "eqfield"},
		},
		{
			name: "short password",
			mutate: func(nu *user.NewUser) {
				nu.Password, nu.PasswordConfirm = "Ab.1", "Ab.1"
			},
			wantTags: map[string]string{"password": "pwdminlen"},
		},
		{
			name: "password with whitespace",
			mutate: func(nu *user.NewUser) {
				nu.Password, nu.PasswordConfirm = "S3cure pass.", "S3cure pass."
			},
			wantTags: map[string]string{"password": "pwdnospace"},
		},
		{
			name: "all numeric password",
			mutate: func(nu *user.NewUser) {
				nu.Password, nu.PasswordConfirm = "12345678", "12345678"
			},
			wantTags: map[string]string{"password": "pwdnotallnum"},
		},
		{
			name: "password lacks complexity",
			mutate: func(nu *user.NewUser) {
				nu.Password, nu.PasswordConfirm = "lowercaseonly1", "lowercaseonly1"
			},
			wantTags: map[string]string{"password": "pwdcplx"},
		},
		{
			name: "password similar to username",
			mutate: func(nu *user.NewUser) {
				nu.Username = "amina-karim"
				nu.Password, nu.PasswordConfirm = "Amina-karim.1", "Amina-karim.1"
			},
			wantTags: map[string]string{"password": "pwdtoosim"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := validNewUser()
			tt.mutate(&nu)
			err := nu.Validate(svc)
			if len(tt.wantTags) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			vErrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok, "expected validator.ValidationErrors, got %T", err)
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Tag()
			}
			assert.Equal(t, tt.wantTags, got)
		})
	}
}

func Test_NewUser_Validate_uniqueness(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	nu := validNewUser()
	require.NoError(t, nu.Validate(svc))
	_, _, err := svc.Signup(ctx, nu)
	require.NoError(t, err)

	dupEmail := validNewUser()
	dupEmail.Username = "someone_else"
	err = dupEmail.Validate(svc)
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "email", vErr.Fields[0].Field)

	dupUname := validNewUser()
	dupUname.Email = "other@example.com"
	dupUname.Username = "Amina_K" // uniqueness is case-insensitive
	err = dupUname.Validate(svc)
	require.Error(t, err)
	vErr, ok = err.(*core.ValidationError)
	require.True(t, ok)
	assert.Equal(t, "username", vErr.Fields[0].Field)
}

func Test_Service_Signup(t *testing.T) {
	svc, repo := setup()
	ctx := context.Background()

	nu := validNewUser()
	nu.Username = "Amina_K"
	usr, prof, err := svc.Signup(ctx, nu)
	require.NoError(t, err)

	assert.NotEmpty(t, usr.ID)
	assert.Equal(t, "amina@example.com", usr.Email)
	assert.True(t, usr.IsActive)
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NoError(t, usr.CheckPassword(nu.Password))

	assert.Equal(t, usr.ID, prof.UserID)
	assert.Equal(t, "amina_k", prof.Username) // stored lowercase

	stored, err := repo.GetProfileByUsername(ctx, "amina_k")
	require.NoError(t, err)
	assert.Equal(t, prof, stored)

	require.NotEmpty(t, emailsvc.SentMessages)
	welcome := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	assert.Equal(t, usr.Email, welcome.To[0].Address)
	assert.Contains(t, welcome.Subject, "Welcome")
}

func Test_Service_Authenticate(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	nu := validNewUser()
	usr, _, err := svc.Signup(ctx, nu)
	require.NoError(t, err)
	assert.True(t, usr.LastLogin.IsZero())

	authed, err := svc.Authenticate(ctx, "Amina@Example.com", nu.Password)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, authed.ID)
	assert.False(t, authed.LastLogin.IsZero())

	_, err = svc.Authenticate(ctx, nu.Email, "Wrong.pass1")
	assert.Equal(t, user.ErrNotFound, err)

	_, err = svc.Authenticate(ctx, "nobody@example.com", nu.Password)
	assert.Equal(t, user.ErrNotFound, err)
}

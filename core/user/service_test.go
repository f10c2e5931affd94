package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/storage/kvrepos"
	"github.com/trezcool/darasa/tests"
)

func setup(t *testing.T) (*user.Service, user.Repository) {
	store, _, _ := testutil.NewStore(t)
	repo := kvrepos.NewUserRepository(store, testutil.SeedTeacher)
	return user.NewService(repo), repo
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		{name: "seeded teacher", uname: "teacher", pwd: "pass123"},
		{name: "wrong password", uname: "teacher", pwd: "pass", wantErr: core.ErrAuthenticationFailed},
		{name: "case sensitive", uname: "Teacher", pwd: "pass123", wantErr: core.ErrAuthenticationFailed},
		{name: "unknown user", uname: "ghost", pwd: "pass123", wantErr: core.ErrAuthenticationFailed},
		{name: "padded username", uname: "  teacher\t", pwd: "pass123", wantErr: core.ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(ctx, tt.uname, tt.pwd)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.RoleTeacher, usr.Role)
		})
	}
}

func TestService_Create(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{Username: " alice ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, user.User{Username: " alice ", Password: "pw", Role: user.RoleStudent}, usr)

	// usernames are matched exactly
	usr, err = svc.Create(ctx, user.NewUser{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "alice", usr.Username)

	before, err := repo.LoadUsers(ctx)
	require.NoError(t, err)

	tests := []struct {
		name    string
		nu      user.NewUser
		wantErr error
	}{
		{name: "taken username", nu: user.NewUser{Username: "alice", Password: "other"}, wantErr: core.ErrUsernameTaken},
		{name: "taken by teacher", nu: user.NewUser{Username: "teacher", Password: "x"}, wantErr: core.ErrUsernameTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.nu)
			assert.Equal(t, tt.wantErr, err)
			after, err := repo.LoadUsers(ctx)
			require.NoError(t, err)
			assert.Equal(t, before, after, "users must be left untouched")
		})
	}

	t.Run("validation", func(t *testing.T) {
		for _, nu := range []user.NewUser{
			{Username: " ", Password: "pw"},
			{Username: "bob"},
			{Username: "bob", Password: "pw", Role: "admin"},
		} {
			_, err := svc.Create(ctx, nu)
			assert.True(t, core.IsValidation(err), "%+v: got %v", nu, err)
		}
	})

	students, err := svc.Students(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{" alice ", "alice"}, students)
}

func TestService_SetPassword(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.SetPassword(ctx, "teacher", "new"))
	_, err := svc.Authenticate(ctx, "teacher", "new")
	assert.NoError(t, err)

	assert.Equal(t, core.ErrNotFound, svc.SetPassword(ctx, "ghost", "x"))
	assert.True(t, core.IsValidation(svc.SetPassword(ctx, "teacher", "")))
}

package impl

import (
	"context"
	"testing"

	domainerrors "cashtrail/internal/domain/errors"
	"cashtrail/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(repos *memRepos) *userService {
	return &userService{
		txManager:    newMemTxManager(repos),
		userRepo:     repos,
		hasher:       fakeHasher{},
		tokenService: fakeTokenService{},
		logger:       testLogger(),
	}
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserService(repos)

	out, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "alice@Example.COM",
		Name:     "Alice",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	// The domain part is lowercased; the local part is left alone.
	assert.Equal(t, "alice@example.com", out.User.Email)
	assert.True(t, out.User.IsActive)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.NotEqual(t, "s3cret", out.User.PasswordHash)
}

func TestUserServiceRegisterEmptyEmail(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserService(repos)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "   ",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidIdentity)

	// Nothing was persisted.
	_, err = repos.FindUserByEmail(context.Background(), "")
	assert.Error(t, err)
}

func TestUserServiceRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserService(repos)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "bob@example.com",
		Password: "first",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "bob@EXAMPLE.com",
		Password: "second",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserServiceLogin(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserService(repos)

	registered, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "carol@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "carol@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, out.User.ID)

	_, err = svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "carol@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// An unknown email looks identical to a bad password.
	_, err = svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "hunter2",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserServiceLoginInactiveUser(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserService(repos)

	registered, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "dave@example.com",
		Password: "pw",
	})
	require.NoError(t, err)

	user, err := repos.FindUserByID(context.Background(), registered.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, repos.UpdateUser(context.Background(), user))

	_, err = svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "dave@example.com",
		Password: "pw",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserServiceGetProfile(t *testing.T) {
	t.Parallel()

	repos := newMemRepos()
	svc := newTestUserService(repos)

	registered, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "erin@example.com",
		Name:     "Erin",
		Password: "pw",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Erin", profile.Name)
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Frank@example.com", normalizeEmail("  Frank@EXAMPLE.Com "))
	assert.Equal(t, "no-at-sign", normalizeEmail("no-at-sign"))
	assert.Equal(t, "", normalizeEmail("   "))
}

package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/frostdesk/frostdesk/internal/auth"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return string(hash)
}

func newService(repo *auth.MockRepository) *auth.Service {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return auth.NewService(repo, issuer, time.Hour)
}

func TestService_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := newService(repo)

	repo.EXPECT().
		CreateUserWithCompany(gomock.Any(), gomock.Any(), "Frio Norte Refrigeração").
		DoAndReturn(func(_ context.Context, u *auth.User, _ string) error {
			assert.Equal(t, "ana@frionorte.com", u.Email)
			assert.NotEmpty(t, u.PasswordHash)
			assert.NotEqual(t, "s3cret", u.PasswordHash)

			u.ID = uuid.New()
			u.CompanyID = uuid.New()
			return nil
		})

	user, err := svc.SignUp(context.Background(), auth.SignUpParams{
		Email:       "ana@frionorte.com",
		Password:    "s3cret",
		Name:        "Ana",
		CompanyName: "Frio Norte Refrigeração",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestService_SignIn(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "ana@frionorte.com").
			Return(&auth.User{
				ID:           userID,
				CompanyID:    companyID,
				Email:        "ana@frionorte.com",
				PasswordHash: hashOf(t, "s3cret"),
			}, nil)

		token, user, err := svc.SignIn(context.Background(), "ana@frionorte.com", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, userID, user.ID)

		// The issued token carries the company scope.
		issuer := auth.NewTokenIssuer("test-secret", time.Hour)
		identity, err := issuer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, companyID, identity.CompanyID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "ana@frionorte.com").
			Return(&auth.User{PasswordHash: hashOf(t, "s3cret")}, nil)

		_, _, err := svc.SignIn(context.Background(), "ana@frionorte.com", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, auth.ErrNotFound)

		_, _, err := svc.SignIn(context.Background(), "nobody@example.com", "s3cret")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_RequestPasswordReset(t *testing.T) {
	t.Run("StoresHashNotToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		userID := uuid.New()
		var storedHash string

		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "ana@frionorte.com").
			Return(&auth.User{ID: userID}, nil)
		repo.EXPECT().
			CreateResetToken(gomock.Any(), userID, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, tokenHash string, _ time.Time) error {
				storedHash = tokenHash
				return nil
			})

		token, err := svc.RequestPasswordReset(context.Background(), "ana@frionorte.com")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEqual(t, token, storedHash)
	})

	t.Run("UnknownEmailDoesNotLeak", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		repo.EXPECT().
			GetUserByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, auth.ErrNotFound)

		token, err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestService_ResetPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		userID := uuid.New()

		repo.EXPECT().
			ConsumeResetToken(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userID, nil)
		repo.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			Return(nil)

		require.NoError(t, svc.ResetPassword(context.Background(), "some-token", "newpass"))
	})

	t.Run("InvalidToken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := auth.NewMockRepository(ctrl)
		svc := newService(repo)

		repo.EXPECT().
			ConsumeResetToken(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, auth.ErrResetTokenInvalid)

		err := svc.ResetPassword(context.Background(), "bad-token", "newpass")
		require.ErrorIs(t, err, auth.ErrResetTokenInvalid)
	})
}

func TestService_UpdatePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := newService(repo)

	userID := uuid.New()

	repo.EXPECT().
		GetUser(gomock.Any(), userID).
		Return(&auth.User{ID: userID, PasswordHash: hashOf(t, "current")}, nil)

	err := svc.UpdatePassword(context.Background(), userID, "wrong", "newpass")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_SignUp_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := auth.NewMockRepository(ctrl)
	svc := newService(repo)

	repo.EXPECT().
		CreateUserWithCompany(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("db error"))

	_, err := svc.SignUp(context.Background(), auth.SignUpParams{
		Email:    "ana@frionorte.com",
		Password: "s3cret",
	})
	require.Error(t, err)
}

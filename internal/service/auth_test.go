package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/security"
	"roofbox-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const authTestSecret = "0123456789abcdef0123456789abcdef"

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(authTestSecret)

	hash, err := bcrypt.GenerateFromPassword([]byte("geheim123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: uuid.New(), Email: "admin@dachbox.example", PasswordHash: string(hash), IsAdmin: true}

	t.Run("SignUp", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockSessionRepo), tokens, time.Hour)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "neu@example.com" && !u.IsAdmin &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("langes-passwort")) == nil
		})).Return(nil)

		u, err := svc.SignUp(ctx, " Neu@Example.com ", "langes-passwort")
		require.NoError(t, err)
		assert.Equal(t, "neu@example.com", u.Email)
	})

	t.Run("SignUpShortPassword", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockSessionRepo), tokens, time.Hour)
		_, err := svc.SignUp(ctx, "neu@example.com", "kurz")
		ve, ok := domain.IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "password", ve.Field)
	})

	t.Run("SignUpPasswordTooLong", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockSessionRepo), tokens, time.Hour)

		_, err := svc.SignUp(ctx, "neu@example.com", strings.Repeat("ä", 37))
		ve, ok := domain.IsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "password", ve.Field)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		userRepo.On("Create", ctx, mock.Anything).Return(nil)
		_, err = svc.SignUp(ctx, "neu@example.com", strings.Repeat("x", 72))
		assert.NoError(t, err)
	})

	t.Run("SignUpEmailTaken", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockSessionRepo), tokens, time.Hour)
		userRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailTaken)

		_, err := svc.SignUp(ctx, "neu@example.com", "langes-passwort")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("SignInAuthenticateSignOut", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		sessionRepo := new(MockSessionRepo)
		svc := service.NewAuthService(userRepo, sessionRepo, tokens, time.Hour)

		var stored *domain.UserSession
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil)
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*domain.UserSession")).
			Run(func(args mock.Arguments) {
				s := args.Get(1).(*domain.UserSession)
				s.ID = uuid.New()
				stored = s
			}).Return(nil)

		token, session, err := svc.SignIn(ctx, user.Email, "geheim123")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		assert.True(t, session.IsAdmin)
		assert.Equal(t, stored.ID, session.ID)

		sessionRepo.On("GetByID", ctx, stored.ID).Return(stored, nil).Once()
		got, err := svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
		assert.True(t, got.IsAdmin)

		sessionRepo.On("Delete", ctx, stored.ID).Return(nil)
		require.NoError(t, svc.SignOut(ctx, got))

		sessionRepo.On("GetByID", ctx, stored.ID).Return(nil, domain.ErrNotFound)
		_, err = svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		sessionRepo := new(MockSessionRepo)
		svc := service.NewAuthService(userRepo, sessionRepo, tokens, time.Hour)
		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)

		_, _, err := svc.SignIn(ctx, user.Email, "falsch")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := service.NewAuthService(userRepo, new(MockSessionRepo), tokens, time.Hour)
		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := svc.SignIn(ctx, "nobody@example.com", "egal1234")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("BadToken", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockSessionRepo), tokens, time.Hour)
		_, err := svc.Authenticate(ctx, "garbage")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("SignOutWithoutSession", func(t *testing.T) {
		svc := service.NewAuthService(new(MockUserRepo), new(MockSessionRepo), tokens, time.Hour)
		assert.ErrorIs(t, svc.SignOut(ctx, nil), domain.ErrUnauthorized)
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository"
	"roofbox-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt refuses longer input.
	maxPasswordBytes = 72
)

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      security.TokenManager
	sessionTTL  time.Duration
	now         func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens security.TokenManager, sessionTTL time.Duration) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		sessionTTL:  sessionTTL,
		now:         time.Now,
	}
}

// SignUp registers a regular user. Admin rights are granted out of band (boxctl grant-admin).
func (s *authService) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil || !emailPattern.MatchString(email) {
		return nil, domain.NewValidationError("email", "Invalid email address")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("Das Passwort muss mindestens %d Zeichen lang sein.", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password", fmt.Sprintf("Das Passwort darf höchstens %d Bytes lang sein.", maxPasswordBytes))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("User signed up", "userID", user.ID)
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (string, *security.Session, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	row := &domain.UserSession{
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL).UTC(),
	}
	if err := s.sessionRepo.Create(ctx, row); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	token, err := s.tokens.GenerateSessionToken(row.ID, user.ID, user.Email, user.IsAdmin, row.ExpiresAt)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	logger.Info("User signed in", "userID", user.ID, "sessionID", row.ID)
	return token, &security.Session{
		ID:        row.ID,
		UserID:    user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (s *authService) SignOut(ctx context.Context, session *security.Session) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	logger.Info("User signed out", "userID", session.UserID, "sessionID", session.ID)
	return nil
}

// Authenticate accepts a token only while its session row exists. Admin
// rights are read from the user row so a revoked admin loses access at once.
func (s *authService) Authenticate(ctx context.Context, token string) (*security.Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	row, err := s.sessionRepo.GetByID(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: session ended", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if row.UserID != claims.UserID || !row.ExpiresAt.After(s.now()) {
		return nil, fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
	}

	user, err := s.userRepo.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: user removed", domain.ErrUnauthorized)
		}
		return nil, err
	}

	return &security.Session{
		ID:        row.ID,
		UserID:    user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

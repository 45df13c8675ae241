package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	CreateUserWithCompany(ctx context.Context, user *User, companyName string) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) error

	CreateResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error)
}

type Service struct {
	repo     Repository
	tokens   *TokenIssuer
	resetTTL time.Duration
}

func NewService(repo Repository, tokens *TokenIssuer, resetTTL time.Duration) *Service {
	return &Service{repo: repo, tokens: tokens, resetTTL: resetTTL}
}

type SignUpParams struct {
	Email       string
	Password    string
	Name        string
	CompanyName string
}

func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        params.Email,
		PasswordHash: string(hash),
		Name:         params.Name,
	}

	if err := s.repo.CreateUserWithCompany(ctx, user, params.CompanyName); err != nil {
		return nil, err
	}

	return user, nil
}

// SignIn checks the password and returns a signed access token for the user.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return "", nil, ErrInvalidCredentials
		}

		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.CompanyID, time.Now())
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestPasswordReset issues a one-time reset token for the account.
// The plain token is returned to the caller for delivery; only its hash is
// stored. An unknown email returns an empty token and no error so the
// endpoint does not leak which addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return "", nil
		}

		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating reset token: %w", err)
	}

	token := hex.EncodeToString(buf)

	expiresAt := time.Now().Add(s.resetTTL)
	if err := s.repo.CreateResetToken(ctx, user.ID, hashToken(token), expiresAt); err != nil {
		return "", err
	}

	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.repo.ConsumeResetToken(ctx, hashToken(token), time.Now())
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, name, phone string) error {
	return s.repo.UpdateProfile(ctx, userID, name, phone)
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, userID)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

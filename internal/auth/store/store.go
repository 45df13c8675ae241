package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frostdesk/frostdesk/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, company_id, email, password_hash, name, phone, created_at, updated_at
func scanUser(s scanner) (*auth.User, error) {
	var u auth.User

	var name, phone sql.NullString

	if err := s.Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.PasswordHash, &name, &phone,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.Name = name.String
	u.Phone = phone.String

	return &u, nil
}

const selectUserColumns = `
	u.id, u.company_id, u.email, u.password_hash, u.name, u.phone, u.created_at, u.updated_at
`

// CreateUserWithCompany creates the company row and its first user together.
func (s *Store) CreateUserWithCompany(ctx context.Context, user *auth.User, companyName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	companyQuery := `
		INSERT INTO companies (name, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, companyQuery, companyName).Scan(&user.CompanyID); err != nil {
		return fmt.Errorf("creating company: %w", err)
	}

	userQuery := `
		INSERT INTO users (company_id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, userQuery,
		user.CompanyID,
		user.Email,
		user.PasswordHash,
		user.Name,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return auth.ErrEmailTaken
		}

		return fmt.Errorf("creating user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing signup: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.email = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users u WHERE u.id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return nil
}

func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := s.db.ExecContext(ctx, query, name, phone, id)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	return nil
}

func (s *Store) CreateResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO password_resets (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("creating reset token: %w", err)
	}

	return nil
}

// ConsumeResetToken deletes the token row and returns its user id.
// Expired tokens are treated as unknown.
func (s *Store) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (uuid.UUID, error) {
	query := `
		DELETE FROM password_resets
		WHERE token_hash = $1 AND expires_at > $2
		RETURNING user_id
	`

	var userID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, tokenHash, now).Scan(&userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, auth.ErrResetTokenInvalid
		}

		return uuid.Nil, fmt.Errorf("consuming reset token: %w", err)
	}

	return userID, nil
}

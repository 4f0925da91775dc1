package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired reset code")
)

type AuthUser struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	Status       string
}

type passwordReset struct {
	ID      string
	OTPHash string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, full_name, email, password_hash, role, status
    FROM users
    WHERE email = $1
  `, strings.ToLower(strings.TrimSpace(email))).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role, &user.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return AuthUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

// CreatePasswordReset stores a new hashed OTP for the user and retires any
// outstanding ones, so only the latest code is redeemable.
func (s *Store) CreatePasswordReset(ctx context.Context, userID, otpHash string, expires time.Time) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		"UPDATE password_resets SET used_at = now() WHERE user_id = $1 AND used_at IS NULL", userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
    INSERT INTO password_resets (user_id, otp_hash, expires_at)
    VALUES ($1, $2, $3)
  `, userID, otpHash, expires); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) activeResets(ctx context.Context, userID string) ([]passwordReset, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, otp_hash
    FROM password_resets
    WHERE user_id = $1 AND used_at IS NULL AND expires_at > now()
    ORDER BY created_at DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resets []passwordReset
	for rows.Next() {
		var reset passwordReset
		if err := rows.Scan(&reset.ID, &reset.OTPHash); err != nil {
			return nil, err
		}
		resets = append(resets, reset)
	}
	return resets, rows.Err()
}

func (s *Store) markResetUsed(ctx context.Context, resetID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE password_resets SET used_at = now() WHERE id = $1", resetID)
	return err
}

func (s *Store) updatePassword(ctx context.Context, userID, passwordHash string) error {
	_, err := s.DB.Exec(ctx,
		"UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2", passwordHash, userID)
	return err
}

package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	authtoken "github.com/Suvo-Ghosh/EMS/internal/auth"
	"github.com/Suvo-Ghosh/EMS/internal/platform/config"
	"github.com/Suvo-Ghosh/EMS/internal/platform/email"
)

type Service struct {
	store  *Store
	mailer email.Mailer
	cfg    config.Config
}

func NewService(store *Store, mailer email.Mailer, cfg config.Config) *Service {
	return &Service{store: store, mailer: mailer, cfg: cfg}
}

// Login verifies credentials and issues a signed token. Unknown emails,
// wrong passwords and non-active accounts all fail the same way.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (string, AuthUser, error) {
	user, err := s.store.FindUserByEmail(ctx, emailAddr)
	if err != nil {
		return "", AuthUser{}, err
	}
	if user.Status != "active" {
		return "", AuthUser{}, ErrInvalidCredentials
	}
	if err := authtoken.CheckPassword(user.PasswordHash, password); err != nil {
		return "", AuthUser{}, ErrInvalidCredentials
	}

	token, err := authtoken.GenerateToken(s.cfg.JWTSecret, authtoken.Claims{
		UserID: user.ID,
		Role:   user.Role,
	}, s.cfg.TokenTTL)
	if err != nil {
		return "", AuthUser{}, err
	}
	return token, user, nil
}

// RequestReset issues a one-time code and emails it to the account. It
// reports success for unknown emails so callers cannot probe for accounts.
func (s *Service) RequestReset(ctx context.Context, emailAddr string) error {
	user, err := s.store.FindUserByEmail(ctx, emailAddr)
	if errors.Is(err, ErrInvalidCredentials) {
		return nil
	}
	if err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	otpHash, err := authtoken.HashPassword(otp)
	if err != nil {
		return err
	}

	expires := time.Now().Add(s.cfg.ResetOTPTTL)
	if err := s.store.CreatePasswordReset(ctx, user.ID, otpHash, expires); err != nil {
		return err
	}

	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
		otp, int(s.cfg.ResetOTPTTL.Minutes()))
	if err := s.mailer.Send(ctx, s.cfg.EmailFrom, user.Email, "Password reset code", body); err != nil {
		slog.Warn("reset mail send failed", "email", user.Email, "err", err)
	}
	return nil
}

// ResetPassword redeems an outstanding code and replaces the password.
func (s *Service) ResetPassword(ctx context.Context, emailAddr, otp, newPassword string) error {
	user, err := s.store.FindUserByEmail(ctx, emailAddr)
	if errors.Is(err, ErrInvalidCredentials) {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}

	resets, err := s.store.activeResets(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, reset := range resets {
		if authtoken.CheckPassword(reset.OTPHash, otp) != nil {
			continue
		}
		hash, err := authtoken.HashPassword(newPassword)
		if err != nil {
			return err
		}
		if err := s.store.updatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		return s.store.markResetUsed(ctx, reset.ID)
	}
	return ErrInvalidOTP
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

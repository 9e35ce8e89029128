package services

import (
	"context"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/redisclient"
	"github.com/sportall/app-recruit/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetService issues and redeems password-reset codes. Requests
// are throttled without signalling: over-limit or unknown-account requests
// return success with no code issued, so callers cannot enumerate emails.
type PasswordResetService struct {
	users  UserStore
	resets ResetStore
	email  EmailSender
	cache  *redisclient.Client
	logger *logging.SafeLogger
	now    func() time.Time
}

// NewPasswordResetService creates a PasswordResetService
func NewPasswordResetService(users UserStore, resets ResetStore, email EmailSender, cache *redisclient.Client, logger *logging.SafeLogger) *PasswordResetService {
	return &PasswordResetService{
		users:  users,
		resets: resets,
		email:  email,
		cache:  cache,
		logger: logger.With(zap.String("service", "password_reset")),
		now:    time.Now,
	}
}

// WithClock overrides the service clock
func (s *PasswordResetService) WithClock(now func() time.Time) *PasswordResetService {
	s.now = now
	return s
}

// Request mails a reset code when the account exists and the rolling
// request window has room. It never reports why no code was sent.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	allowed, err := s.withinWindow(ctx, email)
	if err != nil {
		s.logger.Warn("reset throttle check failed, allowing request", zap.Error(err))
		allowed = true
	}
	if !allowed {
		s.logger.Info("reset request over limit, silently accepted")
		return nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err == models.ErrUserNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	code, err := utils.GenerateNumericCode(models.VerificationCodeLength)
	if err != nil {
		return err
	}

	now := s.now()
	record := utils.BuildCodeRecord(code, config.AppConfig.CodeTTL, now)
	reset := &models.PasswordReset{
		Email:     user.Email,
		CodeHash:  record.CodeHash,
		ExpiresAt: record.ExpiresAt,
		CreatedAt: now,
	}
	if err := s.resets.Upsert(ctx, reset); err != nil {
		return err
	}

	if err := s.email.SendVerificationCode(ctx, user.Email, code); err != nil {
		// Already committed the code; the user can request again after
		// the window
		s.logger.Error("reset code delivery failed", zap.Error(err))
		return &models.ProviderError{Provider: "email", Err: err}
	}
	return nil
}

// Confirm redeems a reset code for a new password. The stored code is
// deleted on success.
func (s *PasswordResetService) Confirm(ctx context.Context, email, code, newPassword string) error {
	reset, err := s.resets.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !utils.IsCodeValid(&reset.CodeHash, &reset.ExpiresAt, code, s.now()) {
		return models.ErrInvalidCode
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash), s.now()); err != nil {
		return err
	}

	if err := s.resets.Delete(ctx, email); err != nil {
		s.logger.Warn("failed to delete redeemed reset code", zap.Error(err))
	}
	return nil
}

// withinWindow counts requests per email in a rolling Redis window
func (s *PasswordResetService) withinWindow(ctx context.Context, email string) (bool, error) {
	if s.cache == nil {
		return true, nil
	}

	key := "pwreset:req:" + email
	count, err := s.cache.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		s.cache.Expire(ctx, key, config.AppConfig.PasswordResetWindow)
	}
	return count <= int64(config.AppConfig.PasswordResetMaxReqs), nil
}

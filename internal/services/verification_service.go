package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/redisclient"
	"github.com/sportall/app-recruit/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VerificationService drives a player through the email, phone and stats
// stages of profile verification
type VerificationService struct {
	profiles ProfileStore
	users    UserStore
	email    EmailSender
	sms      SMSVerifier
	notifier Notifier
	cache    *redisclient.Client
	logger   *logging.SafeLogger
	now      func() time.Time
}

// NewVerificationService creates a VerificationService. cache may be nil
// in tests.
func NewVerificationService(profiles ProfileStore, users UserStore, email EmailSender, sms SMSVerifier, notifier Notifier, cache *redisclient.Client, logger *logging.SafeLogger) *VerificationService {
	return &VerificationService{
		profiles: profiles,
		users:    users,
		email:    email,
		sms:      sms,
		notifier: notifier,
		cache:    cache,
		logger:   logger.With(zap.String("service", "verification")),
		now:      time.Now,
	}
}

// WithClock overrides the service clock
func (s *VerificationService) WithClock(now func() time.Time) *VerificationService {
	s.now = now
	return s
}

// StartEmail issues a one-time email code and moves the record to
// email_pending. Any current status may restart the email stage.
func (s *VerificationService) StartEmail(ctx context.Context, userID primitive.ObjectID) error {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	cooldown := utils.CheckCooldown(profile.Verification.Email.LastSentAt, config.AppConfig.EmailCooldown, now)
	if !cooldown.Allowed {
		return &models.RateLimitedError{RetryAfterSeconds: cooldown.RetryAfterSeconds}
	}

	code, err := utils.GenerateNumericCode(models.VerificationCodeLength)
	if err != nil {
		return err
	}
	record := utils.BuildCodeRecord(code, config.AppConfig.CodeTTL, now)

	updated := profile.Verification.StartEmail(record.CodeHash, record.ExpiresAt, now)
	if err := s.persist(ctx, profile, updated); err != nil {
		return err
	}

	if err := s.email.SendVerificationCode(ctx, user.Email, code); err != nil {
		observability.CodeSends.WithLabelValues("email", "error").Inc()
		return &models.ProviderError{Provider: "email", Err: err}
	}
	observability.CodeSends.WithLabelValues("email", "success").Inc()
	return nil
}

// ConfirmEmail redeems an email code. The stored code is cleared on
// success so a replay fails.
func (s *VerificationService) ConfirmEmail(ctx context.Context, userID primitive.ObjectID, code string) error {
	if code == "" {
		return models.NewValidationError("code", "code is required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	rec := profile.Verification.Email
	if !utils.IsCodeValid(rec.CodeHash, rec.ExpiresAt, code, now) {
		return models.ErrInvalidCode
	}

	updated := profile.Verification.ConfirmEmail(now)
	if err := s.persist(ctx, profile, updated); err != nil {
		return err
	}

	s.notifier.Notify(userID, "Email verified",
		"Your email address has been verified. Next, confirm your phone number.")
	return nil
}

// SendPhoneCode opens an OTP session with the SMS provider and records
// the number and session id
func (s *VerificationService) SendPhoneCode(ctx context.Context, userID primitive.ObjectID, phone string) error {
	if phone == "" {
		return models.NewValidationError("phone", "phone number is required")
	}
	normalized, err := utils.NormalizePhoneNumber(phone)
	if err != nil {
		return models.NewValidationError("phone", "invalid phone number")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	cooldown := utils.CheckCooldown(profile.Verification.Phone.LastSentAt, config.AppConfig.PhoneCooldown, now)
	if !cooldown.Allowed {
		return &models.RateLimitedError{RetryAfterSeconds: cooldown.RetryAfterSeconds}
	}

	sessionID, err := s.sms.StartVerification(ctx, normalized)
	if err != nil {
		observability.CodeSends.WithLabelValues("phone", "error").Inc()
		return &models.ProviderError{Provider: "sms", Err: err}
	}
	observability.CodeSends.WithLabelValues("phone", "success").Inc()

	updated := profile.Verification.WithPhoneCode(normalized, sessionID, now)
	return s.persist(ctx, profile, updated)
}

// ConfirmPhone asks the provider to check a submitted code and, when
// approved, moves the record to stats_pending
func (s *VerificationService) ConfirmPhone(ctx context.Context, userID primitive.ObjectID, code string) error {
	if code == "" {
		return models.NewValidationError("code", "code is required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile.Verification.Phone.Number == "" {
		return models.ErrPhoneNumberMissing
	}

	approved, err := s.sms.CheckVerification(ctx, profile.Verification.Phone.Number, code)
	if err != nil {
		return &models.ProviderError{Provider: "sms", Err: err}
	}
	if !approved {
		return models.ErrInvalidCode
	}

	updated := profile.Verification.ConfirmPhone(s.now())
	if err := s.persist(ctx, profile, updated); err != nil {
		return err
	}

	s.notifier.Notify(userID, "Phone verified",
		"Your phone number has been verified. Submit your stats to finish verification.")
	return nil
}

// SubmitStats stores an attested stats snapshot and queues the profile
// for admin review. Allowed only from stats_pending or needs_updates.
func (s *VerificationService) SubmitStats(ctx context.Context, userID primitive.ObjectID, snapshot map[string]interface{}, attested bool, files []string) error {
	if len(snapshot) == 0 {
		return models.NewValidationError("stats_snapshot", "stats snapshot is required")
	}
	if !attested {
		return models.NewValidationError("attested", "you must certify your stats are accurate")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !profile.Verification.CanSubmitStats() {
		return &models.StateGuardError{Operation: "submit stats", Status: profile.Verification.Status}
	}

	if len(files) > models.MaxSupportingFiles {
		files = files[:models.MaxSupportingFiles]
	}

	updated := profile.Verification.SubmitStats(snapshot, files, s.now())
	if err := s.persist(ctx, profile, updated); err != nil {
		return err
	}

	s.notifier.Notify(userID, "Stats submitted", "Thanks! Your stats are now under review.")
	return nil
}

// Status returns the caller's verification record, served from cache
// when fresh
func (s *VerificationService) Status(ctx context.Context, userID primitive.ObjectID) (*models.Verification, error) {
	cacheKey := statusCacheKey(userID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var v models.Verification
			if err := json.Unmarshal([]byte(raw), &v); err == nil {
				observability.CacheHits.WithLabelValues("verification_status").Inc()
				return &v, nil
			}
		}
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(profile.Verification); err == nil {
			s.cache.Set(ctx, cacheKey, raw, config.AppConfig.StatusCacheTTL)
		}
	}
	return &profile.Verification, nil
}

// persist applies a transition with a conditional update keyed on the
// status the caller read, records the transition metric and drops the
// status cache
func (s *VerificationService) persist(ctx context.Context, profile *models.PlayerProfile, updated models.Verification) error {
	if err := s.profiles.UpdateVerification(ctx, profile.ID, profile.Verification.Status, updated); err != nil {
		return err
	}

	if profile.Verification.Status != updated.Status {
		observability.VerificationTransitions.WithLabelValues(
			string(profile.Verification.Status), string(updated.Status)).Inc()
		s.logger.Info("verification status changed",
			zap.String("profile_id", profile.ID.Hex()),
			zap.String("from", string(profile.Verification.Status)),
			zap.String("to", string(updated.Status)))
	}

	s.invalidateStatus(ctx, profile.UserID)
	return nil
}

func (s *VerificationService) invalidateStatus(ctx context.Context, userID primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, statusCacheKey(userID))
}

func statusCacheKey(userID primitive.ObjectID) string {
	return "verification:status:" + userID.Hex()
}

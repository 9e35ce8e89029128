package services

import (
	"context"
	"strings"
	"time"

	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/redisclient"
	"github.com/sportall/app-recruit/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ReviewService is the admin side of the verification workflow
type ReviewService struct {
	profiles ProfileStore
	users    UserStore
	notifier Notifier
	cache    *redisclient.Client
	logger   *logging.SafeLogger
	now      func() time.Time
}

// NewReviewService creates a ReviewService. cache may be nil in tests.
func NewReviewService(profiles ProfileStore, users UserStore, notifier Notifier, cache *redisclient.Client, logger *logging.SafeLogger) *ReviewService {
	return &ReviewService{
		profiles: profiles,
		users:    users,
		notifier: notifier,
		cache:    cache,
		logger:   logger.With(zap.String("service", "review")),
		now:      time.Now,
	}
}

// WithClock overrides the service clock
func (s *ReviewService) WithClock(now func() time.Time) *ReviewService {
	s.now = now
	return s
}

// List fetches a page of profiles for review, defaulting to in_review
func (s *ReviewService) List(ctx context.Context, filter ProfileListFilter) ([]models.PlayerProfile, ListMeta, error) {
	filter.Normalize()
	profiles, total, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, ListMeta{}, err
	}
	return profiles, NewListMeta(filter.Page, filter.Limit, total), nil
}

// ReviewDetail is a profile paired with its owner's account info
type ReviewDetail struct {
	Profile *models.PlayerProfile `json:"profile"`
	Email   string                `json:"email"`
	Role    string                `json:"role"`
}

// Get fetches one profile with the owning account's email and role
func (s *ReviewService) Get(ctx context.Context, profileID primitive.ObjectID) (*ReviewDetail, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	detail := &ReviewDetail{Profile: profile}
	if user, err := s.users.GetByID(ctx, profile.UserID); err == nil {
		detail.Email = user.Email
		detail.Role = user.Role
	}
	return detail, nil
}

// Approve marks a profile verified, stamping the reviewer and appending
// one history entry. The note is optional.
func (s *ReviewService) Approve(ctx context.Context, profileID, adminID primitive.ObjectID, note string) error {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}

	updated := profile.Verification.Approve(adminID, note, s.now())
	if err := s.apply(ctx, profile, updated); err != nil {
		return err
	}

	s.audit(ctx, adminID, models.AuditActionVerificationApproved, profile, note)
	s.notifier.Notify(profile.UserID, "Profile verified",
		"Congratulations! Your Sportall profile has been verified.")
	return nil
}

// Reject sends a profile back to the player with a required note
func (s *ReviewService) Reject(ctx context.Context, profileID, adminID primitive.ObjectID, note string) error {
	if strings.TrimSpace(note) == "" {
		return models.ErrNoteRequired
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return err
	}

	updated := profile.Verification.Reject(adminID, note, s.now())
	if err := s.apply(ctx, profile, updated); err != nil {
		return err
	}

	s.audit(ctx, adminID, models.AuditActionVerificationRejected, profile, note)
	s.notifier.Notify(profile.UserID, "Verification update",
		"Verification needs updates: "+note)
	return nil
}

// apply persists a review decision with the same conditional update the
// player-side transitions use
func (s *ReviewService) apply(ctx context.Context, profile *models.PlayerProfile, updated models.Verification) error {
	if err := s.profiles.UpdateVerification(ctx, profile.ID, profile.Verification.Status, updated); err != nil {
		return err
	}

	observability.VerificationTransitions.WithLabelValues(
		string(profile.Verification.Status), string(updated.Status)).Inc()
	s.logger.Info("review decision applied",
		zap.String("profile_id", profile.ID.Hex()),
		zap.String("from", string(profile.Verification.Status)),
		zap.String("to", string(updated.Status)))

	if s.cache != nil {
		s.cache.Del(ctx, statusCacheKey(profile.UserID))
	}
	return nil
}

func (s *ReviewService) audit(ctx context.Context, adminID primitive.ObjectID, action string, profile *models.PlayerProfile, note string) {
	err := utils.LogAuditEvent(ctx, adminID, action, "PlayerProfile", profile.ID.Hex(), map[string]interface{}{
		"note": note,
	})
	if err != nil {
		s.logger.Warn("audit log write failed",
			zap.String("action", action),
			zap.Error(err))
	}
}

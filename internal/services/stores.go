package services

import (
	"context"
	"time"

	"github.com/sportall/app-recruit/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileListFilter narrows a player profile listing
type ProfileListFilter struct {
	Status        models.VerificationStatus
	Division      string
	JucoCoachID   *primitive.ObjectID
	Positions     []string
	Search        string
	UpdatedBefore *time.Time
	UpdatedAfter  *time.Time
	Page          int
	Limit         int
}

// Normalize clamps pagination to sane bounds
func (f *ProfileListFilter) Normalize() {
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Page < 1 {
		f.Page = 1
	}
}

// ListMeta describes a page of results
type ListMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewListMeta computes pagination metadata for a result count
func NewListMeta(page, limit int, total int64) ListMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return ListMeta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// ProfileStore is the persistence boundary for player profiles. The
// verification services treat it as a keyed document store with atomic
// single-document updates.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.PlayerProfile, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PlayerProfile, error)
	Create(ctx context.Context, profile *models.PlayerProfile) error
	Update(ctx context.Context, profile *models.PlayerProfile) error
	List(ctx context.Context, filter ProfileListFilter) ([]models.PlayerProfile, int64, error)

	// UpdateVerification replaces the embedded verification record only if
	// the stored status still matches expected, so concurrent transitions
	// surface as models.ErrStateConflict instead of lost updates.
	UpdateVerification(ctx context.Context, profileID primitive.ObjectID, expected models.VerificationStatus, v models.Verification) error
}

// UserStore is the persistence boundary for accounts
type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, role string, page, limit int) ([]models.User, int64, error)
}

// ResetStore holds pending password-reset codes
type ResetStore interface {
	Upsert(ctx context.Context, reset *models.PasswordReset) error
	GetByEmail(ctx context.Context, email string) (*models.PasswordReset, error)
	Delete(ctx context.Context, email string) error
}

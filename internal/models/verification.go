package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationStatus is the current stage of a player's verification
type VerificationStatus string

// Verification statuses
const (
	StatusNone         VerificationStatus = "none"
	StatusEmailPending VerificationStatus = "email_pending"
	StatusPhonePending VerificationStatus = "phone_pending"
	StatusStatsPending VerificationStatus = "stats_pending"
	StatusInReview     VerificationStatus = "in_review"
	StatusVerified     VerificationStatus = "verified"
	StatusNeedsUpdates VerificationStatus = "needs_updates"
)

// Constants for verification configuration
const (
	VerificationCodeLength = 6
	MaxSupportingFiles     = 5
)

// EmailVerification holds the email channel state of a verification record.
// CodeHash and ExpiresAt are cleared once the channel is verified.
type EmailVerification struct {
	CodeHash   *string    `bson:"code_hash,omitempty" json:"-"`
	ExpiresAt  *time.Time `bson:"expires_at,omitempty" json:"-"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty" json:"verified_at,omitempty"`
	LastSentAt *time.Time `bson:"last_sent_at,omitempty" json:"last_sent_at,omitempty"`
}

// PhoneVerification holds the phone channel state of a verification record.
// The number persists once submitted; code checking is delegated to the
// OTP provider, so only the provider session id is stored locally.
type PhoneVerification struct {
	Number     string     `bson:"number,omitempty" json:"number,omitempty"`
	ServiceSID *string    `bson:"service_sid,omitempty" json:"-"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty" json:"verified_at,omitempty"`
	LastSentAt *time.Time `bson:"last_sent_at,omitempty" json:"last_sent_at,omitempty"`
}

// StatsSubmission holds the attested stats snapshot awaiting admin review
type StatsSubmission struct {
	Snapshot        map[string]interface{} `bson:"snapshot,omitempty" json:"snapshot,omitempty"`
	Attested        bool                   `bson:"attested" json:"attested"`
	SupportingFiles []string               `bson:"supporting_files,omitempty" json:"supporting_files,omitempty"`
	SubmittedAt     *time.Time             `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	ReviewerID      *primitive.ObjectID    `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewerNote    *string                `bson:"reviewer_note,omitempty" json:"reviewer_note,omitempty"`
	VerifiedAt      *time.Time             `bson:"verified_at,omitempty" json:"verified_at,omitempty"`
}

// HistoryEntry records one administrative decision on a verification record
type HistoryEntry struct {
	Status    VerificationStatus `bson:"status" json:"status"`
	Note      string             `bson:"note" json:"note"`
	Actor     primitive.ObjectID `bson:"actor" json:"actor"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Verification is the embedded verification record of a player profile.
// Transition methods return a modified copy; callers persist the result.
type Verification struct {
	Status    VerificationStatus `bson:"status" json:"status"`
	Email     EmailVerification  `bson:"email" json:"email"`
	Phone     PhoneVerification  `bson:"phone" json:"phone"`
	Stats     StatsSubmission    `bson:"stats" json:"stats"`
	History   []HistoryEntry     `bson:"history" json:"history"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewVerification returns the initial record for a freshly created profile
func NewVerification(now time.Time) Verification {
	return Verification{
		Status:    StatusNone,
		History:   []HistoryEntry{},
		UpdatedAt: now,
	}
}

// StartEmail stores a freshly issued email code and moves to email_pending
func (v Verification) StartEmail(codeHash string, expiresAt, now time.Time) Verification {
	v.Status = StatusEmailPending
	v.Email.CodeHash = &codeHash
	v.Email.ExpiresAt = &expiresAt
	v.Email.LastSentAt = &now
	v.UpdatedAt = now
	return v
}

// ConfirmEmail marks the email channel verified and clears the stored code
// so a replay of the same code fails
func (v Verification) ConfirmEmail(now time.Time) Verification {
	v.Status = StatusPhonePending
	v.Email.CodeHash = nil
	v.Email.ExpiresAt = nil
	verifiedAt := now
	v.Email.VerifiedAt = &verifiedAt
	v.UpdatedAt = now
	return v
}

// WithPhoneCode records an OTP session opened with the provider
func (v Verification) WithPhoneCode(number, serviceSID string, now time.Time) Verification {
	v.Status = StatusPhonePending
	v.Phone.Number = number
	v.Phone.ServiceSID = &serviceSID
	v.Phone.LastSentAt = &now
	v.UpdatedAt = now
	return v
}

// ConfirmPhone marks the phone channel verified and moves to stats_pending
func (v Verification) ConfirmPhone(now time.Time) Verification {
	v.Status = StatusStatsPending
	verifiedAt := now
	v.Phone.VerifiedAt = &verifiedAt
	v.UpdatedAt = now
	return v
}

// SubmitStats stores an attested snapshot and moves to in_review.
// Prior reviewer fields are cleared so a resubmission reads like a
// first submission.
func (v Verification) SubmitStats(snapshot map[string]interface{}, files []string, now time.Time) Verification {
	v.Status = StatusInReview
	submittedAt := now
	v.Stats = StatsSubmission{
		Snapshot:        snapshot,
		Attested:        true,
		SupportingFiles: files,
		SubmittedAt:     &submittedAt,
	}
	v.UpdatedAt = now
	return v
}

// Approve marks the record verified, stamping the reviewer and appending
// a history entry
func (v Verification) Approve(adminID primitive.ObjectID, note string, now time.Time) Verification {
	v.Status = StatusVerified
	v.Stats.ReviewerID = &adminID
	if note != "" {
		v.Stats.ReviewerNote = &note
	}
	verifiedAt := now
	v.Stats.VerifiedAt = &verifiedAt
	v.History = appendHistory(v.History, HistoryEntry{
		Status:    StatusVerified,
		Note:      note,
		Actor:     adminID,
		CreatedAt: now,
	})
	v.UpdatedAt = now
	return v
}

// Reject sends the record back to the player for updates, stamping the
// reviewer note and appending a history entry
func (v Verification) Reject(adminID primitive.ObjectID, note string, now time.Time) Verification {
	v.Status = StatusNeedsUpdates
	v.Stats.ReviewerID = &adminID
	v.Stats.ReviewerNote = &note
	v.History = appendHistory(v.History, HistoryEntry{
		Status:    StatusNeedsUpdates,
		Note:      note,
		Actor:     adminID,
		CreatedAt: now,
	})
	v.UpdatedAt = now
	return v
}

// CanSubmitStats reports whether the stats stage guard allows submission
func (v Verification) CanSubmitStats() bool {
	return v.Status == StatusStatsPending || v.Status == StatusNeedsUpdates
}

// appendHistory copies before appending so transition methods stay pure
func appendHistory(history []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(history), len(history)+1)
	copy(out, history)
	return append(out, entry)
}

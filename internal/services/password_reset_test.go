package services

import (
	"context"
	"testing"
	"time"

	"github.com/sportall/app-recruit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type resetFixture struct {
	svc    *PasswordResetService
	users  *fakeUserStore
	resets *fakeResetStore
	email  *fakeEmailSender
	clock  *fakeClock
	user   *models.User
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	setupTestConfig()

	clock := newFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	users := newFakeUserStore()
	resets := newFakeResetStore()
	email := &fakeEmailSender{}
	user := users.seed("player@example.com", "player")

	svc := NewPasswordResetService(users, resets, email, nil, nil).WithClock(clock.Now)

	return &resetFixture{svc: svc, users: users, resets: resets, email: email, clock: clock, user: user}
}

func TestPasswordResetRequest(t *testing.T) {
	f := newResetFixture(t)

	require.NoError(t, f.svc.Request(context.Background(), "player@example.com"))

	assert.Equal(t, 1, f.email.sentCount())
	reset, err := f.resets.GetByEmail(context.Background(), "player@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, f.email.lastCode(), reset.CodeHash, "raw code is never stored")
}

func TestPasswordResetRequest_UnknownEmail(t *testing.T) {
	f := newResetFixture(t)

	// No signal whether the account exists
	require.NoError(t, f.svc.Request(context.Background(), "nobody@example.com"))
	assert.Equal(t, 0, f.email.sentCount())
}

func TestPasswordResetConfirm(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Request(ctx, "player@example.com"))
	code := f.email.lastCode()

	require.NoError(t, f.svc.Confirm(ctx, "player@example.com", code, "new-password-123"))

	user, err := f.users.GetByID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password-123")))
	require.NotNil(t, user.PasswordChangedAt)
	assert.Equal(t, f.clock.Now(), *user.PasswordChangedAt)

	// Redeemed code is gone
	_, err = f.resets.GetByEmail(ctx, "player@example.com")
	assert.ErrorIs(t, err, models.ErrInvalidCode)
}

func TestPasswordResetConfirm_Replay(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Request(ctx, "player@example.com"))
	code := f.email.lastCode()
	require.NoError(t, f.svc.Confirm(ctx, "player@example.com", code, "new-password-123"))

	err := f.svc.Confirm(ctx, "player@example.com", code, "another-password")
	assert.ErrorIs(t, err, models.ErrInvalidCode)
	assert.Equal(t, 1, f.users.passwordUpdates)
}

func TestPasswordResetConfirm_WrongCode(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Request(ctx, "player@example.com"))

	err := f.svc.Confirm(ctx, "player@example.com", "000000", "new-password-123")
	assert.ErrorIs(t, err, models.ErrInvalidCode)
	assert.Equal(t, 0, f.users.passwordUpdates)
}

func TestPasswordResetConfirm_Expired(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Request(ctx, "player@example.com"))
	code := f.email.lastCode()

	f.clock.Advance(10*time.Minute + time.Second)
	err := f.svc.Confirm(ctx, "player@example.com", code, "new-password-123")
	assert.ErrorIs(t, err, models.ErrInvalidCode)
}

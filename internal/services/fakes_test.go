package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// setupTestConfig installs a config with the production timing defaults
// so the services under test see real cooldown and TTL values
func setupTestConfig() {
	config.AppConfig = &config.Config{
		CodeTTL:              10 * time.Minute,
		EmailCooldown:        60 * time.Second,
		PhoneCooldown:        60 * time.Second,
		StatusCacheTTL:       30 * time.Second,
		PasswordResetWindow:  5 * time.Minute,
		PasswordResetMaxReqs: 2,
		AuditLogsEnabled:     false,
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeProfileStore keeps profiles in memory and enforces the same
// conditional verification update the Mongo store does
type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]*models.PlayerProfile

	// beforeUpdate runs inside UpdateVerification before the status check,
	// so tests can simulate a concurrent transition
	beforeUpdate func()
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[primitive.ObjectID]*models.PlayerProfile)}
}

func (s *fakeProfileStore) seed(userID primitive.ObjectID, v models.Verification) *models.PlayerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &models.PlayerProfile{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		FullName:     "Test Player",
		Verification: v,
	}
	s.profiles[p.ID] = p
	return p
}

func (s *fakeProfileStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, models.ErrProfileNotFound
}

func (s *fakeProfileStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProfileStore) Create(ctx context.Context, profile *models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *fakeProfileStore) Update(ctx context.Context, profile *models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; !ok {
		return models.ErrProfileNotFound
	}
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *fakeProfileStore) List(ctx context.Context, filter ProfileListFilter) ([]models.PlayerProfile, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PlayerProfile
	for _, p := range s.profiles {
		if filter.Status != "" && p.Verification.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *fakeProfileStore) UpdateVerification(ctx context.Context, profileID primitive.ObjectID, expected models.VerificationStatus, v models.Verification) error {
	if s.beforeUpdate != nil {
		s.beforeUpdate()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[profileID]
	if !ok {
		return models.ErrProfileNotFound
	}
	if p.Verification.Status != expected {
		return models.ErrStateConflict
	}
	p.Verification = v
	return nil
}

// current returns the stored verification record for assertions
func (s *fakeProfileStore) current(profileID primitive.ObjectID) models.Verification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[profileID].Verification
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User

	passwordUpdates int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeUserStore) seed(email, role string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{
		ID:    primitive.NewObjectID(),
		Email: email,
		Role:  role,
	}
	s.users[u.ID] = u
	return u
}

func (s *fakeUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (s *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = &changedAt
	s.passwordUpdates++
	return nil
}

func (s *fakeUserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) List(ctx context.Context, role string, page, limit int) ([]models.User, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type sentEmail struct {
	To      string
	Subject string
	Code    string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	fail bool
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, sentEmail{To: to, Subject: subject})
	return nil
}

func (s *fakeEmailSender) SendVerificationCode(ctx context.Context, to, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp down")
	}
	s.sent = append(s.sent, sentEmail{To: to, Code: code})
	return nil
}

func (s *fakeEmailSender) lastCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return ""
	}
	return s.sent[len(s.sent)-1].Code
}

func (s *fakeEmailSender) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type fakeSMSVerifier struct {
	mu       sync.Mutex
	started  []string
	approved bool
	failSend bool
}

func (s *fakeSMSVerifier) StartVerification(ctx context.Context, phoneNumber string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSend {
		return "", errors.New("twilio unavailable")
	}
	s.started = append(s.started, phoneNumber)
	return "VE-test", nil
}

func (s *fakeSMSVerifier) CheckVerification(ctx context.Context, phoneNumber, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.approved, nil
}

type sentNotification struct {
	UserID  primitive.ObjectID
	Subject string
	Message string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (n *fakeNotifier) Notify(userID primitive.ObjectID, subject, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Subject: subject, Message: message})
}

func (n *fakeNotifier) subjects() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, s := range n.sent {
		out[i] = s.Subject
	}
	return out
}

type fakeResetStore struct {
	mu     sync.Mutex
	resets map[string]*models.PasswordReset
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{resets: make(map[string]*models.PasswordReset)}
}

func (s *fakeResetStore) Upsert(ctx context.Context, reset *models.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *reset
	s.resets[reset.Email] = &cp
	return nil
}

func (s *fakeResetStore) GetByEmail(ctx context.Context, email string) (*models.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.resets[email]
	if !ok {
		return nil, models.ErrInvalidCode
	}
	cp := *r
	return &cp, nil
}

func (s *fakeResetStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resets, email)
	return nil
}

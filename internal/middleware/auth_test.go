package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

type stubUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func (s *stubUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, models.ErrUserNotFound
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string, changedAt time.Time) error {
	return nil
}

func (s *stubUserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	return nil
}

func (s *stubUserStore) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func (s *stubUserStore) List(ctx context.Context, role string, page, limit int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func signToken(t *testing.T, user *models.User, coachType string, issuedAt time.Time) string {
	t.Helper()
	claims := models.JWTClaims{
		Role:      user.Role,
		CoachType: coachType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authRouter(store *stubUserStore, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(store)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c).Hex(), "role": Role(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: testSecret}
	user := &models.User{ID: primitive.NewObjectID(), Email: "p@example.com", Role: models.RolePlayer}
	store := &stubUserStore{users: map[primitive.ObjectID]*models.User{user.ID: user}}
	r := authRouter(store)

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doRequest(r, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		claims := models.JWTClaims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		require.NoError(t, err)
		w := doRequest(r, forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, user, "", time.Now().Add(-2*time.Hour))
		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown account", func(t *testing.T) {
		ghost := &models.User{ID: primitive.NewObjectID(), Role: models.RolePlayer}
		token := signToken(t, ghost, "", time.Now())
		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, user, "", time.Now())
		w := doRequest(r, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.Hex())
	})

	t.Run("token issued before password change", func(t *testing.T) {
		changed := time.Now()
		changedUser := &models.User{
			ID:                primitive.NewObjectID(),
			Role:              models.RolePlayer,
			PasswordChangedAt: &changed,
		}
		store.users[changedUser.ID] = changedUser

		token := signToken(t, changedUser, "", changed.Add(-time.Minute))
		w := doRequest(r, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		fresh := signToken(t, changedUser, "", changed.Add(time.Minute))
		w = doRequest(r, fresh)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRoleGates(t *testing.T) {
	config.AppConfig = &config.Config{JWTSecret: testSecret}

	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	player := &models.User{ID: primitive.NewObjectID(), Role: models.RolePlayer}
	ncaa := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCoach}
	juco := &models.User{ID: primitive.NewObjectID(), Role: models.RoleCoach}
	store := &stubUserStore{users: map[primitive.ObjectID]*models.User{
		admin.ID: admin, player.ID: player, ncaa.ID: ncaa, juco.ID: juco,
	}}

	cases := []struct {
		name      string
		gate      gin.HandlerFunc
		user      *models.User
		coachType string
		want      int
	}{
		{"admin gate allows admin", RequireAdmin(), admin, "", http.StatusOK},
		{"admin gate blocks player", RequireAdmin(), player, "", http.StatusForbidden},
		{"admin gate blocks coach", RequireAdmin(), ncaa, models.CoachTypeNCAA, http.StatusForbidden},
		{"recruiter gate allows ncaa coach", RequireRecruiter(), ncaa, models.CoachTypeNCAA, http.StatusOK},
		{"recruiter gate allows admin", RequireRecruiter(), admin, "", http.StatusOK},
		{"recruiter gate blocks juco coach", RequireRecruiter(), juco, models.CoachTypeJuco, http.StatusForbidden},
		{"recruiter gate blocks player", RequireRecruiter(), player, "", http.StatusForbidden},
		{"juco gate allows juco coach", RequireJucoCoach(), juco, models.CoachTypeJuco, http.StatusOK},
		{"juco gate allows admin", RequireJucoCoach(), admin, "", http.StatusOK},
		{"juco gate blocks ncaa coach", RequireJucoCoach(), ncaa, models.CoachTypeNCAA, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := authRouter(store, tc.gate)
			token := signToken(t, tc.user, tc.coachType, time.Now())
			w := doRequest(r, token)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

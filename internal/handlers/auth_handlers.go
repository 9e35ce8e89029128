package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration, login and password reset
type AuthHandler struct {
	users    services.UserStore
	profiles services.ProfileStore
	resets   *services.PasswordResetService
	logger   *logging.SafeLogger
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(users services.UserStore, profiles services.ProfileStore, resets *services.PasswordResetService, logger *logging.SafeLogger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		profiles: profiles,
		resets:   resets,
		logger:   logger.With(zap.String("handler", "auth")),
	}
}

// Register godoc
// @Summary Register an account
// @Description Creates a player or coach account and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.RegisterRequest true "Registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	// Players get an empty profile immediately so verification starts
	// from a known record
	if req.Role == models.RolePlayer {
		profile := &models.PlayerProfile{
			UserID:        user.ID,
			ContactAccess: models.ContactAccessPending,
			Verification:  models.NewVerification(now),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := h.profiles.Create(c.Request.Context(), profile); err != nil {
			h.logger.Error("failed to create player profile on registration",
				zap.String("user_id", user.ID.Hex()),
				zap.Error(err))
		}
	}

	token, err := h.issueToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: *user})
}

// Login godoc
// @Summary Log in
// @Description Exchanges email and password for a token
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := h.issueToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

// RequestPasswordReset godoc
// @Summary Request a password reset code
// @Description Always returns success; a code is only mailed for known,
// @Description non-throttled accounts
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.PasswordResetRequest true "Account email"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/password-reset/request [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.resets.Request(c.Request.Context(), email); err != nil {
		// Keep the no-signal contract even on provider failure
		h.logger.Error("password reset request failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ConfirmPasswordReset godoc
// @Summary Redeem a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.PasswordResetConfirm true "Email, code and new password"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req models.PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.resets.Confirm(c.Request.Context(), email, req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// issueToken signs a JWT for a user. Coach tokens carry the coach type so
// role gates don't need a profile lookup per request.
func (h *AuthHandler) issueToken(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	claims := models.JWTClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.JWTTTL)),
			Issuer:    "app-recruit",
		},
	}

	if user.Role == models.RoleCoach {
		var coach models.CoachProfile
		err := config.MongoDB.Collection(config.AppConfig.CoachProfileCollection).
			FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&coach)
		if err == nil {
			claims.CoachType = coach.CoachType
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

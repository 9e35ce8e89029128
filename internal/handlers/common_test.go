package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", models.NewValidationError("code", "code is required"), http.StatusBadRequest, "code is required"},
		{"invalid code", models.ErrInvalidCode, http.StatusBadRequest, "Invalid or expired code"},
		{"wrapped invalid code", errors.New("x"), http.StatusInternalServerError, "Internal server error"},
		{"phone missing", models.ErrPhoneNumberMissing, http.StatusBadRequest, "Phone verification not started"},
		{"note required", models.ErrNoteRequired, http.StatusBadRequest, "A note is required"},
		{"rate limited", &models.RateLimitedError{RetryAfterSeconds: 40}, http.StatusTooManyRequests, `"retry_after":40`},
		{"state guard", &models.StateGuardError{Operation: "submit stats", Status: models.StatusVerified}, http.StatusBadRequest, "Stats cannot be submitted"},
		{"profile not found", models.ErrProfileNotFound, http.StatusNotFound, "Profile not found"},
		{"user not found", models.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"favorite not found", models.ErrFavoriteNotFound, http.StatusNotFound, "Favorite not found"},
		{"favorite exists", models.ErrFavoriteExists, http.StatusConflict, "already favorited"},
		{"email exists", models.ErrEmailExists, http.StatusConflict, "already registered"},
		{"state conflict", models.ErrStateConflict, http.StatusConflict, "please retry"},
		{"provider", &models.ProviderError{Provider: "sms", Err: errors.New("down")}, http.StatusBadGateway, "Delivery provider unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

			respondError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), tc.body)
		})
	}
}

func TestRespondError_RateLimitOmitsZeroRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	respondError(c, models.ErrInvalidCode)
	assert.NotContains(t, w.Body.String(), "retry_after")
}

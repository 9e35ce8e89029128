package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body for any failed request
type ErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

// SuccessResponse is the JSON body for simple successful mutations
type SuccessResponse struct {
	Success bool   `json:"success"`
	Next    string `json:"next,omitempty"`
}

// ListResponse wraps a page of results with pagination metadata
type ListResponse struct {
	Data interface{}       `json:"data"`
	Meta services.ListMeta `json:"meta"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// parseObjectID reads an object id path parameter, responding 400 itself
// when the value is malformed
func parseObjectID(c *gin.Context, name string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid id"})
	}
	return oid, err
}

// intQuery parses an integer query parameter with a fallback
func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// respondError maps domain errors onto HTTP statuses. Unexpected errors
// are logged and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var rateErr *models.RateLimitedError
	var guardErr *models.StateGuardError
	var providerErr *models.ProviderError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
	case errors.Is(err, models.ErrInvalidCode):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired code"})
	case errors.Is(err, models.ErrPhoneNumberMissing):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Phone verification not started"})
	case errors.Is(err, models.ErrNoteRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A note is required when rejecting"})
	case errors.As(err, &rateErr):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{
			Error:      "Please wait before requesting another code",
			RetryAfter: rateErr.RetryAfterSeconds,
		})
	case errors.As(err, &guardErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Stats cannot be submitted at this stage"})
	case errors.Is(err, models.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
	case errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, models.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Favorite not found"})
	case errors.Is(err, models.ErrFavoriteExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Player already favorited"})
	case errors.Is(err, models.ErrEmailExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
	case errors.Is(err, models.ErrStateConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Record changed, please retry"})
	case errors.As(err, &providerErr):
		observability.Logger().Error("provider call failed",
			zap.String("provider", providerErr.Provider),
			zap.Error(providerErr.Err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Delivery provider unavailable"})
	default:
		observability.Logger().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

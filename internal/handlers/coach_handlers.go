package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/middleware"
	"github.com/sportall/app-recruit/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CoachHandler serves coach profile CRUD
type CoachHandler struct {
	logger *logging.SafeLogger
}

// NewCoachHandler creates a CoachHandler
func NewCoachHandler(logger *logging.SafeLogger) *CoachHandler {
	return &CoachHandler{logger: logger.With(zap.String("handler", "coaches"))}
}

func (h *CoachHandler) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.CoachProfileCollection)
}

// UpsertMe godoc
// @Summary Create or update my coach profile
// @Tags coaches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.CoachProfile true "Profile fields"
// @Success 200 {object} models.CoachProfile
// @Failure 400 {object} ErrorResponse
// @Router /coaches [post]
func (h *CoachHandler) UpsertMe(c *gin.Context) {
	var input models.CoachProfile
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if input.CoachType != models.CoachTypeJuco && input.CoachType != models.CoachTypeNCAA {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "coach_type must be JUCO or NCAA"})
		return
	}

	now := time.Now()
	input.ID = primitive.NilObjectID
	input.UserID = middleware.UserID(c)
	input.ProgramNameNormalized = strings.ToLower(strings.TrimSpace(input.ProgramName))
	input.UpdatedAt = now

	update := bson.M{
		"$set":         &input,
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := h.collection().UpdateOne(c.Request.Context(), bson.M{"user_id": input.UserID}, update, opts); err != nil {
		respondError(c, err)
		return
	}

	var saved models.CoachProfile
	if err := h.collection().FindOne(c.Request.Context(), bson.M{"user_id": input.UserID}).Decode(&saved); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Me godoc
// @Summary Get my coach profile
// @Tags coaches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CoachProfile
// @Failure 404 {object} ErrorResponse
// @Router /coaches/me [get]
func (h *CoachHandler) Me(c *gin.Context) {
	var profile models.CoachProfile
	err := h.collection().FindOne(c.Request.Context(), bson.M{"user_id": middleware.UserID(c)}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Get godoc
// @Summary Get a coach profile
// @Tags coaches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Profile id"
// @Success 200 {object} models.CoachProfile
// @Failure 404 {object} ErrorResponse
// @Router /coaches/{id} [get]
func (h *CoachHandler) Get(c *gin.Context) {
	profileID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	var profile models.CoachProfile
	err = h.collection().FindOne(c.Request.Context(), bson.M{"_id": profileID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

package handlers

import (
	"net/http"
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

// FavoriteHandler serves a coach's favorited players
type FavoriteHandler struct {
	logger *logging.SafeLogger
}

// NewFavoriteHandler creates a FavoriteHandler
func NewFavoriteHandler(logger *logging.SafeLogger) *FavoriteHandler {
	return &FavoriteHandler{logger: logger.With(zap.String("handler", "favorites"))}
}

func (h *FavoriteHandler) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.FavoriteCollection)
}

// Add godoc
// @Summary Favorite a player
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.FavoriteInput true "Player and note"
// @Success 201 {object} models.FavoritePlayer
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	var input models.FavoriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	playerID, err := primitive.ObjectIDFromHex(input.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid player id"})
		return
	}

	now := time.Now()
	favorite := models.FavoritePlayer{
		CoachID:   middleware.UserID(c),
		PlayerID:  playerID,
		Note:      input.Note,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := h.collection().InsertOne(c.Request.Context(), favorite)
	if mongo.IsDuplicateKeyError(err) {
		respondError(c, models.ErrFavoriteExists)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		favorite.ID = oid
	}
	c.JSON(http.StatusCreated, favorite)
}

// List godoc
// @Summary List my favorited players
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListResponse
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := h.collection().Find(c.Request.Context(), bson.M{"coach_id": middleware.UserID(c)}, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	defer cursor.Close(c.Request.Context())

	var favorites []models.FavoritePlayer
	if err := cursor.All(c.Request.Context(), &favorites); err != nil {
		respondError(c, err)
		return
	}
	if favorites == nil {
		favorites = []models.FavoritePlayer{}
	}
	c.JSON(http.StatusOK, gin.H{"data": favorites})
}

type favoriteUpdateRequest struct {
	Note string   `json:"note" binding:"max=2000"`
	Tags []string `json:"tags"`
}

// Update godoc
// @Summary Update a favorite's note and tags
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Favorite id"
// @Param data body favoriteUpdateRequest true "Note and tags"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /favorites/{id} [patch]
func (h *FavoriteHandler) Update(c *gin.Context) {
	favoriteID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	var req favoriteUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.collection().UpdateOne(c.Request.Context(),
		bson.M{"_id": favoriteID, "coach_id": middleware.UserID(c)},
		bson.M{"$set": bson.M{"note": req.Note, "tags": req.Tags, "updated_at": time.Now()}},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		respondError(c, models.ErrFavoriteNotFound)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Remove godoc
// @Summary Remove a favorite
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Favorite id"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	favoriteID, err := parseObjectID(c, "id")
	if err != nil {
		return
	}

	result, err := h.collection().DeleteOne(c.Request.Context(),
		bson.M{"_id": favoriteID, "coach_id": middleware.UserID(c)})
	if err != nil {
		respondError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		respondError(c, models.ErrFavoriteNotFound)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoritePlayer links a coach to a player they are tracking
type FavoritePlayer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CoachID   primitive.ObjectID `bson:"coach_id" json:"coach_id"`
	PlayerID  primitive.ObjectID `bson:"player_id" json:"player_id"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	Tags      []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// FavoriteInput represents the writable fields of a favorite
type FavoriteInput struct {
	PlayerID string   `json:"player_id" binding:"required"`
	Note     string   `json:"note,omitempty" binding:"omitempty,max=2000"`
	Tags     []string `json:"tags,omitempty"`
}

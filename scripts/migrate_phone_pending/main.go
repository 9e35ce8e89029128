package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// One-off migration: phone verification became provider-backed, so
// profiles parked in phone_pending move straight to stats_pending.
func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	config.InitMongoDB()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := time.Now()
	result, err := config.MongoDB.Collection(config.AppConfig.PlayerProfileCollection).UpdateMany(ctx,
		bson.M{"verification.status": models.StatusPhonePending},
		bson.M{"$set": bson.M{
			"verification.status":     models.StatusStatsPending,
			"verification.updated_at": now,
		}},
	)
	if err != nil {
		logging.Logger.Fatal("migration failed", zap.Error(err))
	}

	logging.Logger.Info("migration complete",
		zap.Int64("updated", result.ModifiedCount))
}

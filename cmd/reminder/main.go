package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Stage-specific reminder messages
var reminderMessages = map[models.VerificationStatus]string{
	models.StatusEmailPending: "Verify your email to continue your Sportall verification.",
	models.StatusPhonePending: "Verify your phone number to continue your Sportall verification.",
	models.StatusStatsPending: "Submit your stats to finish your Sportall verification.",
}

// Nudges players whose verification has been stuck in a pending stage for
// longer than the configured age, and mails an admin summary. Meant to run
// from cron.
func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	config.InitMongoDB()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-config.AppConfig.ReminderAge)
	filter := bson.M{
		"verification.status": bson.M{"$in": []models.VerificationStatus{
			models.StatusEmailPending,
			models.StatusPhonePending,
			models.StatusStatsPending,
		}},
		"verification.updated_at": bson.M{"$lte": cutoff},
	}

	cursor, err := config.MongoDB.Collection(config.AppConfig.PlayerProfileCollection).Find(ctx, filter)
	if err != nil {
		logging.Logger.Fatal("failed to query stuck profiles", zap.Error(err))
	}
	defer cursor.Close(ctx)

	var profiles []models.PlayerProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		logging.Logger.Fatal("failed to decode stuck profiles", zap.Error(err))
	}

	logging.Logger.Info("found profiles needing reminders", zap.Int("count", len(profiles)))

	reminded := 0
	for _, profile := range profiles {
		var user models.User
		err := config.MongoDB.Collection(config.AppConfig.UserCollection).
			FindOne(ctx, bson.M{"_id": profile.UserID}).Decode(&user)
		if err != nil {
			logging.Logger.Warn("reminder recipient lookup failed",
				zap.String("user_id", profile.UserID.Hex()),
				zap.Error(err))
			continue
		}

		message, ok := reminderMessages[profile.Verification.Status]
		if !ok {
			message = "Please continue your verification steps on Sportall."
		}

		html := "<p>" + message + "</p>"
		if err := utils.SendEmail(ctx, user.Email, "Sportall verification reminder", html); err != nil {
			logging.Logger.Warn("reminder delivery failed",
				zap.String("user_id", profile.UserID.Hex()),
				zap.Error(err))
			continue
		}
		reminded++
	}

	if config.AppConfig.AdminAlertEmail != "" {
		html := fmt.Sprintf("<p>%d users are awaiting verification action as of %s.</p>",
			len(profiles), time.Now().UTC().Format(time.RFC3339))
		if err := utils.SendEmail(ctx, config.AppConfig.AdminAlertEmail,
			"Sportall verification reminder summary", html); err != nil {
			logging.Logger.Warn("admin alert failed", zap.Error(err))
		}
	}

	logging.Logger.Info("reminder run complete",
		zap.Int("stuck", len(profiles)),
		zap.Int("reminded", reminded))
}

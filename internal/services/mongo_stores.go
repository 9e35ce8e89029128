package services

import (
	"context"
	"regexp"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/models"
	"github.com/sportall/app-recruit/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileStore implements ProfileStore on the player_profiles collection
type MongoProfileStore struct{}

// NewMongoProfileStore creates a MongoProfileStore
func NewMongoProfileStore() *MongoProfileStore {
	return &MongoProfileStore{}
}

func (s *MongoProfileStore) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.PlayerProfileCollection)
}

// GetByUserID fetches the profile owned by a user
func (s *MongoProfileStore) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	err := s.collection().FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrProfileNotFound
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("find_profile", "error").Inc()
		return nil, err
	}
	observability.DatabaseOperations.WithLabelValues("find_profile", "success").Inc()
	return &profile, nil
}

// GetByID fetches a profile by its own id
func (s *MongoProfileStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrProfileNotFound
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("find_profile", "error").Inc()
		return nil, err
	}
	observability.DatabaseOperations.WithLabelValues("find_profile", "success").Inc()
	return &profile, nil
}

// Create inserts a new profile
func (s *MongoProfileStore) Create(ctx context.Context, profile *models.PlayerProfile) error {
	result, err := s.collection().InsertOne(ctx, profile)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("create_profile", "error").Inc()
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid
	}
	observability.DatabaseOperations.WithLabelValues("create_profile", "success").Inc()
	return nil
}

// Update replaces a profile document
func (s *MongoProfileStore) Update(ctx context.Context, profile *models.PlayerProfile) error {
	result, err := s.collection().ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("update_profile", "error").Inc()
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrProfileNotFound
	}
	observability.DatabaseOperations.WithLabelValues("update_profile", "success").Inc()
	return nil
}

// List fetches a filtered page of profiles sorted by most recent
// verification activity
func (s *MongoProfileStore) List(ctx context.Context, filter ProfileListFilter) ([]models.PlayerProfile, int64, error) {
	filter.Normalize()

	query := bson.M{}
	if filter.Status != "" {
		query["verification.status"] = filter.Status
	}
	if filter.Division != "" {
		query["division"] = filter.Division
	}
	if filter.JucoCoachID != nil {
		query["juco_coach_id"] = *filter.JucoCoachID
	}
	if len(filter.Positions) > 0 {
		query["positions"] = bson.M{"$in": filter.Positions}
	}
	if filter.UpdatedBefore != nil || filter.UpdatedAfter != nil {
		window := bson.M{}
		if filter.UpdatedBefore != nil {
			window["$lte"] = *filter.UpdatedBefore
		}
		if filter.UpdatedAfter != nil {
			window["$gte"] = *filter.UpdatedAfter
		}
		query["verification.updated_at"] = window
	}
	if filter.Search != "" {
		escaped := regexp.QuoteMeta(filter.Search)
		pattern := primitive.Regex{Pattern: escaped, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"full_name": pattern},
			bson.M{"school": pattern},
		}
	}

	total, err := s.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "verification.updated_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := s.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var profiles []models.PlayerProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// UpdateVerification conditionally replaces the verification record
func (s *MongoProfileStore) UpdateVerification(ctx context.Context, profileID primitive.ObjectID, expected models.VerificationStatus, v models.Verification) error {
	result, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": profileID, "verification.status": expected},
		bson.M{"$set": bson.M{
			"verification": v,
			"updated_at":   v.UpdatedAt,
		}},
	)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("update_verification", "error").Inc()
		return err
	}
	if result.MatchedCount == 0 {
		// Either the profile vanished or another request moved the status
		observability.DatabaseOperations.WithLabelValues("update_verification", "conflict").Inc()
		return models.ErrStateConflict
	}
	observability.DatabaseOperations.WithLabelValues("update_verification", "success").Inc()
	return nil
}

// MongoUserStore implements UserStore on the users collection
type MongoUserStore struct{}

// NewMongoUserStore creates a MongoUserStore
func NewMongoUserStore() *MongoUserStore {
	return &MongoUserStore{}
}

func (s *MongoUserStore) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.UserCollection)
}

// GetByID fetches a user by id
func (s *MongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user, mapping duplicate emails to ErrEmailExists
func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	result, err := s.collection().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrEmailExists
	}
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// UpdatePassword replaces the password hash and stamps the change time,
// invalidating tokens issued before it
func (s *MongoUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string, changedAt time.Time) error {
	result, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"password_hash":       passwordHash,
			"password_changed_at": changedAt,
			"updated_at":          changedAt,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// UpdateRole changes a user's role
func (s *MongoUserStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	result, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// Delete removes a user
func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// List fetches a page of users, optionally filtered by role
func (s *MongoUserStore) List(ctx context.Context, role string, page, limit int) ([]models.User, int64, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}

	query := bson.M{}
	if role != "" {
		query["role"] = role
	}

	total, err := s.collection().CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// MongoResetStore implements ResetStore on the password_resets collection
type MongoResetStore struct{}

// NewMongoResetStore creates a MongoResetStore
func NewMongoResetStore() *MongoResetStore {
	return &MongoResetStore{}
}

func (s *MongoResetStore) collection() *mongo.Collection {
	return config.MongoDB.Collection(config.AppConfig.PasswordResetCollection)
}

// Upsert stores a pending reset code, replacing any earlier one
func (s *MongoResetStore) Upsert(ctx context.Context, reset *models.PasswordReset) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.collection().ReplaceOne(ctx, bson.M{"email": reset.Email}, reset, opts)
	return err
}

// GetByEmail fetches the pending reset code for an email
func (s *MongoResetStore) GetByEmail(ctx context.Context, email string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	err := s.collection().FindOne(ctx, bson.M{"email": email}).Decode(&reset)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrInvalidCode
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

// Delete removes a redeemed reset code
func (s *MongoResetStore) Delete(ctx context.Context, email string) error {
	_, err := s.collection().DeleteOne(ctx, bson.M{"email": email})
	return err
}

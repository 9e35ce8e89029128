package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContainers holds references to test containers
type TestContainers struct {
	MongoContainer *mongodb.MongoDBContainer
	RedisContainer *redis.RedisContainer
	MongoDB        *mongo.Database
	Cleanup        func()
}

// SetupTestContainers starts MongoDB and Redis containers for testing
func SetupTestContainers(t *testing.T) *TestContainers {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx,
		"mongo:7.0",
		mongodb.WithUsername("root"),
		mongodb.WithPassword("password"),
	)
	require.NoError(t, err, "Failed to start MongoDB container")

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
	)
	require.NoError(t, err, "Failed to start Redis container")

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	redisURI, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	require.NoError(t, err, "Failed to connect to MongoDB")

	err = mongoClient.Ping(ctx, nil)
	require.NoError(t, err, "Failed to ping MongoDB")

	database := mongoClient.Database("recruit_test")

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}

	config.AppConfig.MongoURI = mongoURI
	config.AppConfig.MongoDatabase = "recruit_test"
	config.AppConfig.RedisURI = redisURI
	config.AppConfig.UserCollection = "users"
	config.AppConfig.PlayerProfileCollection = "player_profiles"
	config.AppConfig.CoachProfileCollection = "coach_profiles"
	config.AppConfig.FavoriteCollection = "favorite_players"
	config.AppConfig.AuditLogCollection = "audit_logs"
	config.AppConfig.PasswordResetCollection = "password_resets"
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTTTL = time.Hour
	config.AppConfig.CodeTTL = 10 * time.Minute
	config.AppConfig.EmailCooldown = 60 * time.Second
	config.AppConfig.PhoneCooldown = 60 * time.Second
	config.AppConfig.StatusCacheTTL = 30 * time.Second
	config.AppConfig.PasswordResetWindow = 5 * time.Minute
	config.AppConfig.PasswordResetMaxReqs = 2
	config.AppConfig.AuditLogsEnabled = false
	config.AppConfig.IndexMaintenanceInterval = time.Hour

	// Set global MongoDB reference
	config.MongoDB = database

	cleanup := func() {
		if mongoClient != nil {
			ctx := context.Background()
			mongoClient.Disconnect(ctx)
		}
		if mongoContainer != nil {
			mongoContainer.Terminate(ctx)
		}
		if redisContainer != nil {
			redisContainer.Terminate(ctx)
		}
	}

	return &TestContainers{
		MongoContainer: mongoContainer,
		RedisContainer: redisContainer,
		MongoDB:        database,
		Cleanup:        cleanup,
	}
}

// CleanupDatabase drops all collections in the test database
func CleanupDatabase(t *testing.T, db *mongo.Database) {
	ctx := context.Background()
	collections, err := db.ListCollectionNames(ctx, map[string]interface{}{})
	require.NoError(t, err, "Failed to list collections")

	for _, collection := range collections {
		err := db.Collection(collection).Drop(ctx)
		require.NoError(t, err, fmt.Sprintf("Failed to drop collection %s", collection))
	}
}

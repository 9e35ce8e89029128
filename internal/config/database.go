package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/redisclient"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}
	startIndexMaintenance()

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks credentials embedded in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// indexSpec pairs a collection name with the index models it requires
type indexSpec struct {
	collection string
	models     []mongo.IndexModel
}

// EnsureIndexes creates required indexes if they don't exist
func EnsureIndexes() error {
	logger := logging.Logger.With(zap.String("component", "database"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	specs := []indexSpec{
		{
			collection: AppConfig.UserCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetName("email_1").SetUnique(true),
				},
			},
		},
		{
			collection: AppConfig.PlayerProfileCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}},
					Options: options.Index().SetName("user_id_1").SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "verification.status", Value: 1}},
					Options: options.Index().SetName("verification_status_1"),
				},
				{
					Keys:    bson.D{{Key: "verification.updated_at", Value: -1}},
					Options: options.Index().SetName("verification_updated_at_1"),
				},
				{
					Keys:    bson.D{{Key: "school_normalized", Value: 1}},
					Options: options.Index().SetName("school_normalized_1"),
				},
				{
					Keys:    bson.D{{Key: "positions", Value: 1}},
					Options: options.Index().SetName("positions_1"),
				},
				{
					Keys:    bson.D{{Key: "juco_coach_id", Value: 1}},
					Options: options.Index().SetName("juco_coach_id_1"),
				},
			},
		},
		{
			collection: AppConfig.CoachProfileCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "user_id", Value: 1}},
					Options: options.Index().SetName("user_id_1").SetUnique(true),
				},
				{
					Keys:    bson.D{{Key: "program_name_normalized", Value: 1}},
					Options: options.Index().SetName("program_name_normalized_1"),
				},
			},
		},
		{
			collection: AppConfig.FavoriteCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "coach_id", Value: 1}, {Key: "player_id", Value: 1}},
					Options: options.Index().SetName("coach_id_1_player_id_1").SetUnique(true),
				},
			},
		},
		{
			collection: AppConfig.AuditLogCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "actor_id", Value: 1}},
					Options: options.Index().SetName("actor_id_1"),
				},
				{
					Keys:    bson.D{{Key: "action", Value: 1}, {Key: "entity_type", Value: 1}},
					Options: options.Index().SetName("action_1_entity_type_1"),
				},
				{
					// Keep audit logs for one year
					Keys:    bson.D{{Key: "timestamp", Value: 1}},
					Options: options.Index().SetName("timestamp_ttl").SetExpireAfterSeconds(365 * 24 * 60 * 60),
				},
			},
		},
		{
			collection: AppConfig.PasswordResetCollection,
			models: []mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetName("email_1").SetUnique(true),
				},
				{
					// Expired reset codes are removed by MongoDB itself
					Keys:    bson.D{{Key: "expires_at", Value: 1}},
					Options: options.Index().SetName("expires_at_1").SetExpireAfterSeconds(0),
				},
			},
		},
	}

	for _, spec := range specs {
		if err := ensureCollectionIndexes(ctx, logger, spec); err != nil {
			return err
		}
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureCollectionIndexes creates the missing indexes for a single collection
func ensureCollectionIndexes(ctx context.Context, logger *logging.SafeLogger, spec indexSpec) error {
	collection := MongoDB.Collection(spec.collection)

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes",
			zap.String("collection", spec.collection),
			zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	existing := make(map[string]bool)
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok {
			existing[name] = true
		}
	}

	created := 0
	for _, model := range spec.models {
		name := ""
		if model.Options != nil && model.Options.Name != nil {
			name = *model.Options.Name
		}
		if existing[name] {
			continue
		}

		if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
			// Another instance may have created it concurrently
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			logger.Error("failed to create index",
				zap.String("collection", spec.collection),
				zap.String("index", name),
				zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		logger.Info("created collection indexes",
			zap.String("collection", spec.collection),
			zap.Int("count", created))
	}
	return nil
}

// startIndexMaintenance starts a goroutine that periodically ensures indexes exist
func startIndexMaintenance() {
	logger := logging.Logger.With(zap.String("component", "database"))

	go func() {
		ticker := time.NewTicker(AppConfig.IndexMaintenanceInterval)
		defer ticker.Stop()

		for range ticker.C {
			if err := EnsureIndexes(); err != nil {
				logger.Error("periodic index check failed", zap.Error(err))
			}
		}
	}()

	logger.Info("started index maintenance routine",
		zap.Duration("interval", AppConfig.IndexMaintenanceInterval))
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Collection names
	UserCollection          string `json:"mongo_user_collection"`
	PlayerProfileCollection string `json:"mongo_player_profile_collection"`
	CoachProfileCollection  string `json:"mongo_coach_profile_collection"`
	FavoriteCollection      string `json:"mongo_favorite_collection"`
	AuditLogCollection      string `json:"mongo_audit_log_collection"`
	PasswordResetCollection string `json:"mongo_password_reset_collection"`

	// Auth configuration
	JWTSecret string        `json:"-"`
	JWTTTL    time.Duration `json:"jwt_ttl"`

	// Verification configuration
	CodeTTL              time.Duration `json:"code_ttl"`
	EmailCooldown        time.Duration `json:"email_cooldown"`
	PhoneCooldown        time.Duration `json:"phone_cooldown"`
	StatusCacheTTL       time.Duration `json:"status_cache_ttl"`
	PasswordResetWindow  time.Duration `json:"password_reset_window"`
	PasswordResetMaxReqs int           `json:"password_reset_max_requests"`

	// Email delivery (Resend-compatible API)
	ResendBaseURL   string `json:"resend_base_url"`
	ResendAPIKey    string `json:"-"`
	ResendFromEmail string `json:"resend_from_email"`

	// SMS OTP delivery (Twilio Verify-compatible API)
	TwilioVerifyBaseURL    string `json:"twilio_verify_base_url"`
	TwilioAccountSID       string `json:"twilio_account_sid"`
	TwilioAuthToken        string `json:"-"`
	TwilioVerifyServiceSID string `json:"twilio_verify_service_sid"`

	// Audit logging
	AuditLogsEnabled bool `json:"audit_logs_enabled"`
	AuditWorkers     int  `json:"audit_workers"`
	AuditBufferSize  int  `json:"audit_buffer_size"`

	// Reminder sweep
	ReminderAge     time.Duration `json:"reminder_age"`
	AdminAlertEmail string        `json:"admin_alert_email"`

	// Tracing
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// Index maintenance
	IndexMaintenanceInterval time.Duration `json:"index_maintenance_interval"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is required")
	}

	jwtTTL, err := time.ParseDuration(getEnvOrDefault("JWT_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	codeTTL, err := time.ParseDuration(getEnvOrDefault("VERIFICATION_CODE_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("invalid VERIFICATION_CODE_TTL: %w", err)
	}

	emailCooldown, err := time.ParseDuration(getEnvOrDefault("EMAIL_SEND_COOLDOWN", "60s"))
	if err != nil {
		return fmt.Errorf("invalid EMAIL_SEND_COOLDOWN: %w", err)
	}

	phoneCooldown, err := time.ParseDuration(getEnvOrDefault("PHONE_SEND_COOLDOWN", "60s"))
	if err != nil {
		return fmt.Errorf("invalid PHONE_SEND_COOLDOWN: %w", err)
	}

	statusCacheTTL, err := time.ParseDuration(getEnvOrDefault("STATUS_CACHE_TTL", "30s"))
	if err != nil {
		return fmt.Errorf("invalid STATUS_CACHE_TTL: %w", err)
	}

	resetWindow, err := time.ParseDuration(getEnvOrDefault("PASSWORD_RESET_WINDOW", "5m"))
	if err != nil {
		return fmt.Errorf("invalid PASSWORD_RESET_WINDOW: %w", err)
	}

	resetMaxReqs, err := strconv.Atoi(getEnvOrDefault("PASSWORD_RESET_MAX_REQUESTS", "2"))
	if err != nil {
		return fmt.Errorf("invalid PASSWORD_RESET_MAX_REQUESTS: %w", err)
	}

	auditWorkers, err := strconv.Atoi(getEnvOrDefault("AUDIT_WORKERS", "2"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_WORKERS: %w", err)
	}

	auditBufferSize, err := strconv.Atoi(getEnvOrDefault("AUDIT_BUFFER_SIZE", "1000"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_BUFFER_SIZE: %w", err)
	}

	reminderAge, err := time.ParseDuration(getEnvOrDefault("VERIFICATION_REMINDER_AGE", "72h"))
	if err != nil {
		return fmt.Errorf("invalid VERIFICATION_REMINDER_AGE: %w", err)
	}

	indexMaintenanceInterval, err := time.ParseDuration(getEnvOrDefault("INDEX_MAINTENANCE_INTERVAL", "6h"))
	if err != nil {
		return fmt.Errorf("invalid INDEX_MAINTENANCE_INTERVAL: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "recruit"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Collection names
		UserCollection:          getEnvOrDefault("MONGODB_USER_COLLECTION", "users"),
		PlayerProfileCollection: getEnvOrDefault("MONGODB_PLAYER_PROFILE_COLLECTION", "player_profiles"),
		CoachProfileCollection:  getEnvOrDefault("MONGODB_COACH_PROFILE_COLLECTION", "coach_profiles"),
		FavoriteCollection:      getEnvOrDefault("MONGODB_FAVORITE_COLLECTION", "favorite_players"),
		AuditLogCollection:      getEnvOrDefault("MONGODB_AUDIT_LOG_COLLECTION", "audit_logs"),
		PasswordResetCollection: getEnvOrDefault("MONGODB_PASSWORD_RESET_COLLECTION", "password_resets"),

		// Auth configuration
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,

		// Verification configuration
		CodeTTL:              codeTTL,
		EmailCooldown:        emailCooldown,
		PhoneCooldown:        phoneCooldown,
		StatusCacheTTL:       statusCacheTTL,
		PasswordResetWindow:  resetWindow,
		PasswordResetMaxReqs: resetMaxReqs,

		// Email delivery
		ResendBaseURL:   getEnvOrDefault("RESEND_BASE_URL", "https://api.resend.com"),
		ResendAPIKey:    getEnvOrDefault("RESEND_API_KEY", ""),
		ResendFromEmail: getEnvOrDefault("RESEND_FROM_EMAIL", "Sportall <no-reply@sportall.app>"),

		// SMS OTP delivery
		TwilioVerifyBaseURL:    getEnvOrDefault("TWILIO_VERIFY_BASE_URL", "https://verify.twilio.com/v2"),
		TwilioAccountSID:       getEnvOrDefault("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:        getEnvOrDefault("TWILIO_AUTH_TOKEN", ""),
		TwilioVerifyServiceSID: getEnvOrDefault("TWILIO_VERIFY_SERVICE_SID", ""),

		// Audit logging
		AuditLogsEnabled: getEnvOrDefault("AUDIT_LOGS_ENABLED", "true") == "true",
		AuditWorkers:     auditWorkers,
		AuditBufferSize:  auditBufferSize,

		// Reminder sweep
		ReminderAge:     reminderAge,
		AdminAlertEmail: getEnvOrDefault("VERIFICATION_ALERT_EMAIL", ""),

		// Tracing
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		// Index maintenance
		IndexMaintenanceInterval: indexMaintenanceInterval,
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

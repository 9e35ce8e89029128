package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		setEnv       bool
		want         string
	}{
		{
			name:         "environment variable set",
			key:          "TEST_KEY_1",
			defaultValue: "default",
			envValue:     "custom",
			setEnv:       true,
			want:         "custom",
		},
		{
			name:         "environment variable not set",
			key:          "TEST_KEY_2",
			defaultValue: "default",
			envValue:     "",
			setEnv:       false,
			want:         "default",
		},
		{
			name:         "empty environment variable",
			key:          "TEST_KEY_3",
			defaultValue: "default",
			envValue:     "",
			setEnv:       true,
			want:         "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnvOrDefault(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	if err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail without JWT_SECRET")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if AppConfig.Port != 8080 {
		t.Errorf("Port = %d, want 8080", AppConfig.Port)
	}
	if AppConfig.MongoDatabase != "recruit" {
		t.Errorf("MongoDatabase = %q, want recruit", AppConfig.MongoDatabase)
	}
	if AppConfig.CodeTTL != 10*time.Minute {
		t.Errorf("CodeTTL = %v, want 10m", AppConfig.CodeTTL)
	}
	if AppConfig.EmailCooldown != 60*time.Second {
		t.Errorf("EmailCooldown = %v, want 60s", AppConfig.EmailCooldown)
	}
	if AppConfig.PhoneCooldown != 60*time.Second {
		t.Errorf("PhoneCooldown = %v, want 60s", AppConfig.PhoneCooldown)
	}
	if AppConfig.PasswordResetMaxReqs != 2 {
		t.Errorf("PasswordResetMaxReqs = %d, want 2", AppConfig.PasswordResetMaxReqs)
	}
	if !AppConfig.AuditLogsEnabled {
		t.Error("AuditLogsEnabled should default to true")
	}
	if AppConfig.PlayerProfileCollection != "player_profiles" {
		t.Errorf("PlayerProfileCollection = %q, want player_profiles", AppConfig.PlayerProfileCollection)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("VERIFICATION_CODE_TTL", "5m")
	os.Setenv("EMAIL_SEND_COOLDOWN", "30s")
	os.Setenv("PORT", "9000")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("VERIFICATION_CODE_TTL")
		os.Unsetenv("EMAIL_SEND_COOLDOWN")
		os.Unsetenv("PORT")
	}()

	if err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if AppConfig.Port != 9000 {
		t.Errorf("Port = %d, want 9000", AppConfig.Port)
	}
	if AppConfig.CodeTTL != 5*time.Minute {
		t.Errorf("CodeTTL = %v, want 5m", AppConfig.CodeTTL)
	}
	if AppConfig.EmailCooldown != 30*time.Second {
		t.Errorf("EmailCooldown = %v, want 30s", AppConfig.EmailCooldown)
	}
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("VERIFICATION_CODE_TTL", "not-a-duration")
	defer func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("VERIFICATION_CODE_TTL")
	}()

	if err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail on an invalid duration")
	}
}

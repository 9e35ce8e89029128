package logging

import (
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	if err := InitLogger(); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
	if Logger == nil {
		t.Fatal("InitLogger() did not set Logger")
	}
}

func TestInitLogger_WithLogLevel(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	defer os.Unsetenv("LOG_LEVEL")

	if err := InitLogger(); err != nil {
		t.Fatalf("InitLogger() error = %v", err)
	}
}

func TestSafeLogger_Info(t *testing.T) {
	logger := &SafeLogger{logger: zap.NewNop()}
	logger.Info("test message", zap.String("key", "value"))
}

func TestSafeLogger_NilLogger(t *testing.T) {
	var logger *SafeLogger
	// Must not panic even when never initialized.
	logger.Info("message on nil logger")
	logger.Warn("message on nil logger")
	logger.Error("message on nil logger")
	logger.Debug("message on nil logger")
}

func TestSafeLogger_With(t *testing.T) {
	logger := &SafeLogger{logger: zap.NewNop()}
	child := logger.With(zap.String("component", "test"))
	if child == nil {
		t.Fatal("With() returned nil")
	}
	child.Info("child logger message")
}

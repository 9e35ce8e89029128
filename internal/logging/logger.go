package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance
	Logger *SafeLogger
)

// SafeLogger wraps a zap.Logger and tolerates being used before
// initialization, which keeps unit tests from having to set up logging.
type SafeLogger struct {
	logger *zap.Logger
}

// NewSafeLogger wraps an existing zap logger
func NewSafeLogger(l *zap.Logger) *SafeLogger {
	return &SafeLogger{logger: l}
}

func (s *SafeLogger) zl() *zap.Logger {
	if s == nil || s.logger == nil {
		return zap.NewNop()
	}
	return s.logger
}

func (s *SafeLogger) Debug(msg string, fields ...zap.Field) { s.zl().Debug(msg, fields...) }
func (s *SafeLogger) Info(msg string, fields ...zap.Field)  { s.zl().Info(msg, fields...) }
func (s *SafeLogger) Warn(msg string, fields ...zap.Field)  { s.zl().Warn(msg, fields...) }
func (s *SafeLogger) Error(msg string, fields ...zap.Field) { s.zl().Error(msg, fields...) }
func (s *SafeLogger) Fatal(msg string, fields ...zap.Field) { s.zl().Fatal(msg, fields...) }

// With returns a child logger carrying the given fields
func (s *SafeLogger) With(fields ...zap.Field) *SafeLogger {
	return &SafeLogger{logger: s.zl().With(fields...)}
}

// InitLogger initializes the global logger
func InitLogger() error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Set log level from environment
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(logLevel)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build(
		zap.Fields(
			zap.String("service", "app-recruit"),
			zap.String("version", "v1"),
		),
	)
	if err != nil {
		return err
	}

	Logger = &SafeLogger{logger: logger}
	return nil
}

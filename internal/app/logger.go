package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "stankin_schedule"

// NewLogger пишет время записей в часовом поясе расписания
func NewLogger(env, level string, loc *time.Location) (*zap.Logger, error) {
	config, err := newLoggerConfig(env, level, loc)
	if err != nil {
		return nil, err
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func newLoggerConfig(env, level string, loc *time.Location) (zap.Config, error) {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if level != "" {
		atomic, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return zap.Config{}, fmt.Errorf("parse log level: %w", err)
		}
		config.Level = atomic
	}

	if loc != nil {
		config.EncoderConfig.EncodeTime = localTimeEncoder(loc)
	}
	config.OutputPaths = []string{"stdout"}
	config.InitialFields = map[string]interface{}{"service": serviceName, "env": env}

	return config, nil
}

func localTimeEncoder(loc *time.Location) zapcore.TimeEncoder {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		zapcore.ISO8601TimeEncoder(t.In(loc), enc)
	}
}

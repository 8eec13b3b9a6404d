package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the application logger for env.
//
// "production" gets zap's JSON production config. "development" and "debug" get the
// console development config at debug level. Anything else (the "local" default)
// is the development config at warn level so interactive CLI output stays clean.
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "prod", "production":
		return zap.NewProduction()
	case "dev", "development", "debug":
		return zap.NewDevelopment()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		return cfg.Build()
	}
}

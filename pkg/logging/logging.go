package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a configured sugared logger. Level "debug" switches to the
// development config for verbose diagnostics.
func New(level string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	if level == "debug" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Sugar(), nil
}

package main

import (
	"github.com/osse101/DigSite_Go/internal/config"
	"github.com/osse101/DigSite_Go/internal/logger"
)

// initLogger installs the process logger from app config. Source locations
// are only attached outside production.
func initLogger(cfg *config.Config) {
	logger.InitLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		AddSource:   !cfg.IsProduction(),
	})
}

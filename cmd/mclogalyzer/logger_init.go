package main

import (
	"github.com/craftstats/mclogalyzer/internal/config"
	"github.com/craftstats/mclogalyzer/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Only include source file/line in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	logger.Init(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"mclogalyzer",
		cfg.Environment,
		addSource,
	))
}

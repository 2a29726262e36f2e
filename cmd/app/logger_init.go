package main

import (
	"github.com/mcfadden20/Swim-meet-timer/internal/config"
	"github.com/mcfadden20/Swim-meet-timer/internal/logger"
)

// newLoggerConfig builds the logger configuration from the app configuration
func newLoggerConfig(cfg *config.Config) logger.Config {
	// Source locations only in dev
	addSource := cfg.IsDevelopment()

	return logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)
}

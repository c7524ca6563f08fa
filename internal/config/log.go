package config

import (
	"github.com/charmbracelet/log"
)

var logLevels = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// Level returns the configured log level
func (c *Config) Level() log.Level {
	if level, ok := logLevels[c.Table.LogLevel]; ok {
		return level
	}
	return log.InfoLevel
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger. Logs go to file when one is given so
// they do not interleave with the table display.
func newLogger(level log.Level, file string) (*log.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w, closer = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
	return logger, closer, nil
}

// parseLevel maps a --log-level flag onto a level, "" keeps fallback
func parseLevel(s string, fallback log.Level) (log.Level, error) {
	if s == "" {
		return fallback, nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return fallback, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

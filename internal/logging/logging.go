// Package logging configures the logrus logger shared by the CLI and TUI.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured or the level is unknown.
const DefaultLevel = logrus.WarnLevel

// New returns a text logger writing to out at the given level.
func New(level string, out io.Writer) *logrus.Logger {
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02T15:04:05.999999999Z07:00"
	customFormatter.FullTimestamp = true
	logger := logrus.New()
	logger.SetFormatter(customFormatter)
	logger.SetOutput(out)
	logger.SetLevel(ParseLevel(level))
	return logger
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	return New("", io.Discard)
}

// ParseLevel parses a level name, falling back to DefaultLevel.
func ParseLevel(level string) logrus.Level {
	level = strings.TrimSpace(level)
	if level == "" {
		return DefaultLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return parsed
}

// ValidLevel reports whether level names a logrus level. Empty is valid.
func ValidLevel(level string) bool {
	level = strings.TrimSpace(level)
	if level == "" {
		return true
	}
	_, err := logrus.ParseLevel(level)
	return err == nil
}

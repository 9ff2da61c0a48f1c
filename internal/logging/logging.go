package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Configure sets the level and formatter of the standard logrus logger.
// Output goes to stderr; stdout is reserved for command output.
func Configure(level, format string) {
	ConfigureLogger(log.StandardLogger(), level, format, os.Stderr)
}

// ConfigureLogger applies level, format and output to logger. An unknown
// level falls back to info, an unknown format to text.
func ConfigureLogger(logger *log.Logger, level, format string, w io.Writer) {
	logger.SetOutput(w)
	logger.SetLevel(ParseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// ParseLevel converts a level name to a logrus level.
func ParseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging sets the global logrus level, format and output. When
// logFile is set, output goes to both stderr and the file. The returned closer
// releases the file.
func ConfigureLogging(level, format, logFile string) (io.Closer, error) {
	parsed, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(parsed)

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp: true,
		})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}

	if logFile == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file, nil
}

// ParseLogLevel accepts logrus level names as well as the Python style
// WARNING and CRITICAL names used by older deployments.
func ParseLogLevel(level string) (log.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "":
		return log.InfoLevel, nil
	case "WARNING":
		return log.WarnLevel, nil
	case "CRITICAL":
		return log.FatalLevel, nil
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

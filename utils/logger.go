package utils

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// ParseLogLevel maps a LOG_LEVEL value to a fiber log level
func ParseLogLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "", "info":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	default:
		return log.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// SetupLogger configures the application logger. When file is set, logs are
// appended to it as well as stdout; the returned writer is where access logs
// should go and the closer releases the file.
func SetupLogger(level, file string) (io.Writer, io.Closer, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(lvl)

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if file != "" {
		f, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}

	log.SetOutput(out)
	stdlog.SetOutput(out)
	return out, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

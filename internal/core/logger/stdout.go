package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type StdoutLogger struct {
	logger zerolog.Logger
}

func initStdoutLogger(serviceName, level, format string) (Logger, error) {
	return newStdoutLogger(os.Stdout, serviceName, level, format)
}

func newStdoutLogger(out io.Writer, serviceName, level, format string) (*StdoutLogger, error) {
	parsedLevel := zerolog.DebugLevel
	if level != "" {
		var err error
		parsedLevel, err = zerolog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	switch format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return nil, fmt.Errorf("invalid log format %q (must be json or console)", format)
	}

	l := zerolog.New(out).
		Level(parsedLevel).
		With().
		Str("service", serviceName).
		Logger()

	return &StdoutLogger{logger: l}, nil
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var event *zerolog.Event
	switch entry.Level {
	case LogLevelDebug:
		event = l.logger.Debug()
	case LogLevelInfo:
		event = l.logger.Info()
	case LogLevelWarn:
		event = l.logger.Warn()
	case LogLevelError:
		event = l.logger.Error()
	case LogLevelFatal:
		// exits after writing
		event = l.logger.Fatal()
	default:
		event = l.logger.Info()
	}

	event = event.Ctx(ctx).Time(zerolog.TimestampFieldName, entry.Timestamp)
	if len(entry.Attributes) > 0 {
		event = event.Fields(entry.Attributes)
	}
	if entry.Error != nil {
		event = event.Err(entry.Error)
	}
	event.Msg(entry.Message)
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}

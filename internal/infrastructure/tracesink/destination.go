package tracesink

import (
	"fmt"
	"io"
	"os"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"

	"github.com/natefinch/lumberjack"
)

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// OpenDestination resolves an output setting to a writer. "stderr" (or empty) and "stdout"
// map to the standard streams, which are never closed. Anything else is a file path opened
// for append with size based rotation.
func OpenDestination(output string, settings config.TraceSettings) (io.WriteCloser, error) {
	switch output {
	case "", config.OutputStderr:
		return nopWriteCloser{os.Stderr}, nil
	case config.OutputStdout:
		return nopWriteCloser{os.Stdout}, nil
	}

	// lumberjack opens lazily; probe now so an unusable path is reported up front.
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close trace output %s: %w", output, err)
	}

	return &lumberjack.Logger{
		Filename:   output,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   settings.Compress,
	}, nil
}

// NewWriter wraps w in the writer of the configured format.
func NewWriter(format string, w io.Writer) (trace.Writer, error) {
	switch format {
	case "", config.TraceFormatText:
		return NewTextWriter(w), nil
	case config.TraceFormatJSON:
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported trace format: %s", format)
	}
}

// Open builds a Sink from settings. A file output that cannot be opened falls back to
// stderr with a logged warning.
func Open(spy config.SpySettings, settings config.TraceSettings, log logger.Logger, opts ...Option) (*Sink, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	dest, err := OpenDestination(spy.Output, settings)
	if err != nil {
		log.Warn("falling back to stderr: ", err)
		dest = nopWriteCloser{os.Stderr}
	}

	w, err := NewWriter(settings.Format, dest)
	if err != nil {
		_ = dest.Close()
		return nil, err
	}

	return New(w, append([]Option{WithLogger(log)}, opts...)...), nil
}

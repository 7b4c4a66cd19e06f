package tracesink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
)

// JSONWriter renders one JSON object per event through a slog JSON handler.
type JSONWriter struct {
	handler slog.Handler
	closer  io.Closer
}

type jsonRecord struct {
	Dir   string `json:"dir"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewJSONWriter writes to w. Close closes w when it is an io.Closer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	jw := &JSONWriter{handler: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})}
	if c, ok := w.(io.Closer); ok {
		jw.closer = c
	}
	return jw
}

// WriteEvent implements trace.Writer.
func (j *JSONWriter) WriteEvent(e trace.CallEvent) error {
	r := slog.NewRecord(e.Time, slog.LevelInfo, e.Operation, 0)
	r.AddAttrs(
		slog.String("run_id", e.RunID),
		slog.Uint64("seq", e.Seq),
		slog.String("phase", string(e.Phase)),
	)
	if e.Phase == trace.PhaseExit {
		r.AddAttrs(
			slog.Uint64("status", uint64(e.Status)),
			slog.String("status_name", e.StatusName),
			slog.Duration("duration", e.Duration),
		)
	}
	if len(e.Records) > 0 {
		params := make([]jsonRecord, len(e.Records))
		for i, rec := range e.Records {
			params[i] = jsonRecord{Dir: rec.Dir, Name: rec.Name, Value: rec.Text}
		}
		r.AddAttrs(slog.Any("params", params))
	}

	if err := j.handler.Handle(context.Background(), r); err != nil {
		return fmt.Errorf("failed to write trace event %d: %w", e.Seq, err)
	}
	return nil
}

// WriteNote implements trace.Writer.
func (j *JSONWriter) WriteNote(text string) error {
	r := slog.NewRecord(time.Now(), slog.LevelInfo, text, 0)
	if err := j.handler.Handle(context.Background(), r); err != nil {
		return fmt.Errorf("failed to write trace note: %w", err)
	}
	return nil
}

// Close implements trace.Writer.
func (j *JSONWriter) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}

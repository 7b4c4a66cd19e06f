package tracesink

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"

	"github.com/google/uuid"
)

// Banner is written when a sink opens.
const Banner = "*************** PKCS#11 spy *****************"

// Sink appends call events to a trace.Writer and fans them out to recorders.
// Sequence allocation and writes are serialized by one mutex.
type Sink struct {
	mu        sync.Mutex
	writer    trace.Writer
	recorders []trace.Recorder
	logger    logger.Logger
	runID     string
	now       func() time.Time
	next      uint64
	closed    bool
}

// Option configures a Sink.
type Option func(*Sink)

// WithRecorder adds a recorder receiving every event after it was written.
func WithRecorder(r trace.Recorder) Option {
	return func(s *Sink) {
		if r != nil {
			s.recorders = append(s.recorders, r)
		}
	}
}

// WithLogger sets the diagnostic logger used to report write failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Sink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) Option {
	return func(s *Sink) {
		s.runID = id
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// New creates a Sink over w and writes the banner.
func New(w trace.Writer, opts ...Option) *Sink {
	s := &Sink{
		writer: w,
		logger: logger.NewNopLogger(),
		runID:  uuid.NewString(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Note(Banner)
	s.Note("Run: " + s.runID)
	return s
}

// RunID identifies the events of this sink.
func (s *Sink) RunID() string {
	return s.runID
}

// Entry allocates the next sequence number and writes the entry record of a call.
func (s *Sink) Entry(operation string, records []trace.Record) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.next
	s.next++

	s.emit(trace.CallEvent{
		RunID:     s.runID,
		Seq:       seq,
		Operation: operation,
		Phase:     trace.PhaseEntry,
		Records:   records,
		Time:      s.now(),
	})
	return seq
}

// Exit writes the exit record of the call numbered seq. Records are only passed on success.
func (s *Sink) Exit(seq uint64, operation string, status uint, records []trace.Record, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.emit(trace.CallEvent{
		RunID:      s.runID,
		Seq:        seq,
		Operation:  operation,
		Phase:      trace.PhaseExit,
		Status:     status,
		StatusName: enums.Lookup(enums.Status, status),
		Records:    records,
		Time:       s.now(),
		Duration:   elapsed,
	})
}

// Note writes a free-form line such as the banner or the load notice.
func (s *Sink) Note(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if err := s.writer.WriteNote(text); err != nil {
		s.logger.Error("failed to write trace note: ", err)
	}
}

// Loaded records that the module named by locator was bound.
func (s *Sink) Loaded(locator string) {
	if locator == "" {
		locator = "default module"
	}
	s.Note(fmt.Sprintf("Loaded: %q", locator))
}

// Close closes the writer. It is safe to call more than once.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("failed to close trace writer: %w", err)
	}
	return nil
}

func (s *Sink) emit(e trace.CallEvent) {
	if s.closed {
		return
	}
	if err := s.writer.WriteEvent(e); err != nil {
		s.logger.Error("failed to write trace event: ", err)
	}
	for _, r := range s.recorders {
		if err := r.Record(context.Background(), e); err != nil {
			s.logger.Warn("failed to record trace event: ", err)
		}
	}
}

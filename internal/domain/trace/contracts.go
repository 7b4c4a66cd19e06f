package trace

import (
	"context"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
)

// Writer renders call events and free-form notes to a trace destination.
// Implementations need not be safe for concurrent use; the sink serializes access.
type Writer interface {
	WriteEvent(e CallEvent) error
	WriteNote(text string) error
	Close() error
}

// Recorder receives every event after it has been written, e.g. to persist it.
type Recorder interface {
	Record(ctx context.Context, e CallEvent) error
}

// EventRepository stores and lists call events.
type EventRepository interface {
	Recorder
	List(ctx context.Context, query *EventQuery) ([]*CallEvent, error)
	Runs(ctx context.Context) ([]string, error)
}

// Sink is the ordered destination of call events. Entry allocates the sequence number
// that the matching Exit repeats.
type Sink interface {
	Entry(operation string, records []Record) uint64
	Exit(seq uint64, operation string, status uint, records []Record, elapsed time.Duration)
	Note(text string)
	Loaded(locator string)
	RunID() string
	Close() error
}

// Formatter renders one parameter value. It must not mutate v.
type Formatter interface {
	Format(p operation.Param, phase Phase, v any) Record
}

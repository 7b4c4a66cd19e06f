package tracesink

import (
	"fmt"
	"io"
	"strings"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
)

// TextWriter renders events in the classic spy layout:
//
//	0: C_GetSlotList
//	[in] tokenPresent = 0x1
//	[out] pulCount = 0x2
//	Returned:  0 CKR_OK
//
// An exit record is preceded by its "seq: name" header again when other output was
// written since its entry.
type TextWriter struct {
	w       io.Writer
	closer  io.Closer
	last    uint64
	hasLast bool
}

// NewTextWriter writes to w. Close closes w when it is an io.Closer.
func NewTextWriter(w io.Writer) *TextWriter {
	tw := &TextWriter{w: w}
	if c, ok := w.(io.Closer); ok {
		tw.closer = c
	}
	return tw
}

// WriteEvent implements trace.Writer.
func (t *TextWriter) WriteEvent(e trace.CallEvent) error {
	var sb strings.Builder

	switch e.Phase {
	case trace.PhaseEntry:
		fmt.Fprintf(&sb, "\n\n%d: %s\n", e.Seq, e.Operation)
	case trace.PhaseExit:
		if !t.hasLast || t.last != e.Seq {
			fmt.Fprintf(&sb, "\n%d: %s\n", e.Seq, e.Operation)
		}
	}
	for _, r := range e.Records {
		writeRecord(&sb, r)
	}
	if e.Phase == trace.PhaseExit {
		fmt.Fprintf(&sb, "Returned:  %d %s\n", e.Status, e.StatusName)
	}

	t.last, t.hasLast = e.Seq, true
	if _, err := io.WriteString(t.w, sb.String()); err != nil {
		return fmt.Errorf("failed to write trace event %d: %w", e.Seq, err)
	}
	return nil
}

// WriteNote implements trace.Writer.
func (t *TextWriter) WriteNote(text string) error {
	t.hasLast = false
	if _, err := io.WriteString(t.w, text+"\n"); err != nil {
		return fmt.Errorf("failed to write trace note: %w", err)
	}
	return nil
}

// Close implements trace.Writer.
func (t *TextWriter) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

func writeRecord(sb *strings.Builder, r trace.Record) {
	if !strings.Contains(r.Text, "\n") {
		fmt.Fprintf(sb, "[%s] %s = %s\n", r.Dir, r.Name, r.Text)
		return
	}
	fmt.Fprintf(sb, "[%s] %s:\n", r.Dir, r.Name)
	for _, line := range strings.Split(r.Text, "\n") {
		sb.WriteString("    " + line + "\n")
	}
}

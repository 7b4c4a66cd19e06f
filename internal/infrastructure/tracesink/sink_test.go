//go:build unit
// +build unit

package tracesink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRunID = "3f0c9f4e-8c1d-4f57-9d2b-3d2f1c9e8a10"

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type captureRecorder struct {
	mu     sync.Mutex
	events []trace.CallEvent
	err    error
}

func (c *captureRecorder) Record(_ context.Context, e trace.CallEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return c.err
}

type failingWriter struct{}

func (failingWriter) WriteEvent(trace.CallEvent) error { return errors.New("disk full") }
func (failingWriter) WriteNote(string) error           { return errors.New("disk full") }
func (failingWriter) Close() error                     { return nil }

func newTextSink(t *testing.T, opts ...Option) (*Sink, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]Option{WithRunID(testRunID), WithClock(func() time.Time { return fixedTime })}, opts...)
	return New(NewTextWriter(&buf), opts...), &buf
}

func TestSink_Banner(t *testing.T) {
	_, buf := newTextSink(t)
	assert.Equal(t, Banner+"\nRun: "+testRunID+"\n", buf.String())
}

func TestSink_EntryExitShareSequence(t *testing.T) {
	s, buf := newTextSink(t)
	buf.Reset()

	seq := s.Entry("C_GetSlotList", []trace.Record{{Name: "tokenPresent", Dir: "in", Text: "0x1"}})
	assert.Equal(t, uint64(0), seq)
	s.Exit(seq, "C_GetSlotList", 0, []trace.Record{{Name: "pulCount", Dir: "out", Text: "0x2"}}, time.Millisecond)

	want := "\n\n0: C_GetSlotList\n" +
		"[in] tokenPresent = 0x1\n" +
		"[out] pulCount = 0x2\n" +
		"Returned:  0 CKR_OK\n"
	assert.Equal(t, want, buf.String())

	assert.Equal(t, uint64(1), s.Entry("C_Finalize", nil))
}

func TestSink_InterleavedExitRepeatsHeader(t *testing.T) {
	s, buf := newTextSink(t)
	buf.Reset()

	first := s.Entry("C_Sign", nil)
	second := s.Entry("C_Digest", nil)
	s.Exit(first, "C_Sign", 0x150, nil, 0)
	s.Exit(second, "C_Digest", 0, nil, 0)

	out := buf.String()
	assert.Contains(t, out, "\n0: C_Sign\nReturned:  336 CKR_BUFFER_TOO_SMALL\n")
	assert.Contains(t, out, "\n1: C_Digest\nReturned:  0 CKR_OK\n")
}

func TestSink_MultiLineRecords(t *testing.T) {
	s, buf := newTextSink(t)
	buf.Reset()

	seq := s.Entry("C_GetMechanismList", nil)
	s.Exit(seq, "C_GetMechanismList", 0, []trace.Record{
		{Name: "pMechanismList[2]", Dir: "out", Text: "[0] CKM_RSA_PKCS\n[1] CKM_ECDSA"},
	}, 0)

	assert.Contains(t, buf.String(), "[out] pMechanismList[2]:\n    [0] CKM_RSA_PKCS\n    [1] CKM_ECDSA\n")
}

func TestSink_ConcurrentSequencesAreGapFree(t *testing.T) {
	s, _ := newTextSink(t)

	const calls = 64
	seqs := make(chan uint64, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := s.Entry("C_GenerateRandom", nil)
			s.Exit(seq, "C_GenerateRandom", 0, nil, 0)
			seqs <- seq
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[uint64]bool, calls)
	for seq := range seqs {
		assert.False(t, seen[seq], "duplicate sequence %d", seq)
		seen[seq] = true
	}
	for i := uint64(0); i < calls; i++ {
		assert.True(t, seen[i], "missing sequence %d", i)
	}
}

func TestSink_RecordersReceiveEvents(t *testing.T) {
	rec := &captureRecorder{err: errors.New("db down")}
	s, _ := newTextSink(t, WithRecorder(rec))

	seq := s.Entry("C_Login", []trace.Record{{Name: "userType", Dir: "in", Text: "CKU_USER"}})
	s.Exit(seq, "C_Login", 0xA0, nil, 2*time.Millisecond)

	require.Len(t, rec.events, 2)
	assert.Equal(t, trace.PhaseEntry, rec.events[0].Phase)
	assert.Equal(t, testRunID, rec.events[0].RunID)
	assert.Equal(t, fixedTime, rec.events[0].Time)
	assert.Equal(t, trace.PhaseExit, rec.events[1].Phase)
	assert.Equal(t, uint(0xA0), rec.events[1].Status)
	assert.Equal(t, "CKR_PIN_INCORRECT", rec.events[1].StatusName)
	assert.Equal(t, 2*time.Millisecond, rec.events[1].Duration)
}

func TestSink_WriteFailuresDoNotPanic(t *testing.T) {
	s := New(failingWriter{})
	require.NotPanics(t, func() {
		seq := s.Entry("C_Initialize", nil)
		s.Exit(seq, "C_Initialize", 0, nil, 0)
	})
}

func TestSink_CloseIsIdempotent(t *testing.T) {
	s, buf := newTextSink(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	before := buf.Len()
	s.Entry("C_GetInfo", nil)
	s.Loaded("libsofthsm2.so")
	assert.Equal(t, before, buf.Len())
}

func TestSink_Loaded(t *testing.T) {
	s, buf := newTextSink(t)
	buf.Reset()

	s.Loaded("/usr/lib/softhsm/libsofthsm2.so")
	s.Loaded("")

	assert.Equal(t, "Loaded: \"/usr/lib/softhsm/libsofthsm2.so\"\nLoaded: \"default module\"\n", buf.String())
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	s := New(NewJSONWriter(&buf), WithRunID(testRunID), WithClock(func() time.Time { return fixedTime }))
	buf.Reset()

	seq := s.Entry("C_Encrypt", []trace.Record{{Name: "pData[3]", Dir: "in", Text: "abc"}})
	s.Exit(seq, "C_Encrypt", 0, nil, time.Second)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "C_Encrypt", entry["msg"])
	assert.Equal(t, "entry", entry["phase"])
	assert.Equal(t, testRunID, entry["run_id"])
	assert.Equal(t, float64(0), entry["seq"])
	params := entry["params"].([]any)
	require.Len(t, params, 1)
	assert.Equal(t, "pData[3]", params[0].(map[string]any)["name"])

	var exit map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &exit))
	assert.Equal(t, "exit", exit["phase"])
	assert.Equal(t, "CKR_OK", exit["status_name"])
	assert.NotContains(t, exit, "params")
}

func TestOpenDestination(t *testing.T) {
	settings := config.Default().Trace

	w, err := OpenDestination(config.OutputStderr, settings)
	require.NoError(t, err)
	require.NoError(t, w.Close(), "standard streams are never closed")

	path := filepath.Join(t.TempDir(), "spy.log")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o600))

	w, err = OpenDestination(path, settings)
	require.NoError(t, err)
	_, err = w.Write([]byte("appended\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\nappended\n", string(content))

	_, err = OpenDestination(filepath.Join(t.TempDir(), "missing", "dir", "spy.log"), settings)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spy.log")
	spy := config.SpySettings{Module: "m.so", Output: path}

	s, err := Open(spy, config.Default().Trace, nil, WithRunID(testRunID))
	require.NoError(t, err)
	s.Loaded("m.so")
	require.NoError(t, s.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), Banner)
	assert.Contains(t, string(content), `Loaded: "m.so"`)

	bad := config.Default().Trace
	bad.Format = "xml"
	_, err = Open(spy, bad, nil)
	assert.Error(t, err)
}

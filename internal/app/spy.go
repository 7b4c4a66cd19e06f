package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/formatter"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"
)

// Hook observes every call forwarded to the wrapped module.
type Hook = trace.CallHook

// Spy is a cryptoki.Module forwarding every operation to the module named by its
// locator while writing an entry and an exit event per call to its sink.
//
// The module is loaded on first use. Finalize releases it for good: every later call
// fails with cryptoki.ErrAlreadyFinalized and is neither forwarded nor traced.
type Spy struct {
	loader    cryptoki.Loader
	locator   string
	sink      trace.Sink
	formatter trace.Formatter
	hooks     []Hook
	logger    logger.Logger

	mu        sync.Mutex
	binding   cryptoki.Binding
	module    cryptoki.Module
	finalized bool
	closed    bool
}

var _ cryptoki.Module = (*Spy)(nil)

// Option configures a Spy.
type Option func(*Spy)

// WithFormatter replaces the default value formatter.
func WithFormatter(f trace.Formatter) Option {
	return func(s *Spy) {
		if f != nil {
			s.formatter = f
		}
	}
}

// WithHooks adds hooks run around every forwarded call, in order.
func WithHooks(hooks ...Hook) Option {
	return func(s *Spy) {
		for _, h := range hooks {
			if h != nil {
				s.hooks = append(s.hooks, h)
			}
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Spy) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Spy loading locator through loader on first use.
func New(loader cryptoki.Loader, locator string, sink trace.Sink, opts ...Option) (*Spy, error) {
	if loader == nil {
		return nil, errors.New("module loader is required")
	}
	if sink == nil {
		return nil, errors.New("trace sink is required")
	}

	s := &Spy{
		loader:    loader,
		locator:   locator,
		sink:      sink,
		formatter: formatter.New(),
		logger:    logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RunID identifies the trace of this spy.
func (s *Spy) RunID() string {
	return s.sink.RunID()
}

// ensure returns the bound module, loading it on first use. At most one binding is
// ever created per Spy.
func (s *Spy) ensure() (cryptoki.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finalized {
		return nil, cryptoki.ErrAlreadyFinalized
	}
	if s.module != nil {
		return s.module, nil
	}

	binding, err := s.loader.Load(s.locator)
	if err != nil {
		var loadErr *cryptoki.LoadError
		if !errors.As(err, &loadErr) {
			err = &cryptoki.LoadError{Locator: s.locator, Err: err}
		}
		s.sink.Note(fmt.Sprintf("Load failed: %v", err))
		s.logger.Error(err)
		return nil, err
	}

	s.binding = binding
	s.module = binding.Module()
	s.sink.Loaded(s.locator)
	return s.module, nil
}

// release unloads the binding and marks the spy finalized.
func (s *Spy) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finalized = true
	s.module = nil
	if s.binding == nil {
		return nil
	}
	binding := s.binding
	s.binding = nil
	return binding.Unload()
}

// call traces one forwarded operation. inputs holds the values of the parameters the
// module reads, in descriptor order; outputs returns the values of the parameters it
// writes and is only evaluated when forward succeeded.
func (s *Spy) call(id operation.ID, inputs []any, forward func(m cryptoki.Module) error, outputs func() []any) error {
	m, err := s.ensure()
	if err != nil {
		return err
	}

	desc := operation.MustLookup(id)
	seq := s.sink.Entry(desc.Name, s.render(desc, desc.Inputs(), trace.PhaseEntry, inputs))

	info := trace.CallInfo{RunID: s.sink.RunID(), Seq: seq, Operation: desc.Name}
	ctx := context.Background()
	tokens := make([]trace.HookToken, len(s.hooks))
	for i, h := range s.hooks {
		ctx, tokens[i] = h.OnCallStart(ctx, info)
	}

	start := time.Now()
	err = forward(m)
	elapsed := time.Since(start)

	for i := len(s.hooks) - 1; i >= 0; i-- {
		s.hooks[i].OnCallEnd(ctx, tokens[i], info, err)
	}

	// Output state after a failure is undefined and never read.
	var records []trace.Record
	if err == nil && outputs != nil {
		records = s.render(desc, desc.Outputs(), trace.PhaseExit, outputs())
	}
	s.sink.Exit(seq, desc.Name, uint(cryptoki.StatusOf(err)), records, elapsed)
	return err
}

func (s *Spy) render(desc operation.Descriptor, params []operation.Param, phase trace.Phase, values []any) []trace.Record {
	if len(values) != len(params) {
		s.logger.Error(fmt.Sprintf("%s: %d %s values for %d parameters", desc.Name, len(values), phase, len(params)))
	}
	n := min(len(values), len(params))
	if n == 0 {
		return nil
	}
	records := make([]trace.Record, n)
	for i := range n {
		records[i] = s.formatter.Format(params[i], phase, values[i])
	}
	return records
}

// clip returns the part of buf the module reported as written. A nil buffer stays nil
// so the size query renders as not supplied.
func clip[T any](buf []T, n uint) []T {
	if buf == nil || n > uint(len(buf)) {
		return buf
	}
	return buf[:n]
}

// FunctionList is the bootstrap operation: it binds the module and returns the spy
// itself as the operation table callers should use.
func (s *Spy) FunctionList() (cryptoki.Module, error) {
	err := s.call(operation.GetFunctionList, nil,
		func(cryptoki.Module) error { return nil },
		func() []any { return []any{s} })
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the module without calling C_Finalize and closes the sink. Further
// calls fail with cryptoki.ErrAlreadyFinalized. Close is idempotent.
func (s *Spy) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	var errs []error
	if err := s.release(); err != nil {
		errs = append(errs, err)
	}
	if err := s.sink.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

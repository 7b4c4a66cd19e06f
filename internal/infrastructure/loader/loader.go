package loader

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"
)

// Loader opens PKCS#11 libraries.
type Loader struct {
	logger logger.Logger
}

// New creates a Loader logging through log.
func New(log logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Loader{logger: log}
}

var _ cryptoki.Loader = (*Loader)(nil)

// Load opens the library at locator and copies its function table. Every failure is a
// *cryptoki.LoadError and leaves no library handle open.
func (l *Loader) Load(locator string) (cryptoki.Binding, error) {
	handle, functions, err := openLibrary(locator)
	if err != nil {
		l.logger.Error("failed to load pkcs11 module: ", err)
		return nil, &cryptoki.LoadError{Locator: locator, Err: err}
	}

	b := &Binding{
		handle:    handle,
		locator:   locator,
		functions: functions,
		logger:    l.logger,
	}
	l.logger.Info("loaded pkcs11 module ", locator)
	return b, nil
}

// Binding owns an opened library and its function table. Calls hold the read lock while
// they run inside the library, Unload takes the write lock.
type Binding struct {
	mu        sync.RWMutex
	handle    uintptr
	locator   string
	functions [operation.Count]uintptr
	unloaded  atomic.Bool
	logger    logger.Logger
}

// Module returns the operation table backed by the library.
func (b *Binding) Module() cryptoki.Module {
	return &dlModule{binding: b}
}

// Locator returns the path the library was loaded from.
func (b *Binding) Locator() string {
	return b.locator
}

// Unload closes the library. Further calls through Module fail with
// cryptoki.ErrAlreadyFinalized. A second Unload is a no-op.
func (b *Binding) Unload() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unloaded.Swap(true) {
		return nil
	}
	if err := closeLibrary(b.handle); err != nil {
		return fmt.Errorf("failed to unload pkcs11 module %q: %w", b.locator, err)
	}
	b.logger.Info("unloaded pkcs11 module ", b.locator)
	return nil
}

// call invokes slot id with args. The library cannot be closed while the call runs.
func (b *Binding) call(id operation.ID, args ...uintptr) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	fn, err := b.function(id)
	if err != nil {
		return err
	}
	return invoke(fn, args...).Err()
}

// function returns the table slot of id, or an error when the binding is gone or the
// module left the slot empty.
func (b *Binding) function(id operation.ID) (uintptr, error) {
	if b.unloaded.Load() {
		return 0, cryptoki.ErrAlreadyFinalized
	}
	fn := b.functions[id]
	if fn == 0 {
		return 0, cryptoki.StatusFunctionNotSupported
	}
	return fn, nil
}

//go:build unit
// +build unit

package loader

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingLibrary(t *testing.T) {
	locator := filepath.Join(t.TempDir(), "missing-pkcs11.so")

	b, err := New(logger.NewNopLogger()).Load(locator)
	require.Error(t, err)
	assert.Nil(t, b)

	var loadErr *cryptoki.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, locator, loadErr.Locator)
	assert.Equal(t, cryptoki.StatusGeneralError, cryptoki.StatusOf(err))
}

func TestNew_NilLogger(t *testing.T) {
	l := New(nil)
	assert.NotNil(t, l.logger)
}

func TestBinding_Function(t *testing.T) {
	b := &Binding{locator: "test.so", logger: logger.NewNopLogger()}
	b.functions[operation.Encrypt] = 0x1000

	fn, err := b.function(operation.Encrypt)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0x1000), fn)

	_, err = b.function(operation.Decrypt)
	assert.Equal(t, cryptoki.StatusFunctionNotSupported, err)
}

func TestBinding_ModuleAfterUnload(t *testing.T) {
	b := &Binding{locator: "test.so", logger: logger.NewNopLogger()}
	b.functions[operation.Encrypt] = 0x1000
	b.unloaded.Store(true)

	// Already unloaded: no library handle is touched.
	require.NoError(t, b.Unload())

	_, err := b.Module().Encrypt(1, []byte("data"), nil)
	assert.ErrorIs(t, err, cryptoki.ErrAlreadyFinalized)
	assert.ErrorIs(t, b.Module().Finalize(), cryptoki.ErrAlreadyFinalized)
	assert.Equal(t, "test.so", b.Locator())
}

func TestBinding_UnloadWaitsForRunningCall(t *testing.T) {
	b := &Binding{locator: "test.so", logger: logger.NewNopLogger()}
	b.unloaded.Store(true)

	// A call in flight holds the read lock.
	b.mu.RLock()
	done := make(chan error, 1)
	go func() { done <- b.Unload() }()

	select {
	case <-done:
		t.Fatal("Unload returned while a call was running")
	case <-time.After(50 * time.Millisecond):
	}

	b.mu.RUnlock()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Unload did not return after the call finished")
	}
}

func TestCargs_Slices(t *testing.T) {
	var c cargs
	defer c.release()

	assert.Zero(t, c.bytes(nil), "nil buffer is NULL")
	assert.NotZero(t, c.bytes([]byte{}), "empty buffer is a valid pointer")
	assert.NotZero(t, c.bytes([]byte{1, 2}))
	assert.Zero(t, slice[cryptoki.SlotID](&c, nil))
	assert.Zero(t, c.mechanism(nil))
	assert.Zero(t, c.initializeArgs(nil))
}

func TestCargs_Template(t *testing.T) {
	var c cargs
	defer c.release()

	ptr, attrs := c.template(nil)
	assert.Zero(t, ptr)
	assert.Nil(t, attrs)

	template := []cryptoki.Attribute{
		cryptoki.NewAttributeRequest(0x0, 0),
		cryptoki.NewAttributeRequest(0x3, 16),
	}
	ptr, attrs = c.template(template)
	require.NotZero(t, ptr)
	require.Len(t, attrs, 2)

	assert.Nil(t, attrs[0].value)
	assert.Zero(t, attrs[0].valueLen)
	assert.NotNil(t, attrs[1].value)
	assert.Equal(t, uint(16), attrs[1].valueLen)

	// Module reports lengths.
	attrs[0].valueLen = 8
	attrs[1].valueLen = cryptoki.UnavailableInformation
	syncLengths(template, attrs)

	assert.Equal(t, uint(8), template[0].ValueLen)
	assert.Equal(t, cryptoki.UnavailableInformation, template[1].ValueLen)
}

func TestBoolArg(t *testing.T) {
	assert.Equal(t, uintptr(1), boolArg(true))
	assert.Equal(t, uintptr(0), boolArg(false))
}

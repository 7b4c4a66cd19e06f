package loader

import (
	"runtime"
	"unsafe"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
)

// ckMechanism mirrors CK_MECHANISM.
type ckMechanism struct {
	mechanism    uint
	parameter    unsafe.Pointer
	parameterLen uint
}

// ckAttribute mirrors CK_ATTRIBUTE.
type ckAttribute struct {
	typ      uint
	value    unsafe.Pointer
	valueLen uint
}

// ckInitializeArgs mirrors CK_C_INITIALIZE_ARGS. The mutex callbacks stay NULL.
type ckInitializeArgs struct {
	createMutex  uintptr
	destroyMutex uintptr
	lockMutex    uintptr
	unlockMutex  uintptr
	flags        uint
	reserved     uintptr
}

// empty backs zero-length, non-nil buffers so the module sees a valid pointer.
var empty [1]uint

// cargs converts Go arguments to C call arguments. Every Go pointer handed to the module
// stays pinned until release.
type cargs struct {
	pinner runtime.Pinner
}

func (c *cargs) release() {
	c.pinner.Unpin()
}

func (c *cargs) pin(p unsafe.Pointer) uintptr {
	c.pinner.Pin(p)
	return uintptr(p)
}

// bytes returns NULL for a nil slice.
func (c *cargs) bytes(b []byte) uintptr {
	return slice(c, b)
}

func slice[T any](c *cargs, s []T) uintptr {
	return uintptr(slicePointer(c, s))
}

func slicePointer[T any](c *cargs, s []T) unsafe.Pointer {
	switch {
	case s == nil:
		return nil
	case len(s) == 0:
		return unsafe.Pointer(&empty)
	default:
		p := unsafe.Pointer(unsafe.SliceData(s))
		c.pinner.Pin(p)
		return p
	}
}

func (c *cargs) ulong(n *uint) uintptr {
	return c.pin(unsafe.Pointer(n))
}

func (c *cargs) mechanism(m *cryptoki.Mechanism) uintptr {
	if m == nil {
		return 0
	}
	cm := &ckMechanism{
		mechanism:    uint(m.Type),
		parameter:    slicePointer(c, m.Parameter),
		parameterLen: uint(len(m.Parameter)),
	}
	return c.pin(unsafe.Pointer(cm))
}

// template converts attributes to a CK_ATTRIBUTE array. The returned array must be passed
// to syncLengths after the call so reported lengths reach the caller.
func (c *cargs) template(t []cryptoki.Attribute) (uintptr, []ckAttribute) {
	if len(t) == 0 {
		return 0, nil
	}
	attrs := make([]ckAttribute, len(t))
	for i, a := range t {
		attrs[i].typ = uint(a.Type)
		if a.Value != nil {
			attrs[i].value = slicePointer(c, a.Value)
			attrs[i].valueLen = uint(len(a.Value))
		}
	}
	return c.pin(unsafe.Pointer(unsafe.SliceData(attrs))), attrs
}

// syncLengths copies the lengths reported by the module back into the caller's template.
func syncLengths(t []cryptoki.Attribute, attrs []ckAttribute) {
	for i := range attrs {
		t[i].ValueLen = attrs[i].valueLen
	}
}

func (c *cargs) initializeArgs(args *cryptoki.InitializeArgs) uintptr {
	if args == nil {
		return 0
	}
	return c.pin(unsafe.Pointer(&ckInitializeArgs{flags: uint(args.Flags)}))
}

func boolArg(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

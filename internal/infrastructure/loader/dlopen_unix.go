//go:build linux || darwin || freebsd

package loader

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"

	"github.com/ebitengine/purego"
)

const entryPoint = "C_GetFunctionList"

func openLibrary(locator string) (uintptr, [operation.Count]uintptr, error) {
	var functions [operation.Count]uintptr

	handle, err := purego.Dlopen(locator, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return 0, functions, err
	}

	sym, err := purego.Dlsym(handle, entryPoint)
	if err != nil {
		_ = purego.Dlclose(handle)
		return 0, functions, fmt.Errorf("%s not found: %w", entryPoint, err)
	}

	// CK_FUNCTION_LIST starts with a CK_VERSION padded to pointer alignment,
	// followed by one pointer per operation.
	var list unsafe.Pointer
	var pinner runtime.Pinner
	pinner.Pin(&list)
	rv, _, _ := purego.SyscallN(sym, uintptr(unsafe.Pointer(&list)))
	pinner.Unpin()

	if err := cryptoki.Status(rv).Err(); err != nil {
		_ = purego.Dlclose(handle)
		return 0, functions, fmt.Errorf("%s failed: %w", entryPoint, err)
	}
	if list == nil {
		_ = purego.Dlclose(handle)
		return 0, functions, errors.New(entryPoint + " returned no function list")
	}

	table := unsafe.Slice((*uintptr)(unsafe.Add(list, unsafe.Sizeof(uintptr(0)))), operation.Count)
	copy(functions[:], table)
	return handle, functions, nil
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

func invoke(fn uintptr, args ...uintptr) cryptoki.Status {
	rv, _, _ := purego.SyscallN(fn, args...)
	return cryptoki.Status(rv)
}

//go:build !linux && !darwin && !freebsd

package loader

import (
	"errors"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
)

var errUnsupported = errors.New("dynamic loading unsupported on this platform")

func openLibrary(string) (uintptr, [operation.Count]uintptr, error) {
	return 0, [operation.Count]uintptr{}, errUnsupported
}

func closeLibrary(uintptr) error {
	return errUnsupported
}

func invoke(uintptr, ...uintptr) cryptoki.Status {
	return cryptoki.StatusFunctionNotSupported
}

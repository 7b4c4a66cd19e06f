package cryptoki

import (
	"errors"
	"fmt"
)

// Status is a CK_RV returned by the wrapped module. It is relayed to callers unchanged.
// Success is reported as a nil error, every other code as the Status itself.
type Status uint

// Status codes the spy itself relies on. The full symbolic table lives in the enums package.
const (
	StatusOK                         Status = 0x00000000
	StatusHostMemory                 Status = 0x00000002
	StatusGeneralError               Status = 0x00000005
	StatusFunctionFailed             Status = 0x00000006
	StatusArgumentsBad               Status = 0x00000007
	StatusFunctionNotSupported       Status = 0x00000054
	StatusAttributeTypeInvalid       Status = 0x00000012
	StatusAttributeSensitive         Status = 0x00000011
	StatusObjectHandleInvalid        Status = 0x00000082
	StatusSessionHandleInvalid       Status = 0x000000B3
	StatusSignatureInvalid           Status = 0x000000C0
	StatusBufferTooSmall             Status = 0x00000150
	StatusCryptokiNotInitialized     Status = 0x00000190
	StatusCryptokiAlreadyInitialized Status = 0x00000191
)

// Error implements error.
func (s Status) Error() string {
	return fmt.Sprintf("pkcs11: 0x%08X", uint(s))
}

// Err converts a raw CK_RV into the error convention of Module: nil for CKR_OK.
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return s
}

// ErrAlreadyFinalized is returned for any operation invoked after Finalize released the module.
var ErrAlreadyFinalized = errors.New("pkcs11 spy: module already finalized")

// LoadError reports that the wrapped module could not be bound: the library could not be
// opened, its C_GetFunctionList entry point is missing, or the entry point failed.
type LoadError struct {
	Locator string
	Err     error
}

// Error implements error.
func (e *LoadError) Error() string {
	locator := e.Locator
	if locator == "" {
		locator = "default module"
	}
	return fmt.Sprintf("failed to load pkcs11 module %q: %v", locator, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Status is the CK_RV a C caller observes for a load failure.
func (e *LoadError) Status() Status {
	return StatusGeneralError
}

// StatusOf maps an error returned through Module to the CK_RV a C caller would observe.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Status()
	}
	var st Status
	if errors.As(err, &st) {
		return st
	}
	if errors.Is(err, ErrAlreadyFinalized) {
		return StatusCryptokiNotInitialized
	}
	return StatusGeneralError
}

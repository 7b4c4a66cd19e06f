//go:build unit
// +build unit

package cryptoki

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Err(t *testing.T) {
	assert.NoError(t, StatusOK.Err())

	err := statusPinIncorrect.Err()
	require.Error(t, err)
	assert.Equal(t, "pkcs11: 0x000000A0", err.Error())
}

const statusPinIncorrect Status = 0xA0

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, StatusOK},
		{"status", StatusBufferTooSmall, StatusBufferTooSmall},
		{"wrapped status", fmt.Errorf("sign: %w", StatusSignatureInvalid), StatusSignatureInvalid},
		{"load error", &LoadError{Locator: "x.so", Err: errors.New("no such file")}, StatusGeneralError},
		{"load error wrapping entry point status", &LoadError{Locator: "x.so", Err: StatusHostMemory}, StatusGeneralError},
		{"finalized", ErrAlreadyFinalized, StatusCryptokiNotInitialized},
		{"foreign", errors.New("boom"), StatusGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestLoadError(t *testing.T) {
	cause := errors.New("cannot open shared object file")
	err := error(&LoadError{Locator: "/usr/lib/missing.so", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"/usr/lib/missing.so"`)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, StatusGeneralError, loadErr.Status())

	assert.Contains(t, (&LoadError{Err: cause}).Error(), `"default module"`)
}

func TestAttribute(t *testing.T) {
	a := NewAttribute(0x3, []byte("label"))
	assert.Equal(t, uint(5), a.ValueLen)
	assert.Equal(t, []byte("label"), a.Bytes())

	query := NewAttributeRequest(0x11, 0)
	assert.Nil(t, query.Value)
	assert.Nil(t, query.Bytes())

	req := NewAttributeRequest(0x11, 16)
	require.Len(t, req.Value, 16)
	req.ValueLen = 4
	assert.Len(t, req.Bytes(), 4)

	req.ValueLen = UnavailableInformation
	assert.Nil(t, req.Bytes())

	req.ValueLen = 99
	assert.Len(t, req.Bytes(), 16, "never reads past the buffer")
}

//go:build unit
// +build unit

package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		domain Domain
		code   uint
		want   string
	}{
		{"status ok", Status, 0x0, "CKR_OK"},
		{"buffer too small", Status, 0x150, "CKR_BUFFER_TOO_SMALL"},
		{"sha256 rsa", Mechanism, 0x40, "CKM_SHA256_RSA_PKCS"},
		{"aes gcm", Mechanism, 0x1087, "CKM_AES_GCM"},
		{"user", UserType, 1, "CKU_USER"},
		{"attribute value", Attribute, 0x11, "CKA_VALUE"},
		{"private key", ObjectClass, 3, "CKO_PRIVATE_KEY"},
		{"ec key", KeyType, 3, "CKK_EC"},
		{"rw user", SessionState, 3, "CKS_RW_USER_FUNCTIONS"},
		{"x509", CertificateType, 0, "CKC_X_509"},
		{"unknown status", Status, 0x1234, "unknown(0x1234)"},
		{"unknown mechanism", Mechanism, 0x80001234, "unknown(0x80001234)"},
		{"no domain", None, 1, "unknown(0x1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.domain, tt.code))
		})
	}
}

func TestRegistry_NamesCarryDomainPrefix(t *testing.T) {
	r := Default()
	for _, d := range Domains() {
		entries := r.Entries(d)
		require.NotEmpty(t, entries, d.String())
		for i, e := range entries {
			assert.Contains(t, e.Name, d.Prefix(), "%s 0x%X", d, e.Code)
			if i > 0 {
				assert.Less(t, entries[i-1].Code, e.Code)
			}
		}
	}
}

func TestRegistry_Code(t *testing.T) {
	r := Default()

	code, err := r.Code(Mechanism, "CKM_ECDSA")
	require.NoError(t, err)
	assert.Equal(t, uint(0x1041), code)

	code, err = r.Code(Status, "pin_incorrect")
	require.NoError(t, err)
	assert.Equal(t, uint(0xA0), code)

	code, err = r.Code(Attribute, "0x80000001")
	require.NoError(t, err)
	assert.Equal(t, uint(0x80000001), code)

	_, err = r.Code(KeyType, "CKK_NOPE")
	assert.Error(t, err)
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in      string
		want    Domain
		wantErr bool
	}{
		{"status", Status, false},
		{"CKR", Status, false},
		{"ckm_", Mechanism, false},
		{"attribute", Attribute, false},
		{"CKO", ObjectClass, false},
		{"bogus", None, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDomain(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRegistry_CopiesTables(t *testing.T) {
	src := map[uint]string{1: "CKR_CANCEL"}
	r := NewRegistry(map[Domain]map[uint]string{Status: src})
	src[1] = "changed"

	assert.Equal(t, "CKR_CANCEL", r.Lookup(Status, 1))
	assert.Equal(t, "unknown(0x1)", r.Lookup(Mechanism, 1))
}

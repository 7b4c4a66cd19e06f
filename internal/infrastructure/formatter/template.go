package formatter

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
)

// Attribute types whose CK_ULONG value is itself an enumerated code.
var attributeValueDomains = map[uint]enums.Domain{
	0x000: enums.ObjectClass,     // CKA_CLASS
	0x080: enums.CertificateType, // CKA_CERTIFICATE_TYPE
	0x100: enums.KeyType,         // CKA_KEY_TYPE
	0x166: enums.Mechanism,       // CKA_KEY_GEN_MECHANISM
}

// Attribute types holding a CK_BBOOL.
var booleanAttributes = map[uint]bool{
	0x001: true, // CKA_TOKEN
	0x002: true, // CKA_PRIVATE
	0x086: true, // CKA_TRUSTED
	0x103: true, // CKA_SENSITIVE
	0x104: true, // CKA_ENCRYPT
	0x105: true, // CKA_DECRYPT
	0x106: true, // CKA_WRAP
	0x107: true, // CKA_UNWRAP
	0x108: true, // CKA_SIGN
	0x109: true, // CKA_SIGN_RECOVER
	0x10A: true, // CKA_VERIFY
	0x10B: true, // CKA_VERIFY_RECOVER
	0x10C: true, // CKA_DERIVE
	0x162: true, // CKA_EXTRACTABLE
	0x163: true, // CKA_LOCAL
	0x164: true, // CKA_NEVER_EXTRACTABLE
	0x165: true, // CKA_ALWAYS_SENSITIVE
	0x170: true, // CKA_MODIFIABLE
	0x202: true, // CKA_ALWAYS_AUTHENTICATE
	0x210: true, // CKA_WRAP_WITH_TRUSTED
}

const ulongSize = int(unsafe.Sizeof(uint(0)))

// Template renders every attribute with its type, length and value.
func (f *Formatter) Template(t []cryptoki.Attribute) string {
	if t == nil {
		return NotSupplied
	}
	var sb strings.Builder
	for i, a := range t {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(f.attributeHeader(a))
		switch {
		case a.ValueLen == cryptoki.UnavailableInformation:
			sb.WriteString(" unavailable")
		case a.Value == nil:
			sb.WriteString(" " + NotSupplied)
		default:
			sb.WriteString(f.attributeValue(a))
		}
	}
	return sb.String()
}

// TemplateRequest renders the attribute types and requested lengths without values.
func (f *Formatter) TemplateRequest(t []cryptoki.Attribute) string {
	if t == nil {
		return NotSupplied
	}
	lines := make([]string, len(t))
	for i, a := range t {
		lines[i] = f.attributeHeader(a)
		if a.Value == nil {
			lines[i] += " requested size"
		}
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) attributeHeader(a cryptoki.Attribute) string {
	name := f.registry.Lookup(enums.Attribute, uint(a.Type))
	if a.ValueLen == cryptoki.UnavailableInformation {
		return name
	}
	return fmt.Sprintf("%s [%d]", name, a.ValueLen)
}

func (f *Formatter) attributeValue(a cryptoki.Attribute) string {
	value := a.Bytes()
	if d, ok := attributeValueDomains[uint(a.Type)]; ok && len(value) == ulongSize {
		return " " + f.registry.Lookup(d, nativeUint(value))
	}
	if booleanAttributes[uint(a.Type)] && len(value) == 1 {
		if value[0] != 0 {
			return " CK_TRUE"
		}
		return " CK_FALSE"
	}
	if len(value) == 0 {
		return ""
	}
	return "\n" + indent(f.Buffer(value), "    ")
}

func nativeUint(b []byte) uint {
	if len(b) == 8 {
		return uint(binary.NativeEndian.Uint64(b))
	}
	return uint(binary.NativeEndian.Uint32(b))
}

func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

package cryptoki

// SlotID identifies a slot. Opaque to the spy, only displayed.
type SlotID uint

// SessionHandle identifies a session opened on a token.
type SessionHandle uint

// ObjectHandle identifies an object (key, certificate, data) on a token.
type ObjectHandle uint

// MechanismType identifies a mechanism (CKM_*).
type MechanismType uint

// AttributeType identifies an object attribute (CKA_*).
type AttributeType uint

// UserType identifies a login role (CKU_*).
type UserType uint

// Flags is a CK_FLAGS bit mask.
type Flags uint

// UnavailableInformation is reported in Attribute.ValueLen when the module cannot
// reveal an attribute (CK_UNAVAILABLE_INFORMATION).
const UnavailableInformation = ^uint(0)

// Session flags for OpenSession.
const (
	SessionRW     Flags = 0x2
	SerialSession Flags = 0x4
)

// Initialize flags.
const (
	LibraryCantCreateOSThreads Flags = 0x1
	OSLockingOK                Flags = 0x2
)

// Login roles.
const (
	UserSO              UserType = 0
	UserNormal          UserType = 1
	UserContextSpecific UserType = 2
)

// Version is a CK_VERSION.
type Version struct {
	Major byte
	Minor byte
}

// The info records below keep the CK_* field order and fixed-size blank padded
// character arrays, so their memory layout matches the C structures on LP64 and ILP32 Unix targets.

// Info is a CK_INFO.
type Info struct {
	CryptokiVersion    Version
	ManufacturerID     [32]byte
	Flags              Flags
	LibraryDescription [32]byte
	LibraryVersion     Version
}

// SlotInfo is a CK_SLOT_INFO.
type SlotInfo struct {
	SlotDescription [64]byte
	ManufacturerID  [32]byte
	Flags           Flags
	HardwareVersion Version
	FirmwareVersion Version
}

// TokenInfo is a CK_TOKEN_INFO.
type TokenInfo struct {
	Label              [32]byte
	ManufacturerID     [32]byte
	Model              [16]byte
	SerialNumber       [16]byte
	Flags              Flags
	MaxSessionCount    uint
	SessionCount       uint
	MaxRwSessionCount  uint
	RwSessionCount     uint
	MaxPinLen          uint
	MinPinLen          uint
	TotalPublicMemory  uint
	FreePublicMemory   uint
	TotalPrivateMemory uint
	FreePrivateMemory  uint
	HardwareVersion    Version
	FirmwareVersion    Version
	UTCTime            [16]byte
}

// SessionInfo is a CK_SESSION_INFO.
type SessionInfo struct {
	SlotID      SlotID
	State       uint
	Flags       Flags
	DeviceError uint
}

// MechanismInfo is a CK_MECHANISM_INFO.
type MechanismInfo struct {
	MinKeySize uint
	MaxKeySize uint
	Flags      Flags
}

// Mechanism is a CK_MECHANISM: the mechanism type and its raw parameter bytes.
type Mechanism struct {
	Type      MechanismType
	Parameter []byte
}

// InitializeArgs carries the CK_C_INITIALIZE_ARGS flags. Mutex callbacks are not
// supported, the module always receives NULL callbacks.
type InitializeArgs struct {
	Flags Flags
}

// Attribute is one CK_ATTRIBUTE entry of a template.
//
// For input templates Value holds the attribute value and ValueLen its length.
// For GetAttributeValue a nil Value requests the length only (size query) and the module
// reports the required length in ValueLen; a non-nil Value is filled in place and ValueLen
// is set to the number of bytes written.
type Attribute struct {
	Type     AttributeType
	Value    []byte
	ValueLen uint
}

// NewAttribute returns an input attribute holding value.
func NewAttribute(t AttributeType, value []byte) Attribute {
	return Attribute{Type: t, Value: value, ValueLen: uint(len(value))}
}

// NewAttributeRequest returns a GetAttributeValue request entry. A zero size issues a size query.
func NewAttributeRequest(t AttributeType, size uint) Attribute {
	if size == 0 {
		return Attribute{Type: t}
	}
	return Attribute{Type: t, Value: make([]byte, size), ValueLen: size}
}

// Bytes returns the filled part of the value, or nil when no value buffer was supplied
// or the module reported the attribute as unavailable.
func (a Attribute) Bytes() []byte {
	if a.Value == nil || a.ValueLen == UnavailableInformation {
		return nil
	}
	if a.ValueLen > uint(len(a.Value)) {
		return a.Value
	}
	return a.Value[:a.ValueLen]
}

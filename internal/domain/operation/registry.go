package operation

import (
	"fmt"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
)

// ID is the position of an operation in the PKCS#11 function list.
type ID int

// Operation identifiers in function-list order
const (
	Initialize ID = iota
	Finalize
	GetInfo
	GetFunctionList
	GetSlotList
	GetSlotInfo
	GetTokenInfo
	GetMechanismList
	GetMechanismInfo
	InitToken
	InitPIN
	SetPIN
	OpenSession
	CloseSession
	CloseAllSessions
	GetSessionInfo
	GetOperationState
	SetOperationState
	Login
	Logout
	CreateObject
	CopyObject
	DestroyObject
	GetObjectSize
	GetAttributeValue
	SetAttributeValue
	FindObjectsInit
	FindObjects
	FindObjectsFinal
	EncryptInit
	Encrypt
	EncryptUpdate
	EncryptFinal
	DecryptInit
	Decrypt
	DecryptUpdate
	DecryptFinal
	DigestInit
	Digest
	DigestUpdate
	DigestKey
	DigestFinal
	SignInit
	Sign
	SignUpdate
	SignFinal
	SignRecoverInit
	SignRecover
	VerifyInit
	Verify
	VerifyUpdate
	VerifyFinal
	VerifyRecoverInit
	VerifyRecover
	DigestEncryptUpdate
	DecryptDigestUpdate
	SignEncryptUpdate
	DecryptVerifyUpdate
	GenerateKey
	GenerateKeyPair
	WrapKey
	UnwrapKey
	DeriveKey
	SeedRandom
	GenerateRandom
	GetFunctionStatus
	CancelFunction
	WaitForSlotEvent

	// Count is the number of operations in the function list.
	Count int = iota
)

// String returns the C name of the operation.
func (id ID) String() string {
	if d, ok := Lookup(id); ok {
		return d.Name
	}
	return fmt.Sprintf("C_Unknown(%d)", int(id))
}

func in(name string, kind Kind) Param {
	return Param{Name: name, Dir: In, Kind: kind}
}

func out(name string, kind Kind) Param {
	return Param{Name: name, Dir: Out, Kind: kind}
}

func inout(name string, kind Kind) Param {
	return Param{Name: name, Dir: InOut, Kind: kind}
}

func enum(name string, d enums.Domain) Param {
	return Param{Name: name, Dir: In, Kind: Enum, Enum: d}
}

var (
	session   = in("hSession", Scalar)
	slot      = in("slotID", Scalar)
	mechanism = in("pMechanism", Mechanism)
)

// buffered returns the trailing output buffer and its length for operations using the
// two-call size convention.
func buffered(buf, length string) []Param {
	return []Param{out(buf, Buffer), inout(length, Scalar)}
}

func params(groups ...any) []Param {
	var ps []Param
	for _, g := range groups {
		switch v := g.(type) {
		case Param:
			ps = append(ps, v)
		case []Param:
			ps = append(ps, v...)
		}
	}
	return ps
}

var table = [...]Descriptor{
	{Initialize, "C_Initialize", params(in("pInitArgs", Info))},
	{Finalize, "C_Finalize", nil},
	{GetInfo, "C_GetInfo", params(out("pInfo", Info))},
	{GetFunctionList, "C_GetFunctionList", params(out("ppFunctionList", Opaque))},
	{GetSlotList, "C_GetSlotList", params(in("tokenPresent", Scalar), out("pSlotList", HandleArray), inout("pulCount", Scalar))},
	{GetSlotInfo, "C_GetSlotInfo", params(slot, out("pInfo", Info))},
	{GetTokenInfo, "C_GetTokenInfo", params(slot, out("pInfo", Info))},
	{GetMechanismList, "C_GetMechanismList", params(slot,
		Param{Name: "pMechanismList", Dir: Out, Kind: HandleArray, Enum: enums.Mechanism}, inout("pulCount", Scalar))},
	{GetMechanismInfo, "C_GetMechanismInfo", params(slot, enum("type", enums.Mechanism), out("pInfo", Info))},
	{InitToken, "C_InitToken", params(slot, in("pPin", Buffer), in("pLabel", Buffer))},
	{InitPIN, "C_InitPIN", params(session, in("pPin", Buffer))},
	{SetPIN, "C_SetPIN", params(session, in("pOldPin", Buffer), in("pNewPin", Buffer))},
	{OpenSession, "C_OpenSession", params(slot, in("flags", Scalar), out("phSession", Scalar))},
	{CloseSession, "C_CloseSession", params(session)},
	{CloseAllSessions, "C_CloseAllSessions", params(slot)},
	{GetSessionInfo, "C_GetSessionInfo", params(session, out("pInfo", Info))},
	{GetOperationState, "C_GetOperationState", params(session, buffered("pOperationState", "pulOperationStateLen"))},
	{SetOperationState, "C_SetOperationState", params(session, in("pOperationState", Buffer),
		in("hEncryptionKey", Scalar), in("hAuthenticationKey", Scalar))},
	{Login, "C_Login", params(session, enum("userType", enums.UserType), in("pPin", Buffer))},
	{Logout, "C_Logout", params(session)},
	{CreateObject, "C_CreateObject", params(session, in("pTemplate", Template), out("phObject", Scalar))},
	{CopyObject, "C_CopyObject", params(session, in("hObject", Scalar), in("pTemplate", Template), out("phNewObject", Scalar))},
	{DestroyObject, "C_DestroyObject", params(session, in("hObject", Scalar))},
	{GetObjectSize, "C_GetObjectSize", params(session, in("hObject", Scalar), out("pulSize", Scalar))},
	{GetAttributeValue, "C_GetAttributeValue", params(session, in("hObject", Scalar), inout("pTemplate", Template))},
	{SetAttributeValue, "C_SetAttributeValue", params(session, in("hObject", Scalar), in("pTemplate", Template))},
	{FindObjectsInit, "C_FindObjectsInit", params(session, in("pTemplate", Template))},
	{FindObjects, "C_FindObjects", params(session, out("phObject", HandleArray),
		in("ulMaxObjectCount", Scalar), out("pulObjectCount", Scalar))},
	{FindObjectsFinal, "C_FindObjectsFinal", params(session)},
	{EncryptInit, "C_EncryptInit", params(session, mechanism, in("hKey", Scalar))},
	{Encrypt, "C_Encrypt", params(session, in("pData", Buffer), buffered("pEncryptedData", "pulEncryptedDataLen"))},
	{EncryptUpdate, "C_EncryptUpdate", params(session, in("pPart", Buffer), buffered("pEncryptedPart", "pulEncryptedPartLen"))},
	{EncryptFinal, "C_EncryptFinal", params(session, buffered("pLastEncryptedPart", "pulLastEncryptedPartLen"))},
	{DecryptInit, "C_DecryptInit", params(session, mechanism, in("hKey", Scalar))},
	{Decrypt, "C_Decrypt", params(session, in("pEncryptedData", Buffer), buffered("pData", "pulDataLen"))},
	{DecryptUpdate, "C_DecryptUpdate", params(session, in("pEncryptedPart", Buffer), buffered("pPart", "pulPartLen"))},
	{DecryptFinal, "C_DecryptFinal", params(session, buffered("pLastPart", "pulLastPartLen"))},
	{DigestInit, "C_DigestInit", params(session, mechanism)},
	{Digest, "C_Digest", params(session, in("pData", Buffer), buffered("pDigest", "pulDigestLen"))},
	{DigestUpdate, "C_DigestUpdate", params(session, in("pPart", Buffer))},
	{DigestKey, "C_DigestKey", params(session, in("hKey", Scalar))},
	{DigestFinal, "C_DigestFinal", params(session, buffered("pDigest", "pulDigestLen"))},
	{SignInit, "C_SignInit", params(session, mechanism, in("hKey", Scalar))},
	{Sign, "C_Sign", params(session, in("pData", Buffer), buffered("pSignature", "pulSignatureLen"))},
	{SignUpdate, "C_SignUpdate", params(session, in("pPart", Buffer))},
	{SignFinal, "C_SignFinal", params(session, buffered("pSignature", "pulSignatureLen"))},
	{SignRecoverInit, "C_SignRecoverInit", params(session, mechanism, in("hKey", Scalar))},
	{SignRecover, "C_SignRecover", params(session, in("pData", Buffer), buffered("pSignature", "pulSignatureLen"))},
	{VerifyInit, "C_VerifyInit", params(session, mechanism, in("hKey", Scalar))},
	{Verify, "C_Verify", params(session, in("pData", Buffer), in("pSignature", Buffer))},
	{VerifyUpdate, "C_VerifyUpdate", params(session, in("pPart", Buffer))},
	{VerifyFinal, "C_VerifyFinal", params(session, in("pSignature", Buffer))},
	{VerifyRecoverInit, "C_VerifyRecoverInit", params(session, mechanism, in("hKey", Scalar))},
	{VerifyRecover, "C_VerifyRecover", params(session, in("pSignature", Buffer), buffered("pData", "pulDataLen"))},
	{DigestEncryptUpdate, "C_DigestEncryptUpdate", params(session, in("pPart", Buffer), buffered("pEncryptedPart", "pulEncryptedPartLen"))},
	{DecryptDigestUpdate, "C_DecryptDigestUpdate", params(session, in("pEncryptedPart", Buffer), buffered("pPart", "pulPartLen"))},
	{SignEncryptUpdate, "C_SignEncryptUpdate", params(session, in("pPart", Buffer), buffered("pEncryptedPart", "pulEncryptedPartLen"))},
	{DecryptVerifyUpdate, "C_DecryptVerifyUpdate", params(session, in("pEncryptedPart", Buffer), buffered("pPart", "pulPartLen"))},
	{GenerateKey, "C_GenerateKey", params(session, mechanism, in("pTemplate", Template), out("phKey", Scalar))},
	{GenerateKeyPair, "C_GenerateKeyPair", params(session, mechanism, in("pPublicKeyTemplate", Template),
		in("pPrivateKeyTemplate", Template), out("phPublicKey", Scalar), out("phPrivateKey", Scalar))},
	{WrapKey, "C_WrapKey", params(session, mechanism, in("hWrappingKey", Scalar), in("hKey", Scalar),
		buffered("pWrappedKey", "pulWrappedKeyLen"))},
	{UnwrapKey, "C_UnwrapKey", params(session, mechanism, in("hUnwrappingKey", Scalar), in("pWrappedKey", Buffer),
		in("pTemplate", Template), out("phKey", Scalar))},
	{DeriveKey, "C_DeriveKey", params(session, mechanism, in("hBaseKey", Scalar), in("pTemplate", Template), out("phKey", Scalar))},
	{SeedRandom, "C_SeedRandom", params(session, in("pSeed", Buffer))},
	{GenerateRandom, "C_GenerateRandom", params(session, out("RandomData", Buffer), in("ulRandomLen", Scalar))},
	{GetFunctionStatus, "C_GetFunctionStatus", params(session)},
	{CancelFunction, "C_CancelFunction", params(session)},
	{WaitForSlotEvent, "C_WaitForSlotEvent", params(in("flags", Scalar), out("pSlot", Scalar))},
}

var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(table))
	for _, d := range table {
		m[d.Name] = d
	}
	return m
}()

// Describe returns the descriptor of the named operation. Both "C_Sign" and "Sign" are accepted.
func Describe(name string) (Descriptor, bool) {
	if d, ok := byName[name]; ok {
		return d, true
	}
	d, ok := byName["C_"+name]
	return d, ok
}

// Lookup returns the descriptor at the given function-list position.
func Lookup(id ID) (Descriptor, bool) {
	if id < 0 || int(id) >= len(table) {
		return Descriptor{}, false
	}
	return table[id], true
}

// MustLookup is Lookup for identifiers known at compile time.
func MustLookup(id ID) Descriptor {
	d, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("operation: unknown id %d", int(id)))
	}
	return d
}

// List returns every descriptor in function-list order.
func List() []Descriptor {
	list := make([]Descriptor, len(table))
	copy(list, table[:])
	return list
}

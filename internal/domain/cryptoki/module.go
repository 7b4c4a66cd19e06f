package cryptoki

// Module is the PKCS#11 operation table, one method per function-list entry except
// C_GetFunctionList. Every method returns nil on CKR_OK, a Status for any other CK_RV
// reported by the module, or an error produced by the layer serving the call.
//
// Output buffers follow the two-call convention: a nil buffer requests the required size
// only, which is returned as the uint result. A non-nil buffer is filled up to its length
// and the number of bytes written is returned. A buffer that is too small yields
// StatusBufferTooSmall together with the required size.
type Module interface {
	// General purpose

	Initialize(args *InitializeArgs) error
	Finalize() error
	GetInfo() (Info, error)

	// Slot and token management

	GetSlotList(tokenPresent bool, slots []SlotID) (uint, error)
	GetSlotInfo(slotID SlotID) (SlotInfo, error)
	GetTokenInfo(slotID SlotID) (TokenInfo, error)
	GetMechanismList(slotID SlotID, mechanisms []MechanismType) (uint, error)
	GetMechanismInfo(slotID SlotID, mechanism MechanismType) (MechanismInfo, error)
	InitToken(slotID SlotID, pin []byte, label []byte) error
	InitPIN(session SessionHandle, pin []byte) error
	SetPIN(session SessionHandle, oldPin, newPin []byte) error

	// Session management

	OpenSession(slotID SlotID, flags Flags) (SessionHandle, error)
	CloseSession(session SessionHandle) error
	CloseAllSessions(slotID SlotID) error
	GetSessionInfo(session SessionHandle) (SessionInfo, error)
	GetOperationState(session SessionHandle, state []byte) (uint, error)
	SetOperationState(session SessionHandle, state []byte, encryptionKey, authenticationKey ObjectHandle) error
	Login(session SessionHandle, userType UserType, pin []byte) error
	Logout(session SessionHandle) error

	// Object management

	CreateObject(session SessionHandle, template []Attribute) (ObjectHandle, error)
	CopyObject(session SessionHandle, object ObjectHandle, template []Attribute) (ObjectHandle, error)
	DestroyObject(session SessionHandle, object ObjectHandle) error
	GetObjectSize(session SessionHandle, object ObjectHandle) (uint, error)
	GetAttributeValue(session SessionHandle, object ObjectHandle, template []Attribute) error
	SetAttributeValue(session SessionHandle, object ObjectHandle, template []Attribute) error
	FindObjectsInit(session SessionHandle, template []Attribute) error
	FindObjects(session SessionHandle, objects []ObjectHandle) (uint, error)
	FindObjectsFinal(session SessionHandle) error

	// Encryption and decryption

	EncryptInit(session SessionHandle, mechanism *Mechanism, key ObjectHandle) error
	Encrypt(session SessionHandle, data, encryptedData []byte) (uint, error)
	EncryptUpdate(session SessionHandle, part, encryptedPart []byte) (uint, error)
	EncryptFinal(session SessionHandle, lastEncryptedPart []byte) (uint, error)
	DecryptInit(session SessionHandle, mechanism *Mechanism, key ObjectHandle) error
	Decrypt(session SessionHandle, encryptedData, data []byte) (uint, error)
	DecryptUpdate(session SessionHandle, encryptedPart, part []byte) (uint, error)
	DecryptFinal(session SessionHandle, lastPart []byte) (uint, error)

	// Message digesting

	DigestInit(session SessionHandle, mechanism *Mechanism) error
	Digest(session SessionHandle, data, digest []byte) (uint, error)
	DigestUpdate(session SessionHandle, part []byte) error
	DigestKey(session SessionHandle, key ObjectHandle) error
	DigestFinal(session SessionHandle, digest []byte) (uint, error)

	// Signing and MACing

	SignInit(session SessionHandle, mechanism *Mechanism, key ObjectHandle) error
	Sign(session SessionHandle, data, signature []byte) (uint, error)
	SignUpdate(session SessionHandle, part []byte) error
	SignFinal(session SessionHandle, signature []byte) (uint, error)
	SignRecoverInit(session SessionHandle, mechanism *Mechanism, key ObjectHandle) error
	SignRecover(session SessionHandle, data, signature []byte) (uint, error)

	// Verifying signatures and MACs

	VerifyInit(session SessionHandle, mechanism *Mechanism, key ObjectHandle) error
	Verify(session SessionHandle, data, signature []byte) error
	VerifyUpdate(session SessionHandle, part []byte) error
	VerifyFinal(session SessionHandle, signature []byte) error
	VerifyRecoverInit(session SessionHandle, mechanism *Mechanism, key ObjectHandle) error
	VerifyRecover(session SessionHandle, signature, data []byte) (uint, error)

	// Dual-function cryptographic operations

	DigestEncryptUpdate(session SessionHandle, part, encryptedPart []byte) (uint, error)
	DecryptDigestUpdate(session SessionHandle, encryptedPart, part []byte) (uint, error)
	SignEncryptUpdate(session SessionHandle, part, encryptedPart []byte) (uint, error)
	DecryptVerifyUpdate(session SessionHandle, encryptedPart, part []byte) (uint, error)

	// Key management

	GenerateKey(session SessionHandle, mechanism *Mechanism, template []Attribute) (ObjectHandle, error)
	GenerateKeyPair(session SessionHandle, mechanism *Mechanism, publicKeyTemplate, privateKeyTemplate []Attribute) (ObjectHandle, ObjectHandle, error)
	WrapKey(session SessionHandle, mechanism *Mechanism, wrappingKey, key ObjectHandle, wrappedKey []byte) (uint, error)
	UnwrapKey(session SessionHandle, mechanism *Mechanism, unwrappingKey ObjectHandle, wrappedKey []byte, template []Attribute) (ObjectHandle, error)
	DeriveKey(session SessionHandle, mechanism *Mechanism, baseKey ObjectHandle, template []Attribute) (ObjectHandle, error)

	// Random number generation

	SeedRandom(session SessionHandle, seed []byte) error
	GenerateRandom(session SessionHandle, randomData []byte) error

	// Parallel function management

	GetFunctionStatus(session SessionHandle) error
	CancelFunction(session SessionHandle) error

	// Slot events

	WaitForSlotEvent(flags Flags) (SlotID, error)
}

// Binding is a loaded module together with the library handle that backs it.
// Its holder owns it exclusively; after Unload the Module must not be used again.
type Binding interface {
	Module() Module
	Locator() string
	// Unload releases the library. Calling it again is a no-op.
	Unload() error
}

// Loader binds the module named by a locator, typically a shared library path.
// Failures are reported as *LoadError.
type Loader interface {
	Load(locator string) (Binding, error)
}

package loader

import (
	"unsafe"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
)

// labelLen is the fixed size of the blank padded label passed to C_InitToken.
const labelLen = 32

// dlModule forwards every operation to the function table of a Binding.
type dlModule struct {
	binding *Binding
}

var _ cryptoki.Module = (*dlModule)(nil)

func (m *dlModule) call(id operation.ID, args ...uintptr) error {
	return m.binding.call(id, args...)
}

// outBuffer forwards an operation whose last two arguments are an output buffer and its
// CK_ULONG_PTR length, preceded by args.
func (m *dlModule) outBuffer(id operation.ID, out []byte, args ...uintptr) (uint, error) {
	var c cargs
	defer c.release()

	n := uint(len(out))
	err := m.call(id, append(args, c.bytes(out), c.ulong(&n))...)
	return n, err
}

func (m *dlModule) Initialize(args *cryptoki.InitializeArgs) error {
	var c cargs
	defer c.release()
	return m.call(operation.Initialize, c.initializeArgs(args))
}

func (m *dlModule) Finalize() error {
	return m.call(operation.Finalize, 0)
}

func (m *dlModule) GetInfo() (cryptoki.Info, error) {
	var c cargs
	defer c.release()

	info := new(cryptoki.Info)
	err := m.call(operation.GetInfo, c.pin(unsafe.Pointer(info)))
	return *info, err
}

func (m *dlModule) GetSlotList(tokenPresent bool, slots []cryptoki.SlotID) (uint, error) {
	var c cargs
	defer c.release()

	n := uint(len(slots))
	err := m.call(operation.GetSlotList, boolArg(tokenPresent), slice(&c, slots), c.ulong(&n))
	return n, err
}

func (m *dlModule) GetSlotInfo(slotID cryptoki.SlotID) (cryptoki.SlotInfo, error) {
	var c cargs
	defer c.release()

	info := new(cryptoki.SlotInfo)
	err := m.call(operation.GetSlotInfo, uintptr(slotID), c.pin(unsafe.Pointer(info)))
	return *info, err
}

func (m *dlModule) GetTokenInfo(slotID cryptoki.SlotID) (cryptoki.TokenInfo, error) {
	var c cargs
	defer c.release()

	info := new(cryptoki.TokenInfo)
	err := m.call(operation.GetTokenInfo, uintptr(slotID), c.pin(unsafe.Pointer(info)))
	return *info, err
}

func (m *dlModule) GetMechanismList(slotID cryptoki.SlotID, mechanisms []cryptoki.MechanismType) (uint, error) {
	var c cargs
	defer c.release()

	n := uint(len(mechanisms))
	err := m.call(operation.GetMechanismList, uintptr(slotID), slice(&c, mechanisms), c.ulong(&n))
	return n, err
}

func (m *dlModule) GetMechanismInfo(slotID cryptoki.SlotID, mechanism cryptoki.MechanismType) (cryptoki.MechanismInfo, error) {
	var c cargs
	defer c.release()

	info := new(cryptoki.MechanismInfo)
	err := m.call(operation.GetMechanismInfo, uintptr(slotID), uintptr(mechanism), c.pin(unsafe.Pointer(info)))
	return *info, err
}

func (m *dlModule) InitToken(slotID cryptoki.SlotID, pin []byte, label []byte) error {
	var c cargs
	defer c.release()

	// The module always reads 32 label bytes.
	padded := make([]byte, labelLen)
	for i := range padded {
		padded[i] = ' '
	}
	copy(padded, label)

	return m.call(operation.InitToken, uintptr(slotID), c.bytes(pin), uintptr(len(pin)), c.bytes(padded))
}

func (m *dlModule) InitPIN(session cryptoki.SessionHandle, pin []byte) error {
	var c cargs
	defer c.release()
	return m.call(operation.InitPIN, uintptr(session), c.bytes(pin), uintptr(len(pin)))
}

func (m *dlModule) SetPIN(session cryptoki.SessionHandle, oldPin, newPin []byte) error {
	var c cargs
	defer c.release()
	return m.call(operation.SetPIN, uintptr(session),
		c.bytes(oldPin), uintptr(len(oldPin)), c.bytes(newPin), uintptr(len(newPin)))
}

func (m *dlModule) OpenSession(slotID cryptoki.SlotID, flags cryptoki.Flags) (cryptoki.SessionHandle, error) {
	var c cargs
	defer c.release()

	var session uint
	// pApplication and Notify are always NULL.
	err := m.call(operation.OpenSession, uintptr(slotID), uintptr(flags), 0, 0, c.ulong(&session))
	return cryptoki.SessionHandle(session), err
}

func (m *dlModule) CloseSession(session cryptoki.SessionHandle) error {
	return m.call(operation.CloseSession, uintptr(session))
}

func (m *dlModule) CloseAllSessions(slotID cryptoki.SlotID) error {
	return m.call(operation.CloseAllSessions, uintptr(slotID))
}

func (m *dlModule) GetSessionInfo(session cryptoki.SessionHandle) (cryptoki.SessionInfo, error) {
	var c cargs
	defer c.release()

	info := new(cryptoki.SessionInfo)
	err := m.call(operation.GetSessionInfo, uintptr(session), c.pin(unsafe.Pointer(info)))
	return *info, err
}

func (m *dlModule) GetOperationState(session cryptoki.SessionHandle, state []byte) (uint, error) {
	return m.outBuffer(operation.GetOperationState, state, uintptr(session))
}

func (m *dlModule) SetOperationState(session cryptoki.SessionHandle, state []byte, encryptionKey, authenticationKey cryptoki.ObjectHandle) error {
	var c cargs
	defer c.release()
	return m.call(operation.SetOperationState, uintptr(session), c.bytes(state), uintptr(len(state)),
		uintptr(encryptionKey), uintptr(authenticationKey))
}

func (m *dlModule) Login(session cryptoki.SessionHandle, userType cryptoki.UserType, pin []byte) error {
	var c cargs
	defer c.release()
	return m.call(operation.Login, uintptr(session), uintptr(userType), c.bytes(pin), uintptr(len(pin)))
}

func (m *dlModule) Logout(session cryptoki.SessionHandle) error {
	return m.call(operation.Logout, uintptr(session))
}

func (m *dlModule) CreateObject(session cryptoki.SessionHandle, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	var c cargs
	defer c.release()

	var object uint
	tmpl, _ := c.template(template)
	err := m.call(operation.CreateObject, uintptr(session), tmpl, uintptr(len(template)), c.ulong(&object))
	return cryptoki.ObjectHandle(object), err
}

func (m *dlModule) CopyObject(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	var c cargs
	defer c.release()

	var newObject uint
	tmpl, _ := c.template(template)
	err := m.call(operation.CopyObject, uintptr(session), uintptr(object), tmpl, uintptr(len(template)), c.ulong(&newObject))
	return cryptoki.ObjectHandle(newObject), err
}

func (m *dlModule) DestroyObject(session cryptoki.SessionHandle, object cryptoki.ObjectHandle) error {
	return m.call(operation.DestroyObject, uintptr(session), uintptr(object))
}

func (m *dlModule) GetObjectSize(session cryptoki.SessionHandle, object cryptoki.ObjectHandle) (uint, error) {
	var c cargs
	defer c.release()

	var size uint
	err := m.call(operation.GetObjectSize, uintptr(session), uintptr(object), c.ulong(&size))
	return size, err
}

func (m *dlModule) GetAttributeValue(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) error {
	var c cargs
	defer c.release()

	tmpl, attrs := c.template(template)
	err := m.call(operation.GetAttributeValue, uintptr(session), uintptr(object), tmpl, uintptr(len(template)))
	// Lengths are meaningful for CKR_ATTRIBUTE_SENSITIVE, CKR_ATTRIBUTE_TYPE_INVALID and
	// CKR_BUFFER_TOO_SMALL as well.
	syncLengths(template, attrs)
	return err
}

func (m *dlModule) SetAttributeValue(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) error {
	var c cargs
	defer c.release()

	tmpl, _ := c.template(template)
	return m.call(operation.SetAttributeValue, uintptr(session), uintptr(object), tmpl, uintptr(len(template)))
}

func (m *dlModule) FindObjectsInit(session cryptoki.SessionHandle, template []cryptoki.Attribute) error {
	var c cargs
	defer c.release()

	tmpl, _ := c.template(template)
	return m.call(operation.FindObjectsInit, uintptr(session), tmpl, uintptr(len(template)))
}

func (m *dlModule) FindObjects(session cryptoki.SessionHandle, objects []cryptoki.ObjectHandle) (uint, error) {
	var c cargs
	defer c.release()

	var found uint
	err := m.call(operation.FindObjects, uintptr(session), slice(&c, objects), uintptr(len(objects)), c.ulong(&found))
	return found, err
}

func (m *dlModule) FindObjectsFinal(session cryptoki.SessionHandle) error {
	return m.call(operation.FindObjectsFinal, uintptr(session))
}

// cryptoInit forwards the XxxInit operations taking a mechanism and a key.
func (m *dlModule) cryptoInit(id operation.ID, session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	var c cargs
	defer c.release()
	return m.call(id, uintptr(session), c.mechanism(mechanism), uintptr(key))
}

// transform forwards single and multi-part operations mapping an input buffer to an
// output buffer.
func (m *dlModule) transform(id operation.ID, session cryptoki.SessionHandle, in, out []byte) (uint, error) {
	var c cargs
	defer c.release()
	return m.outBuffer(id, out, uintptr(session), c.bytes(in), uintptr(len(in)))
}

// update forwards operations feeding one input buffer.
func (m *dlModule) update(id operation.ID, session cryptoki.SessionHandle, part []byte) error {
	var c cargs
	defer c.release()
	return m.call(id, uintptr(session), c.bytes(part), uintptr(len(part)))
}

func (m *dlModule) EncryptInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.cryptoInit(operation.EncryptInit, session, mechanism, key)
}

func (m *dlModule) Encrypt(session cryptoki.SessionHandle, data, encryptedData []byte) (uint, error) {
	return m.transform(operation.Encrypt, session, data, encryptedData)
}

func (m *dlModule) EncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	return m.transform(operation.EncryptUpdate, session, part, encryptedPart)
}

func (m *dlModule) EncryptFinal(session cryptoki.SessionHandle, lastEncryptedPart []byte) (uint, error) {
	return m.outBuffer(operation.EncryptFinal, lastEncryptedPart, uintptr(session))
}

func (m *dlModule) DecryptInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.cryptoInit(operation.DecryptInit, session, mechanism, key)
}

func (m *dlModule) Decrypt(session cryptoki.SessionHandle, encryptedData, data []byte) (uint, error) {
	return m.transform(operation.Decrypt, session, encryptedData, data)
}

func (m *dlModule) DecryptUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	return m.transform(operation.DecryptUpdate, session, encryptedPart, part)
}

func (m *dlModule) DecryptFinal(session cryptoki.SessionHandle, lastPart []byte) (uint, error) {
	return m.outBuffer(operation.DecryptFinal, lastPart, uintptr(session))
}

func (m *dlModule) DigestInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism) error {
	var c cargs
	defer c.release()
	return m.call(operation.DigestInit, uintptr(session), c.mechanism(mechanism))
}

func (m *dlModule) Digest(session cryptoki.SessionHandle, data, digest []byte) (uint, error) {
	return m.transform(operation.Digest, session, data, digest)
}

func (m *dlModule) DigestUpdate(session cryptoki.SessionHandle, part []byte) error {
	return m.update(operation.DigestUpdate, session, part)
}

func (m *dlModule) DigestKey(session cryptoki.SessionHandle, key cryptoki.ObjectHandle) error {
	return m.call(operation.DigestKey, uintptr(session), uintptr(key))
}

func (m *dlModule) DigestFinal(session cryptoki.SessionHandle, digest []byte) (uint, error) {
	return m.outBuffer(operation.DigestFinal, digest, uintptr(session))
}

func (m *dlModule) SignInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.cryptoInit(operation.SignInit, session, mechanism, key)
}

func (m *dlModule) Sign(session cryptoki.SessionHandle, data, signature []byte) (uint, error) {
	return m.transform(operation.Sign, session, data, signature)
}

func (m *dlModule) SignUpdate(session cryptoki.SessionHandle, part []byte) error {
	return m.update(operation.SignUpdate, session, part)
}

func (m *dlModule) SignFinal(session cryptoki.SessionHandle, signature []byte) (uint, error) {
	return m.outBuffer(operation.SignFinal, signature, uintptr(session))
}

func (m *dlModule) SignRecoverInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.cryptoInit(operation.SignRecoverInit, session, mechanism, key)
}

func (m *dlModule) SignRecover(session cryptoki.SessionHandle, data, signature []byte) (uint, error) {
	return m.transform(operation.SignRecover, session, data, signature)
}

func (m *dlModule) VerifyInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.cryptoInit(operation.VerifyInit, session, mechanism, key)
}

func (m *dlModule) Verify(session cryptoki.SessionHandle, data, signature []byte) error {
	var c cargs
	defer c.release()
	return m.call(operation.Verify, uintptr(session), c.bytes(data), uintptr(len(data)), c.bytes(signature), uintptr(len(signature)))
}

func (m *dlModule) VerifyUpdate(session cryptoki.SessionHandle, part []byte) error {
	return m.update(operation.VerifyUpdate, session, part)
}

func (m *dlModule) VerifyFinal(session cryptoki.SessionHandle, signature []byte) error {
	return m.update(operation.VerifyFinal, session, signature)
}

func (m *dlModule) VerifyRecoverInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.cryptoInit(operation.VerifyRecoverInit, session, mechanism, key)
}

func (m *dlModule) VerifyRecover(session cryptoki.SessionHandle, signature, data []byte) (uint, error) {
	return m.transform(operation.VerifyRecover, session, signature, data)
}

func (m *dlModule) DigestEncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	return m.transform(operation.DigestEncryptUpdate, session, part, encryptedPart)
}

func (m *dlModule) DecryptDigestUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	return m.transform(operation.DecryptDigestUpdate, session, encryptedPart, part)
}

func (m *dlModule) SignEncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	return m.transform(operation.SignEncryptUpdate, session, part, encryptedPart)
}

func (m *dlModule) DecryptVerifyUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	return m.transform(operation.DecryptVerifyUpdate, session, encryptedPart, part)
}

func (m *dlModule) GenerateKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	var c cargs
	defer c.release()

	var key uint
	tmpl, _ := c.template(template)
	err := m.call(operation.GenerateKey, uintptr(session), c.mechanism(mechanism), tmpl, uintptr(len(template)), c.ulong(&key))
	return cryptoki.ObjectHandle(key), err
}

func (m *dlModule) GenerateKeyPair(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, publicKeyTemplate, privateKeyTemplate []cryptoki.Attribute) (cryptoki.ObjectHandle, cryptoki.ObjectHandle, error) {
	var c cargs
	defer c.release()

	var publicKey, privateKey uint
	pub, _ := c.template(publicKeyTemplate)
	priv, _ := c.template(privateKeyTemplate)
	err := m.call(operation.GenerateKeyPair, uintptr(session), c.mechanism(mechanism),
		pub, uintptr(len(publicKeyTemplate)), priv, uintptr(len(privateKeyTemplate)),
		c.ulong(&publicKey), c.ulong(&privateKey))
	return cryptoki.ObjectHandle(publicKey), cryptoki.ObjectHandle(privateKey), err
}

func (m *dlModule) WrapKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, wrappingKey, key cryptoki.ObjectHandle, wrappedKey []byte) (uint, error) {
	var c cargs
	defer c.release()
	return m.outBuffer(operation.WrapKey, wrappedKey, uintptr(session), c.mechanism(mechanism), uintptr(wrappingKey), uintptr(key))
}

func (m *dlModule) UnwrapKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, unwrappingKey cryptoki.ObjectHandle, wrappedKey []byte, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	var c cargs
	defer c.release()

	var key uint
	tmpl, _ := c.template(template)
	err := m.call(operation.UnwrapKey, uintptr(session), c.mechanism(mechanism), uintptr(unwrappingKey),
		c.bytes(wrappedKey), uintptr(len(wrappedKey)), tmpl, uintptr(len(template)), c.ulong(&key))
	return cryptoki.ObjectHandle(key), err
}

func (m *dlModule) DeriveKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, baseKey cryptoki.ObjectHandle, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	var c cargs
	defer c.release()

	var key uint
	tmpl, _ := c.template(template)
	err := m.call(operation.DeriveKey, uintptr(session), c.mechanism(mechanism), uintptr(baseKey),
		tmpl, uintptr(len(template)), c.ulong(&key))
	return cryptoki.ObjectHandle(key), err
}

func (m *dlModule) SeedRandom(session cryptoki.SessionHandle, seed []byte) error {
	return m.update(operation.SeedRandom, session, seed)
}

func (m *dlModule) GenerateRandom(session cryptoki.SessionHandle, randomData []byte) error {
	var c cargs
	defer c.release()
	return m.call(operation.GenerateRandom, uintptr(session), c.bytes(randomData), uintptr(len(randomData)))
}

func (m *dlModule) GetFunctionStatus(session cryptoki.SessionHandle) error {
	return m.call(operation.GetFunctionStatus, uintptr(session))
}

func (m *dlModule) CancelFunction(session cryptoki.SessionHandle) error {
	return m.call(operation.CancelFunction, uintptr(session))
}

func (m *dlModule) WaitForSlotEvent(flags cryptoki.Flags) (cryptoki.SlotID, error) {
	var c cargs
	defer c.release()

	var slot uint
	err := m.call(operation.WaitForSlotEvent, uintptr(flags), c.ulong(&slot), 0)
	return cryptoki.SlotID(slot), err
}

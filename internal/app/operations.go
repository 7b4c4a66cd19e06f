package app

import (
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
)

// General purpose

func (s *Spy) Initialize(args *cryptoki.InitializeArgs) error {
	return s.call(operation.Initialize, []any{args},
		func(m cryptoki.Module) error { return m.Initialize(args) }, nil)
}

// Finalize forwards C_Finalize and then unloads the module, whatever the module returned.
func (s *Spy) Finalize() error {
	return s.call(operation.Finalize, nil, func(m cryptoki.Module) error {
		err := m.Finalize()
		if unloadErr := s.release(); unloadErr != nil {
			s.logger.Error(unloadErr)
		}
		return err
	}, nil)
}

func (s *Spy) GetInfo() (info cryptoki.Info, err error) {
	err = s.call(operation.GetInfo, nil,
		func(m cryptoki.Module) (err error) { info, err = m.GetInfo(); return err },
		func() []any { return []any{info} })
	return info, err
}

// Slot and token management

func (s *Spy) GetSlotList(tokenPresent bool, slots []cryptoki.SlotID) (n uint, err error) {
	err = s.call(operation.GetSlotList, []any{tokenPresent, len(slots)},
		func(m cryptoki.Module) (err error) { n, err = m.GetSlotList(tokenPresent, slots); return err },
		func() []any { return []any{clip(slots, n), n} })
	return n, err
}

func (s *Spy) GetSlotInfo(slotID cryptoki.SlotID) (info cryptoki.SlotInfo, err error) {
	err = s.call(operation.GetSlotInfo, []any{slotID},
		func(m cryptoki.Module) (err error) { info, err = m.GetSlotInfo(slotID); return err },
		func() []any { return []any{info} })
	return info, err
}

func (s *Spy) GetTokenInfo(slotID cryptoki.SlotID) (info cryptoki.TokenInfo, err error) {
	err = s.call(operation.GetTokenInfo, []any{slotID},
		func(m cryptoki.Module) (err error) { info, err = m.GetTokenInfo(slotID); return err },
		func() []any { return []any{info} })
	return info, err
}

func (s *Spy) GetMechanismList(slotID cryptoki.SlotID, mechanisms []cryptoki.MechanismType) (n uint, err error) {
	err = s.call(operation.GetMechanismList, []any{slotID, len(mechanisms)},
		func(m cryptoki.Module) (err error) { n, err = m.GetMechanismList(slotID, mechanisms); return err },
		func() []any { return []any{clip(mechanisms, n), n} })
	return n, err
}

func (s *Spy) GetMechanismInfo(slotID cryptoki.SlotID, mechanism cryptoki.MechanismType) (info cryptoki.MechanismInfo, err error) {
	err = s.call(operation.GetMechanismInfo, []any{slotID, mechanism},
		func(m cryptoki.Module) (err error) { info, err = m.GetMechanismInfo(slotID, mechanism); return err },
		func() []any { return []any{info} })
	return info, err
}

func (s *Spy) InitToken(slotID cryptoki.SlotID, pin []byte, label []byte) error {
	return s.call(operation.InitToken, []any{slotID, pin, label},
		func(m cryptoki.Module) error { return m.InitToken(slotID, pin, label) }, nil)
}

func (s *Spy) InitPIN(session cryptoki.SessionHandle, pin []byte) error {
	return s.call(operation.InitPIN, []any{session, pin},
		func(m cryptoki.Module) error { return m.InitPIN(session, pin) }, nil)
}

func (s *Spy) SetPIN(session cryptoki.SessionHandle, oldPin, newPin []byte) error {
	return s.call(operation.SetPIN, []any{session, oldPin, newPin},
		func(m cryptoki.Module) error { return m.SetPIN(session, oldPin, newPin) }, nil)
}

// Session management

func (s *Spy) OpenSession(slotID cryptoki.SlotID, flags cryptoki.Flags) (session cryptoki.SessionHandle, err error) {
	err = s.call(operation.OpenSession, []any{slotID, flags},
		func(m cryptoki.Module) (err error) { session, err = m.OpenSession(slotID, flags); return err },
		func() []any { return []any{session} })
	return session, err
}

func (s *Spy) CloseSession(session cryptoki.SessionHandle) error {
	return s.call(operation.CloseSession, []any{session},
		func(m cryptoki.Module) error { return m.CloseSession(session) }, nil)
}

func (s *Spy) CloseAllSessions(slotID cryptoki.SlotID) error {
	return s.call(operation.CloseAllSessions, []any{slotID},
		func(m cryptoki.Module) error { return m.CloseAllSessions(slotID) }, nil)
}

func (s *Spy) GetSessionInfo(session cryptoki.SessionHandle) (info cryptoki.SessionInfo, err error) {
	err = s.call(operation.GetSessionInfo, []any{session},
		func(m cryptoki.Module) (err error) { info, err = m.GetSessionInfo(session); return err },
		func() []any { return []any{info} })
	return info, err
}

func (s *Spy) GetOperationState(session cryptoki.SessionHandle, state []byte) (uint, error) {
	return s.output(operation.GetOperationState, []any{session}, state,
		func(m cryptoki.Module) (uint, error) { return m.GetOperationState(session, state) })
}

func (s *Spy) SetOperationState(session cryptoki.SessionHandle, state []byte, encryptionKey, authenticationKey cryptoki.ObjectHandle) error {
	return s.call(operation.SetOperationState, []any{session, state, encryptionKey, authenticationKey},
		func(m cryptoki.Module) error {
			return m.SetOperationState(session, state, encryptionKey, authenticationKey)
		}, nil)
}

func (s *Spy) Login(session cryptoki.SessionHandle, userType cryptoki.UserType, pin []byte) error {
	return s.call(operation.Login, []any{session, userType, pin},
		func(m cryptoki.Module) error { return m.Login(session, userType, pin) }, nil)
}

func (s *Spy) Logout(session cryptoki.SessionHandle) error {
	return s.call(operation.Logout, []any{session},
		func(m cryptoki.Module) error { return m.Logout(session) }, nil)
}

// Object management

func (s *Spy) CreateObject(session cryptoki.SessionHandle, template []cryptoki.Attribute) (object cryptoki.ObjectHandle, err error) {
	err = s.call(operation.CreateObject, []any{session, template},
		func(m cryptoki.Module) (err error) { object, err = m.CreateObject(session, template); return err },
		func() []any { return []any{object} })
	return object, err
}

func (s *Spy) CopyObject(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) (newObject cryptoki.ObjectHandle, err error) {
	err = s.call(operation.CopyObject, []any{session, object, template},
		func(m cryptoki.Module) (err error) { newObject, err = m.CopyObject(session, object, template); return err },
		func() []any { return []any{newObject} })
	return newObject, err
}

func (s *Spy) DestroyObject(session cryptoki.SessionHandle, object cryptoki.ObjectHandle) error {
	return s.call(operation.DestroyObject, []any{session, object},
		func(m cryptoki.Module) error { return m.DestroyObject(session, object) }, nil)
}

func (s *Spy) GetObjectSize(session cryptoki.SessionHandle, object cryptoki.ObjectHandle) (size uint, err error) {
	err = s.call(operation.GetObjectSize, []any{session, object},
		func(m cryptoki.Module) (err error) { size, err = m.GetObjectSize(session, object); return err },
		func() []any { return []any{size} })
	return size, err
}

func (s *Spy) GetAttributeValue(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) error {
	return s.call(operation.GetAttributeValue, []any{session, object, template},
		func(m cryptoki.Module) error { return m.GetAttributeValue(session, object, template) },
		func() []any { return []any{template} })
}

func (s *Spy) SetAttributeValue(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) error {
	return s.call(operation.SetAttributeValue, []any{session, object, template},
		func(m cryptoki.Module) error { return m.SetAttributeValue(session, object, template) }, nil)
}

func (s *Spy) FindObjectsInit(session cryptoki.SessionHandle, template []cryptoki.Attribute) error {
	return s.call(operation.FindObjectsInit, []any{session, template},
		func(m cryptoki.Module) error { return m.FindObjectsInit(session, template) }, nil)
}

func (s *Spy) FindObjects(session cryptoki.SessionHandle, objects []cryptoki.ObjectHandle) (n uint, err error) {
	err = s.call(operation.FindObjects, []any{session, len(objects)},
		func(m cryptoki.Module) (err error) { n, err = m.FindObjects(session, objects); return err },
		func() []any { return []any{clip(objects, n), n} })
	return n, err
}

func (s *Spy) FindObjectsFinal(session cryptoki.SessionHandle) error {
	return s.call(operation.FindObjectsFinal, []any{session},
		func(m cryptoki.Module) error { return m.FindObjectsFinal(session) }, nil)
}

// Encryption and decryption

func (s *Spy) EncryptInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return s.cryptoInit(operation.EncryptInit, session, mechanism, key, cryptoki.Module.EncryptInit)
}

func (s *Spy) Encrypt(session cryptoki.SessionHandle, data, encryptedData []byte) (uint, error) {
	return s.transform(operation.Encrypt, session, data, encryptedData, cryptoki.Module.Encrypt)
}

func (s *Spy) EncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	return s.transform(operation.EncryptUpdate, session, part, encryptedPart, cryptoki.Module.EncryptUpdate)
}

func (s *Spy) EncryptFinal(session cryptoki.SessionHandle, lastEncryptedPart []byte) (uint, error) {
	return s.final(operation.EncryptFinal, session, lastEncryptedPart, cryptoki.Module.EncryptFinal)
}

func (s *Spy) DecryptInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return s.cryptoInit(operation.DecryptInit, session, mechanism, key, cryptoki.Module.DecryptInit)
}

func (s *Spy) Decrypt(session cryptoki.SessionHandle, encryptedData, data []byte) (uint, error) {
	return s.transform(operation.Decrypt, session, encryptedData, data, cryptoki.Module.Decrypt)
}

func (s *Spy) DecryptUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	return s.transform(operation.DecryptUpdate, session, encryptedPart, part, cryptoki.Module.DecryptUpdate)
}

func (s *Spy) DecryptFinal(session cryptoki.SessionHandle, lastPart []byte) (uint, error) {
	return s.final(operation.DecryptFinal, session, lastPart, cryptoki.Module.DecryptFinal)
}

// Message digesting

func (s *Spy) DigestInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism) error {
	return s.call(operation.DigestInit, []any{session, mechanism},
		func(m cryptoki.Module) error { return m.DigestInit(session, mechanism) }, nil)
}

func (s *Spy) Digest(session cryptoki.SessionHandle, data, digest []byte) (uint, error) {
	return s.transform(operation.Digest, session, data, digest, cryptoki.Module.Digest)
}

func (s *Spy) DigestUpdate(session cryptoki.SessionHandle, part []byte) error {
	return s.update(operation.DigestUpdate, session, part, cryptoki.Module.DigestUpdate)
}

func (s *Spy) DigestKey(session cryptoki.SessionHandle, key cryptoki.ObjectHandle) error {
	return s.call(operation.DigestKey, []any{session, key},
		func(m cryptoki.Module) error { return m.DigestKey(session, key) }, nil)
}

func (s *Spy) DigestFinal(session cryptoki.SessionHandle, digest []byte) (uint, error) {
	return s.final(operation.DigestFinal, session, digest, cryptoki.Module.DigestFinal)
}

// Signing and MACing

func (s *Spy) SignInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return s.cryptoInit(operation.SignInit, session, mechanism, key, cryptoki.Module.SignInit)
}

func (s *Spy) Sign(session cryptoki.SessionHandle, data, signature []byte) (uint, error) {
	return s.transform(operation.Sign, session, data, signature, cryptoki.Module.Sign)
}

func (s *Spy) SignUpdate(session cryptoki.SessionHandle, part []byte) error {
	return s.update(operation.SignUpdate, session, part, cryptoki.Module.SignUpdate)
}

func (s *Spy) SignFinal(session cryptoki.SessionHandle, signature []byte) (uint, error) {
	return s.final(operation.SignFinal, session, signature, cryptoki.Module.SignFinal)
}

func (s *Spy) SignRecoverInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return s.cryptoInit(operation.SignRecoverInit, session, mechanism, key, cryptoki.Module.SignRecoverInit)
}

func (s *Spy) SignRecover(session cryptoki.SessionHandle, data, signature []byte) (uint, error) {
	return s.transform(operation.SignRecover, session, data, signature, cryptoki.Module.SignRecover)
}

// Verifying signatures and MACs

func (s *Spy) VerifyInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return s.cryptoInit(operation.VerifyInit, session, mechanism, key, cryptoki.Module.VerifyInit)
}

func (s *Spy) Verify(session cryptoki.SessionHandle, data, signature []byte) error {
	return s.call(operation.Verify, []any{session, data, signature},
		func(m cryptoki.Module) error { return m.Verify(session, data, signature) }, nil)
}

func (s *Spy) VerifyUpdate(session cryptoki.SessionHandle, part []byte) error {
	return s.update(operation.VerifyUpdate, session, part, cryptoki.Module.VerifyUpdate)
}

func (s *Spy) VerifyFinal(session cryptoki.SessionHandle, signature []byte) error {
	return s.update(operation.VerifyFinal, session, signature, cryptoki.Module.VerifyFinal)
}

func (s *Spy) VerifyRecoverInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return s.cryptoInit(operation.VerifyRecoverInit, session, mechanism, key, cryptoki.Module.VerifyRecoverInit)
}

func (s *Spy) VerifyRecover(session cryptoki.SessionHandle, signature, data []byte) (uint, error) {
	return s.transform(operation.VerifyRecover, session, signature, data, cryptoki.Module.VerifyRecover)
}

// Dual-function cryptographic operations

func (s *Spy) DigestEncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	return s.transform(operation.DigestEncryptUpdate, session, part, encryptedPart, cryptoki.Module.DigestEncryptUpdate)
}

func (s *Spy) DecryptDigestUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	return s.transform(operation.DecryptDigestUpdate, session, encryptedPart, part, cryptoki.Module.DecryptDigestUpdate)
}

func (s *Spy) SignEncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	return s.transform(operation.SignEncryptUpdate, session, part, encryptedPart, cryptoki.Module.SignEncryptUpdate)
}

func (s *Spy) DecryptVerifyUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	return s.transform(operation.DecryptVerifyUpdate, session, encryptedPart, part, cryptoki.Module.DecryptVerifyUpdate)
}

// Key management

func (s *Spy) GenerateKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, template []cryptoki.Attribute) (key cryptoki.ObjectHandle, err error) {
	err = s.call(operation.GenerateKey, []any{session, mechanism, template},
		func(m cryptoki.Module) (err error) { key, err = m.GenerateKey(session, mechanism, template); return err },
		func() []any { return []any{key} })
	return key, err
}

func (s *Spy) GenerateKeyPair(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, publicKeyTemplate, privateKeyTemplate []cryptoki.Attribute) (publicKey, privateKey cryptoki.ObjectHandle, err error) {
	err = s.call(operation.GenerateKeyPair, []any{session, mechanism, publicKeyTemplate, privateKeyTemplate},
		func(m cryptoki.Module) (err error) {
			publicKey, privateKey, err = m.GenerateKeyPair(session, mechanism, publicKeyTemplate, privateKeyTemplate)
			return err
		},
		func() []any { return []any{publicKey, privateKey} })
	return publicKey, privateKey, err
}

func (s *Spy) WrapKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, wrappingKey, key cryptoki.ObjectHandle, wrappedKey []byte) (uint, error) {
	return s.output(operation.WrapKey, []any{session, mechanism, wrappingKey, key}, wrappedKey,
		func(m cryptoki.Module) (uint, error) { return m.WrapKey(session, mechanism, wrappingKey, key, wrappedKey) })
}

func (s *Spy) UnwrapKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, unwrappingKey cryptoki.ObjectHandle, wrappedKey []byte, template []cryptoki.Attribute) (key cryptoki.ObjectHandle, err error) {
	err = s.call(operation.UnwrapKey, []any{session, mechanism, unwrappingKey, wrappedKey, template},
		func(m cryptoki.Module) (err error) {
			key, err = m.UnwrapKey(session, mechanism, unwrappingKey, wrappedKey, template)
			return err
		},
		func() []any { return []any{key} })
	return key, err
}

func (s *Spy) DeriveKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, baseKey cryptoki.ObjectHandle, template []cryptoki.Attribute) (key cryptoki.ObjectHandle, err error) {
	err = s.call(operation.DeriveKey, []any{session, mechanism, baseKey, template},
		func(m cryptoki.Module) (err error) { key, err = m.DeriveKey(session, mechanism, baseKey, template); return err },
		func() []any { return []any{key} })
	return key, err
}

// Random number generation

func (s *Spy) SeedRandom(session cryptoki.SessionHandle, seed []byte) error {
	return s.update(operation.SeedRandom, session, seed, cryptoki.Module.SeedRandom)
}

func (s *Spy) GenerateRandom(session cryptoki.SessionHandle, randomData []byte) error {
	return s.call(operation.GenerateRandom, []any{session, len(randomData)},
		func(m cryptoki.Module) error { return m.GenerateRandom(session, randomData) },
		func() []any { return []any{randomData} })
}

// Parallel function management

func (s *Spy) GetFunctionStatus(session cryptoki.SessionHandle) error {
	return s.call(operation.GetFunctionStatus, []any{session},
		func(m cryptoki.Module) error { return m.GetFunctionStatus(session) }, nil)
}

func (s *Spy) CancelFunction(session cryptoki.SessionHandle) error {
	return s.call(operation.CancelFunction, []any{session},
		func(m cryptoki.Module) error { return m.CancelFunction(session) }, nil)
}

// Slot events

func (s *Spy) WaitForSlotEvent(flags cryptoki.Flags) (slotID cryptoki.SlotID, err error) {
	err = s.call(operation.WaitForSlotEvent, []any{flags},
		func(m cryptoki.Module) (err error) { slotID, err = m.WaitForSlotEvent(flags); return err },
		func() []any { return []any{slotID} })
	return slotID, err
}

// Shapes shared by several operations. The forward functions are method expressions on
// cryptoki.Module.

func (s *Spy) cryptoInit(id operation.ID, session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle,
	forward func(cryptoki.Module, cryptoki.SessionHandle, *cryptoki.Mechanism, cryptoki.ObjectHandle) error) error {
	return s.call(id, []any{session, mechanism, key},
		func(m cryptoki.Module) error { return forward(m, session, mechanism, key) }, nil)
}

func (s *Spy) update(id operation.ID, session cryptoki.SessionHandle, part []byte,
	forward func(cryptoki.Module, cryptoki.SessionHandle, []byte) error) error {
	return s.call(id, []any{session, part},
		func(m cryptoki.Module) error { return forward(m, session, part) }, nil)
}

// output traces operations ending in an output buffer and its in/out length.
func (s *Spy) output(id operation.ID, inputs []any, out []byte, forward func(cryptoki.Module) (uint, error)) (n uint, err error) {
	err = s.call(id, append(inputs, len(out)),
		func(m cryptoki.Module) (err error) { n, err = forward(m); return err },
		func() []any { return []any{clip(out, n), n} })
	return n, err
}

func (s *Spy) transform(id operation.ID, session cryptoki.SessionHandle, in, out []byte,
	forward func(cryptoki.Module, cryptoki.SessionHandle, []byte, []byte) (uint, error)) (uint, error) {
	return s.output(id, []any{session, in}, out,
		func(m cryptoki.Module) (uint, error) { return forward(m, session, in, out) })
}

func (s *Spy) final(id operation.ID, session cryptoki.SessionHandle, out []byte,
	forward func(cryptoki.Module, cryptoki.SessionHandle, []byte) (uint, error)) (uint, error) {
	return s.output(id, []any{session}, out,
		func(m cryptoki.Module) (uint, error) { return forward(m, session, out) })
}

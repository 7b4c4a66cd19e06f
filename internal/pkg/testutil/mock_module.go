//go:build unit || integration
// +build unit integration

package testutil

import (
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"

	"github.com/stretchr/testify/mock"
)

// MockModule is a testify mock of cryptoki.Module used as the wrapped backend in tests.
// Outputs are written by the test through mock.Call.Run.
type MockModule struct {
	mock.Mock
}

var _ cryptoki.Module = (*MockModule)(nil)

func (m *MockModule) Initialize(args *cryptoki.InitializeArgs) error {
	return m.Called(args).Error(0)
}

func (m *MockModule) Finalize() error {
	return m.Called().Error(0)
}

func (m *MockModule) GetInfo() (cryptoki.Info, error) {
	args := m.Called()
	return args.Get(0).(cryptoki.Info), args.Error(1)
}

func (m *MockModule) GetSlotList(tokenPresent bool, slots []cryptoki.SlotID) (uint, error) {
	args := m.Called(tokenPresent, slots)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) GetSlotInfo(slotID cryptoki.SlotID) (cryptoki.SlotInfo, error) {
	args := m.Called(slotID)
	return args.Get(0).(cryptoki.SlotInfo), args.Error(1)
}

func (m *MockModule) GetTokenInfo(slotID cryptoki.SlotID) (cryptoki.TokenInfo, error) {
	args := m.Called(slotID)
	return args.Get(0).(cryptoki.TokenInfo), args.Error(1)
}

func (m *MockModule) GetMechanismList(slotID cryptoki.SlotID, mechanisms []cryptoki.MechanismType) (uint, error) {
	args := m.Called(slotID, mechanisms)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) GetMechanismInfo(slotID cryptoki.SlotID, mechanism cryptoki.MechanismType) (cryptoki.MechanismInfo, error) {
	args := m.Called(slotID, mechanism)
	return args.Get(0).(cryptoki.MechanismInfo), args.Error(1)
}

func (m *MockModule) InitToken(slotID cryptoki.SlotID, pin []byte, label []byte) error {
	return m.Called(slotID, pin, label).Error(0)
}

func (m *MockModule) InitPIN(session cryptoki.SessionHandle, pin []byte) error {
	return m.Called(session, pin).Error(0)
}

func (m *MockModule) SetPIN(session cryptoki.SessionHandle, oldPin, newPin []byte) error {
	return m.Called(session, oldPin, newPin).Error(0)
}

func (m *MockModule) OpenSession(slotID cryptoki.SlotID, flags cryptoki.Flags) (cryptoki.SessionHandle, error) {
	args := m.Called(slotID, flags)
	return args.Get(0).(cryptoki.SessionHandle), args.Error(1)
}

func (m *MockModule) CloseSession(session cryptoki.SessionHandle) error {
	return m.Called(session).Error(0)
}

func (m *MockModule) CloseAllSessions(slotID cryptoki.SlotID) error {
	return m.Called(slotID).Error(0)
}

func (m *MockModule) GetSessionInfo(session cryptoki.SessionHandle) (cryptoki.SessionInfo, error) {
	args := m.Called(session)
	return args.Get(0).(cryptoki.SessionInfo), args.Error(1)
}

func (m *MockModule) GetOperationState(session cryptoki.SessionHandle, state []byte) (uint, error) {
	args := m.Called(session, state)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) SetOperationState(session cryptoki.SessionHandle, state []byte, encryptionKey, authenticationKey cryptoki.ObjectHandle) error {
	return m.Called(session, state, encryptionKey, authenticationKey).Error(0)
}

func (m *MockModule) Login(session cryptoki.SessionHandle, userType cryptoki.UserType, pin []byte) error {
	return m.Called(session, userType, pin).Error(0)
}

func (m *MockModule) Logout(session cryptoki.SessionHandle) error {
	return m.Called(session).Error(0)
}

func (m *MockModule) CreateObject(session cryptoki.SessionHandle, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	args := m.Called(session, template)
	return args.Get(0).(cryptoki.ObjectHandle), args.Error(1)
}

func (m *MockModule) CopyObject(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	args := m.Called(session, object, template)
	return args.Get(0).(cryptoki.ObjectHandle), args.Error(1)
}

func (m *MockModule) DestroyObject(session cryptoki.SessionHandle, object cryptoki.ObjectHandle) error {
	return m.Called(session, object).Error(0)
}

func (m *MockModule) GetObjectSize(session cryptoki.SessionHandle, object cryptoki.ObjectHandle) (uint, error) {
	args := m.Called(session, object)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) GetAttributeValue(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) error {
	return m.Called(session, object, template).Error(0)
}

func (m *MockModule) SetAttributeValue(session cryptoki.SessionHandle, object cryptoki.ObjectHandle, template []cryptoki.Attribute) error {
	return m.Called(session, object, template).Error(0)
}

func (m *MockModule) FindObjectsInit(session cryptoki.SessionHandle, template []cryptoki.Attribute) error {
	return m.Called(session, template).Error(0)
}

func (m *MockModule) FindObjects(session cryptoki.SessionHandle, objects []cryptoki.ObjectHandle) (uint, error) {
	args := m.Called(session, objects)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) FindObjectsFinal(session cryptoki.SessionHandle) error {
	return m.Called(session).Error(0)
}

func (m *MockModule) EncryptInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.Called(session, mechanism, key).Error(0)
}

func (m *MockModule) Encrypt(session cryptoki.SessionHandle, data, encryptedData []byte) (uint, error) {
	args := m.Called(session, data, encryptedData)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) EncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	args := m.Called(session, part, encryptedPart)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) EncryptFinal(session cryptoki.SessionHandle, lastEncryptedPart []byte) (uint, error) {
	args := m.Called(session, lastEncryptedPart)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DecryptInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.Called(session, mechanism, key).Error(0)
}

func (m *MockModule) Decrypt(session cryptoki.SessionHandle, encryptedData, data []byte) (uint, error) {
	args := m.Called(session, encryptedData, data)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DecryptUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	args := m.Called(session, encryptedPart, part)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DecryptFinal(session cryptoki.SessionHandle, lastPart []byte) (uint, error) {
	args := m.Called(session, lastPart)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DigestInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism) error {
	return m.Called(session, mechanism).Error(0)
}

func (m *MockModule) Digest(session cryptoki.SessionHandle, data, digest []byte) (uint, error) {
	args := m.Called(session, data, digest)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DigestUpdate(session cryptoki.SessionHandle, part []byte) error {
	return m.Called(session, part).Error(0)
}

func (m *MockModule) DigestKey(session cryptoki.SessionHandle, key cryptoki.ObjectHandle) error {
	return m.Called(session, key).Error(0)
}

func (m *MockModule) DigestFinal(session cryptoki.SessionHandle, digest []byte) (uint, error) {
	args := m.Called(session, digest)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) SignInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.Called(session, mechanism, key).Error(0)
}

func (m *MockModule) Sign(session cryptoki.SessionHandle, data, signature []byte) (uint, error) {
	args := m.Called(session, data, signature)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) SignUpdate(session cryptoki.SessionHandle, part []byte) error {
	return m.Called(session, part).Error(0)
}

func (m *MockModule) SignFinal(session cryptoki.SessionHandle, signature []byte) (uint, error) {
	args := m.Called(session, signature)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) SignRecoverInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.Called(session, mechanism, key).Error(0)
}

func (m *MockModule) SignRecover(session cryptoki.SessionHandle, data, signature []byte) (uint, error) {
	args := m.Called(session, data, signature)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) VerifyInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.Called(session, mechanism, key).Error(0)
}

func (m *MockModule) Verify(session cryptoki.SessionHandle, data, signature []byte) error {
	return m.Called(session, data, signature).Error(0)
}

func (m *MockModule) VerifyUpdate(session cryptoki.SessionHandle, part []byte) error {
	return m.Called(session, part).Error(0)
}

func (m *MockModule) VerifyFinal(session cryptoki.SessionHandle, signature []byte) error {
	return m.Called(session, signature).Error(0)
}

func (m *MockModule) VerifyRecoverInit(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, key cryptoki.ObjectHandle) error {
	return m.Called(session, mechanism, key).Error(0)
}

func (m *MockModule) VerifyRecover(session cryptoki.SessionHandle, signature, data []byte) (uint, error) {
	args := m.Called(session, signature, data)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DigestEncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	args := m.Called(session, part, encryptedPart)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DecryptDigestUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	args := m.Called(session, encryptedPart, part)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) SignEncryptUpdate(session cryptoki.SessionHandle, part, encryptedPart []byte) (uint, error) {
	args := m.Called(session, part, encryptedPart)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) DecryptVerifyUpdate(session cryptoki.SessionHandle, encryptedPart, part []byte) (uint, error) {
	args := m.Called(session, encryptedPart, part)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) GenerateKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	args := m.Called(session, mechanism, template)
	return args.Get(0).(cryptoki.ObjectHandle), args.Error(1)
}

func (m *MockModule) GenerateKeyPair(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, publicKeyTemplate, privateKeyTemplate []cryptoki.Attribute) (cryptoki.ObjectHandle, cryptoki.ObjectHandle, error) {
	args := m.Called(session, mechanism, publicKeyTemplate, privateKeyTemplate)
	return args.Get(0).(cryptoki.ObjectHandle), args.Get(1).(cryptoki.ObjectHandle), args.Error(2)
}

func (m *MockModule) WrapKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, wrappingKey, key cryptoki.ObjectHandle, wrappedKey []byte) (uint, error) {
	args := m.Called(session, mechanism, wrappingKey, key, wrappedKey)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockModule) UnwrapKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, unwrappingKey cryptoki.ObjectHandle, wrappedKey []byte, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	args := m.Called(session, mechanism, unwrappingKey, wrappedKey, template)
	return args.Get(0).(cryptoki.ObjectHandle), args.Error(1)
}

func (m *MockModule) DeriveKey(session cryptoki.SessionHandle, mechanism *cryptoki.Mechanism, baseKey cryptoki.ObjectHandle, template []cryptoki.Attribute) (cryptoki.ObjectHandle, error) {
	args := m.Called(session, mechanism, baseKey, template)
	return args.Get(0).(cryptoki.ObjectHandle), args.Error(1)
}

func (m *MockModule) SeedRandom(session cryptoki.SessionHandle, seed []byte) error {
	return m.Called(session, seed).Error(0)
}

func (m *MockModule) GenerateRandom(session cryptoki.SessionHandle, randomData []byte) error {
	return m.Called(session, randomData).Error(0)
}

func (m *MockModule) GetFunctionStatus(session cryptoki.SessionHandle) error {
	return m.Called(session).Error(0)
}

func (m *MockModule) CancelFunction(session cryptoki.SessionHandle) error {
	return m.Called(session).Error(0)
}

func (m *MockModule) WaitForSlotEvent(flags cryptoki.Flags) (cryptoki.SlotID, error) {
	args := m.Called(flags)
	return args.Get(0).(cryptoki.SlotID), args.Error(1)
}

//go:build unit
// +build unit

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/testutil"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testModule = "libfake-pkcs11.so"

type fakeBinding struct {
	module  cryptoki.Module
	unloads int
}

func (b *fakeBinding) Module() cryptoki.Module { return b.module }
func (b *fakeBinding) Locator() string         { return testModule }

func (b *fakeBinding) Unload() error {
	b.unloads++
	return nil
}

type fakeLoader struct {
	binding *fakeBinding
}

func (l *fakeLoader) Load(string) (cryptoki.Binding, error) {
	return l.binding, nil
}

// executeCommand runs the CLI with args against handler and returns stdout.
func executeCommand(t *testing.T, handler *SpyCommandsHandler, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvModule, "")
	t.Setenv(config.EnvOutput, "")

	rootCmd := &cobra.Command{Use: "pkcs11-spy-cli"}
	require.NoError(t, initSpyCommands(rootCmd, handler))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func padded(s string, n int) []byte {
	b := bytes.Repeat([]byte{' '}, n)
	copy(b, s)
	return b
}

func expectProbe(m *testutil.MockModule) {
	var info cryptoki.Info
	info.CryptokiVersion = cryptoki.Version{Major: 2, Minor: 40}
	copy(info.ManufacturerID[:], padded("Fake Corp", 32))
	copy(info.LibraryDescription[:], padded("Fake PKCS#11", 32))

	var slotInfo cryptoki.SlotInfo
	copy(slotInfo.SlotDescription[:], padded("Fake Slot", 64))
	slotInfo.Flags = 0x1

	var tokenInfo cryptoki.TokenInfo
	copy(tokenInfo.Label[:], padded("spy-token", 32))
	copy(tokenInfo.SerialNumber[:], padded("0001", 16))

	m.On("Initialize", mock.Anything).Return(nil)
	m.On("GetInfo").Return(info, nil)
	m.On("GetSlotList", true, []cryptoki.SlotID(nil)).Return(uint(1), nil)
	m.On("GetSlotList", true, []cryptoki.SlotID{0}).
		Run(func(args mock.Arguments) {
			args.Get(1).([]cryptoki.SlotID)[0] = 3
		}).
		Return(uint(1), nil)
	m.On("GetSlotInfo", cryptoki.SlotID(3)).Return(slotInfo, nil)
	m.On("GetTokenInfo", cryptoki.SlotID(3)).Return(tokenInfo, nil)
	m.On("GetMechanismList", cryptoki.SlotID(3), []cryptoki.MechanismType(nil)).Return(uint(2), nil)
	m.On("GetMechanismList", cryptoki.SlotID(3), []cryptoki.MechanismType{0, 0}).
		Run(func(args mock.Arguments) {
			mechs := args.Get(1).([]cryptoki.MechanismType)
			mechs[0] = 0x1   // CKM_RSA_PKCS
			mechs[1] = 0x250 // CKM_SHA256
		}).
		Return(uint(2), nil)
	m.On("GetMechanismInfo", cryptoki.SlotID(3), cryptoki.MechanismType(0x1)).
		Return(cryptoki.MechanismInfo{MinKeySize: 1024, MaxKeySize: 4096, Flags: 0x800}, nil)
	m.On("GetMechanismInfo", cryptoki.SlotID(3), cryptoki.MechanismType(0x250)).
		Return(cryptoki.MechanismInfo{}, cryptoki.StatusFunctionFailed)
	m.On("Finalize").Return(nil)
}

func TestOperationsCmd(t *testing.T) {
	out, err := executeCommand(t, NewSpyCommandsHandler(), "operations")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, operation.Count)
	assert.Contains(t, lines[0], "C_Initialize(pInitArgs)")
	assert.Contains(t, out, "C_WaitForSlotEvent")

	out, err = executeCommand(t, NewSpyCommandsHandler(), "operations", "GetAttributeValue")
	require.NoError(t, err)
	assert.Contains(t, out, "C_GetAttributeValue")
	assert.Contains(t, out, "[inout]")
	assert.Contains(t, out, "pTemplate")

	_, err = executeCommand(t, NewSpyCommandsHandler(), "operations", "C_Nope")
	assert.Error(t, err)
}

func TestLookupCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"status by code", []string{"status", "0x150"}, "0x00000150  CKR_BUFFER_TOO_SMALL"},
		{"status by name", []string{"CKR", "CKR_PIN_INCORRECT"}, "0x000000A0  CKR_PIN_INCORRECT"},
		{"mechanism without prefix", []string{"mechanism", "rsa_pkcs"}, "0x00000001  CKM_RSA_PKCS"},
		{"unknown code", []string{"status", "0x7fff"}, "0x00007FFF  unknown(0x7FFF)"},
		{"whole domain", []string{"user"}, "0x00000001  CKU_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, NewSpyCommandsHandler(), append([]string{"lookup"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.expected)
		})
	}
}

func TestLookupCmd_Errors(t *testing.T) {
	_, err := executeCommand(t, NewSpyCommandsHandler(), "lookup")
	assert.Error(t, err)

	_, err = executeCommand(t, NewSpyCommandsHandler(), "lookup", "colour", "1")
	assert.Error(t, err)

	_, err = executeCommand(t, NewSpyCommandsHandler(), "lookup", "status", "CKR_NOT_A_STATUS")
	assert.Error(t, err)
}

func TestProbeCmd(t *testing.T) {
	module := &testutil.MockModule{}
	expectProbe(module)
	binding := &fakeBinding{module: module}
	handler := &SpyCommandsHandler{loader: &fakeLoader{binding: binding}}

	tracePath := filepath.Join(t.TempDir(), "trace.log")
	out, err := executeCommand(t, handler, "probe", "--module", testModule, "--output", tracePath)
	require.NoError(t, err)
	module.AssertExpectations(t)

	assert.Contains(t, out, "Module:      "+testModule)
	assert.Contains(t, out, "Library:     Fake PKCS#11 0.0 (Fake Corp)")
	assert.Contains(t, out, "Slot 3: Fake Slot")
	assert.Contains(t, out, `Token: "spy-token"`)
	assert.Contains(t, out, "CKM_RSA_PKCS")
	assert.Contains(t, out, "error: C_GetMechanismInfo(CKM_SHA256): CKR_FUNCTION_FAILED")
	assert.Equal(t, 1, binding.unloads)

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	trace := string(data)
	assert.Contains(t, trace, `Loaded: "`+testModule+`"`)
	for _, name := range []string{"C_Initialize", "C_GetInfo", "C_GetSlotList", "C_GetSlotInfo", "C_GetTokenInfo", "C_GetMechanismList", "C_GetMechanismInfo", "C_Finalize"} {
		assert.Contains(t, trace, name)
	}
	assert.Contains(t, trace, "Returned:  6 CKR_FUNCTION_FAILED")
}

func TestProbeCmd_JSON(t *testing.T) {
	module := &testutil.MockModule{}
	expectProbe(module)
	handler := &SpyCommandsHandler{loader: &fakeLoader{binding: &fakeBinding{module: module}}}

	out, err := executeCommand(t, handler, "probe", "--json",
		"--module", testModule, "--output", filepath.Join(t.TempDir(), "trace.log"))
	require.NoError(t, err)

	assert.Contains(t, out, `"module": "`+testModule+`"`)
	assert.Contains(t, out, `"cryptoki_version": "2.40"`)
	assert.Contains(t, out, `"serial_number": "0001"`)
}

func TestProbeModule_InitializeFails(t *testing.T) {
	module := &testutil.MockModule{}
	module.On("Initialize", mock.Anything).Return(cryptoki.StatusCryptokiAlreadyInitialized)

	report, err := probeModule(module, true)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "C_Initialize returned CKR_CRYPTOKI_ALREADY_INITIALIZED")
	module.AssertNotCalled(t, "Finalize")
}

func TestProbeModule_NoSlots(t *testing.T) {
	module := &testutil.MockModule{}
	module.On("Initialize", mock.Anything).Return(nil)
	module.On("GetInfo").Return(cryptoki.Info{}, nil)
	module.On("GetSlotList", false, []cryptoki.SlotID(nil)).Return(uint(0), nil)
	module.On("Finalize").Return(cryptoki.StatusFunctionFailed)

	report, err := probeModule(module, false)
	require.Error(t, err, "a failed C_Finalize is reported")
	assert.Contains(t, err.Error(), "C_Finalize returned CKR_FUNCTION_FAILED")
	require.NotNil(t, report)
	assert.Empty(t, report.Slots)
	module.AssertNumberOfCalls(t, "GetSlotList", 1)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvModule, "from-env.so")
	t.Setenv(config.EnvOutput, "")

	flags := globalFlags{
		module:      "from-flag.so",
		format:      config.TraceFormatJSON,
		metricsAddr: "localhost:9464",
		otelStdout:  true,
	}
	cfg, err := flags.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-flag.so", cfg.Spy.Module)
	assert.Equal(t, config.OutputStderr, cfg.Spy.Output)
	assert.Equal(t, config.TraceFormatJSON, cfg.Trace.Format)
	assert.Equal(t, "localhost:9464", cfg.Metrics.Address)
	assert.Equal(t, config.TelemetryExporterStdout, cfg.Telemetry.Exporter)

	_, err = (&globalFlags{format: "xml"}).loadConfig()
	assert.Error(t, err)
}

func TestOfflineCmds_LeaveTraceUntouched(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.log")

	for _, args := range [][]string{{"operations"}, {"lookup", "status", "0x0"}} {
		_, err := executeCommand(t, NewSpyCommandsHandler(), append(args, "--output", tracePath)...)
		require.NoError(t, err)
	}

	_, err := os.Stat(tracePath)
	assert.True(t, os.IsNotExist(err), "no trace file without a module")
}

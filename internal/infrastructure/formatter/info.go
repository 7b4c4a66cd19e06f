package formatter

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
)

type field struct {
	name  string
	value string
}

// Info renders CK_INFO, CK_SLOT_INFO, CK_TOKEN_INFO, CK_SESSION_INFO, CK_MECHANISM_INFO
// and CK_C_INITIALIZE_ARGS records field by field. Padded strings are trimmed.
func (f *Formatter) Info(v any) string {
	var fields []field
	switch info := v.(type) {
	case cryptoki.Info:
		fields = []field{
			{"cryptokiVersion", version(info.CryptokiVersion)},
			{"manufacturerID", padded(info.ManufacturerID[:])},
			{"flags", f.Scalar(info.Flags)},
			{"libraryDescription", padded(info.LibraryDescription[:])},
			{"libraryVersion", version(info.LibraryVersion)},
		}
	case cryptoki.SlotInfo:
		fields = []field{
			{"slotDescription", padded(info.SlotDescription[:])},
			{"manufacturerID", padded(info.ManufacturerID[:])},
			{"flags", f.Scalar(info.Flags)},
			{"hardwareVersion", version(info.HardwareVersion)},
			{"firmwareVersion", version(info.FirmwareVersion)},
		}
	case cryptoki.TokenInfo:
		fields = []field{
			{"label", padded(info.Label[:])},
			{"manufacturerID", padded(info.ManufacturerID[:])},
			{"model", padded(info.Model[:])},
			{"serialNumber", padded(info.SerialNumber[:])},
			{"flags", f.Scalar(info.Flags)},
			{"ulMaxSessionCount", f.count(info.MaxSessionCount)},
			{"ulSessionCount", f.count(info.SessionCount)},
			{"ulMaxRwSessionCount", f.count(info.MaxRwSessionCount)},
			{"ulRwSessionCount", f.count(info.RwSessionCount)},
			{"ulMaxPinLen", f.count(info.MaxPinLen)},
			{"ulMinPinLen", f.count(info.MinPinLen)},
			{"ulTotalPublicMemory", f.count(info.TotalPublicMemory)},
			{"ulFreePublicMemory", f.count(info.FreePublicMemory)},
			{"ulTotalPrivateMemory", f.count(info.TotalPrivateMemory)},
			{"ulFreePrivateMemory", f.count(info.FreePrivateMemory)},
			{"hardwareVersion", version(info.HardwareVersion)},
			{"firmwareVersion", version(info.FirmwareVersion)},
			{"time", padded(info.UTCTime[:])},
		}
	case cryptoki.SessionInfo:
		fields = []field{
			{"slotID", f.Scalar(info.SlotID)},
			{"state", f.registry.Lookup(enums.SessionState, info.State)},
			{"flags", f.Scalar(info.Flags)},
			{"ulDeviceError", f.Scalar(info.DeviceError)},
		}
	case cryptoki.MechanismInfo:
		fields = []field{
			{"ulMinKeySize", f.count(info.MinKeySize)},
			{"ulMaxKeySize", f.count(info.MaxKeySize)},
			{"flags", f.Scalar(info.Flags)},
		}
	case *cryptoki.InitializeArgs:
		if info == nil {
			return NotSupplied
		}
		fields = []field{{"flags", f.Scalar(info.Flags)}}
	default:
		return Opaque(v)
	}

	lines := make([]string, len(fields))
	for i, fl := range fields {
		lines[i] = fmt.Sprintf("%s: %s", fl.name, fl.value)
	}
	return strings.Join(lines, "\n")
}

// Mechanism renders the mechanism type and its parameter.
func (f *Formatter) Mechanism(m *cryptoki.Mechanism) string {
	if m == nil {
		return NotSupplied
	}
	name := f.registry.Lookup(enums.Mechanism, uint(m.Type))
	if len(m.Parameter) == 0 {
		return name
	}
	return fmt.Sprintf("%s\nparameter[%d]:\n%s", name, len(m.Parameter), indent(f.Buffer(m.Parameter), "    "))
}

func (f *Formatter) count(n uint) string {
	if n == cryptoki.UnavailableInformation {
		return "unavailable"
	}
	return fmt.Sprintf("%d", n)
}

func version(v cryptoki.Version) string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

func padded(b []byte) string {
	return fmt.Sprintf("'%s'", strings.TrimRight(string(b), " \x00"))
}

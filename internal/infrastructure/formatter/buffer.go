package formatter

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
)

// Buffer renders a bounded hex and ASCII dump. A nil buffer is not supplied, an empty
// one renders as an empty string.
func (f *Formatter) Buffer(b []byte) string {
	if b == nil {
		return NotSupplied
	}
	if len(b) == 0 {
		return ""
	}

	shown := b
	if len(shown) > f.maxDump {
		shown = shown[:f.maxDump]
	}
	dump := strings.TrimSuffix(hex.Dump(shown), "\n")
	if rest := len(b) - len(shown); rest > 0 {
		dump += fmt.Sprintf("\n... %d more bytes", rest)
	}
	return dump
}

// HandleArray renders slot, object or mechanism lists in order, one element per line.
// Elements are translated through d when it names a domain.
func (f *Formatter) HandleArray(d enums.Domain, v any) string {
	if isNil(v) {
		return NotSupplied
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return NotSupplied
	}
	if rv.Len() == 0 {
		return ""
	}

	lines := make([]string, rv.Len())
	for i := range lines {
		elem := rv.Index(i).Interface()
		if d != enums.None {
			lines[i] = fmt.Sprintf("[%d] %s", i, f.Enum(d, elem))
		} else {
			lines[i] = fmt.Sprintf("[%d] %s", i, f.Scalar(elem))
		}
	}
	return strings.Join(lines, "\n")
}

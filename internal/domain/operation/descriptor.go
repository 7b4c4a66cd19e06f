package operation

import (
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
)

// Direction tells whether a parameter is read by the module, written by it, or both.
type Direction int

// Parameter directions
const (
	In Direction = iota
	Out
	InOut
)

// String returns the trace prefix of the direction.
func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	default:
		return "unknown"
	}
}

// Reads reports whether the parameter is rendered on entry.
func (d Direction) Reads() bool {
	return d == In || d == InOut
}

// Writes reports whether the parameter is rendered on a successful exit.
func (d Direction) Writes() bool {
	return d == Out || d == InOut
}

// Kind is the shape of a parameter value.
type Kind int

// Parameter kinds
const (
	// Scalar is a CK_ULONG-like value: handles, flags, lengths, booleans.
	Scalar Kind = iota
	// Buffer is a byte array with an explicit length.
	Buffer
	// Template is an attribute template.
	Template
	// HandleArray is an array of slot, object or mechanism identifiers.
	HandleArray
	// Enum is a scalar translated through an enums.Domain.
	Enum
	// Mechanism is a CK_MECHANISM.
	Mechanism
	// Info is a fixed info record (CK_INFO, CK_SLOT_INFO, ...) or CK_C_INITIALIZE_ARGS.
	Info
	// Opaque values are only rendered as supplied or not supplied.
	Opaque
)

var kindNames = map[Kind]string{
	Scalar:      "scalar",
	Buffer:      "buffer",
	Template:    "attribute-template",
	HandleArray: "handle-array",
	Enum:        "enum",
	Mechanism:   "mechanism",
	Info:        "info",
	Opaque:      "opaque",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Param describes one parameter of an operation.
type Param struct {
	Name string
	Dir  Direction
	Kind Kind
	// Enum is the symbolic domain used for Enum kinds and for HandleArray elements
	// that are enumerated codes (mechanism lists).
	Enum enums.Domain
}

// Descriptor describes one operation. Descriptors are immutable and shared.
type Descriptor struct {
	ID     ID
	Name   string
	Params []Param
}

// Inputs returns the parameters rendered on entry.
func (d Descriptor) Inputs() []Param {
	return d.filter(Direction.Reads)
}

// Outputs returns the parameters rendered on a successful exit.
func (d Descriptor) Outputs() []Param {
	return d.filter(Direction.Writes)
}

func (d Descriptor) filter(keep func(Direction) bool) []Param {
	var params []Param
	for _, p := range d.Params {
		if keep(p.Dir) {
			params = append(params, p)
		}
	}
	return params
}

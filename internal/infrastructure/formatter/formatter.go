// Package formatter renders PKCS#11 parameter values into trace records.
// Rendering is pure: it never mutates its inputs and never reads past a declared length.
package formatter

import (
	"fmt"
	"reflect"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/operation"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/enums"
)

// DefaultMaxDump is the number of buffer bytes dumped inline before truncation.
const DefaultMaxDump = 512

// NotSupplied is rendered for absent (nil) values.
const NotSupplied = "not supplied"

// Formatter renders values according to their operation.Param description.
type Formatter struct {
	registry *enums.Registry
	maxDump  int
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithMaxDump bounds inline buffer dumps. Non-positive values keep the default.
func WithMaxDump(n int) Option {
	return func(f *Formatter) {
		if n > 0 {
			f.maxDump = n
		}
	}
}

// WithRegistry replaces the default enum registry.
func WithRegistry(r *enums.Registry) Option {
	return func(f *Formatter) {
		if r != nil {
			f.registry = r
		}
	}
}

// New creates a Formatter.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		registry: enums.Default(),
		maxDump:  DefaultMaxDump,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Registry returns the enum registry used for symbolic names.
func (f *Formatter) Registry() *enums.Registry {
	return f.registry
}

// Format renders v as parameter p. Values rendered on entry are tagged "in", values
// rendered on exit "out". An in/out template rendered on entry shows the request only.
func (f *Formatter) Format(p operation.Param, phase trace.Phase, v any) trace.Record {
	rec := trace.Record{Name: p.Name, Dir: "in"}
	if phase == trace.PhaseExit {
		rec.Dir = "out"
	}

	switch p.Kind {
	case operation.Scalar:
		rec.Text = f.Scalar(v)
	case operation.Enum:
		rec.Text = f.Enum(p.Enum, v)
	case operation.Buffer:
		b, _ := v.([]byte)
		if b != nil {
			rec.Name = fmt.Sprintf("%s[%d]", p.Name, len(b))
		}
		rec.Text = f.Buffer(b)
	case operation.Template:
		t, _ := v.([]cryptoki.Attribute)
		if t != nil {
			rec.Name = fmt.Sprintf("%s[%d]", p.Name, len(t))
		}
		if phase == trace.PhaseEntry && p.Dir == operation.InOut {
			rec.Text = f.TemplateRequest(t)
		} else {
			rec.Text = f.Template(t)
		}
	case operation.HandleArray:
		if n, ok := sliceLen(v); ok {
			rec.Name = fmt.Sprintf("%s[%d]", p.Name, n)
		}
		rec.Text = f.HandleArray(p.Enum, v)
	case operation.Mechanism:
		m, _ := v.(*cryptoki.Mechanism)
		rec.Text = f.Mechanism(m)
	case operation.Info:
		rec.Text = f.Info(v)
	default:
		rec.Text = Opaque(v)
	}
	return rec
}

// Scalar renders an unsigned value, bool or handle as hexadecimal.
func (f *Formatter) Scalar(v any) string {
	n, ok := toUint(v)
	if !ok {
		return NotSupplied
	}
	return fmt.Sprintf("0x%x", n)
}

// Enum renders a code through the registry, e.g. "CKU_USER".
func (f *Formatter) Enum(d enums.Domain, v any) string {
	n, ok := toUint(v)
	if !ok {
		return NotSupplied
	}
	return f.registry.Lookup(d, uint(n))
}

// Opaque renders only whether a value was supplied.
func Opaque(v any) string {
	if isNil(v) {
		return NotSupplied
	}
	return "supplied"
}

func toUint(v any) (uint64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func sliceLen(v any) (int, bool) {
	if isNil(v) {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return 0, false
	}
	return rv.Len(), true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

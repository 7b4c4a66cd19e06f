// Package enums maps PKCS#11 numeric codes to their symbolic names.
package enums

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Domain names a family of codes sharing one namespace.
type Domain int

// Code domains
const (
	None Domain = iota
	Status
	Mechanism
	UserType
	Attribute
	ObjectClass
	KeyType
	SessionState
	CertificateType
)

var domainInfo = map[Domain]struct {
	name   string
	prefix string
}{
	Status:          {"status", "CKR_"},
	Mechanism:       {"mechanism", "CKM_"},
	UserType:        {"user", "CKU_"},
	Attribute:       {"attribute", "CKA_"},
	ObjectClass:     {"class", "CKO_"},
	KeyType:         {"key", "CKK_"},
	SessionState:    {"state", "CKS_"},
	CertificateType: {"certificate", "CKC_"},
}

// String returns the short domain name.
func (d Domain) String() string {
	if info, ok := domainInfo[d]; ok {
		return info.name
	}
	return "none"
}

// Prefix returns the symbol prefix shared by the domain's names, e.g. "CKR_".
func (d Domain) Prefix() string {
	return domainInfo[d].prefix
}

// ParseDomain accepts a short domain name ("status") or a symbol prefix ("CKR", "CKR_").
func ParseDomain(s string) (Domain, error) {
	key := strings.ToLower(strings.TrimSuffix(s, "_"))
	for d, info := range domainInfo {
		if key == info.name || key == strings.ToLower(strings.TrimSuffix(info.prefix, "_")) {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown code domain %q", s)
}

// Domains returns every named domain in declaration order.
func Domains() []Domain {
	return []Domain{Status, Mechanism, UserType, Attribute, ObjectClass, KeyType, SessionState, CertificateType}
}

// Registry is a read-only set of code tables.
type Registry struct {
	tables  map[Domain]map[uint]string
	reverse map[Domain]map[string]uint
}

// NewRegistry builds a registry from explicit tables.
func NewRegistry(tables map[Domain]map[uint]string) *Registry {
	r := &Registry{
		tables:  make(map[Domain]map[uint]string, len(tables)),
		reverse: make(map[Domain]map[string]uint, len(tables)),
	}
	for d, t := range tables {
		fwd := make(map[uint]string, len(t))
		rev := make(map[string]uint, len(t))
		for code, name := range t {
			fwd[code] = name
			rev[name] = code
		}
		r.tables[d] = fwd
		r.reverse[d] = rev
	}
	return r
}

var defaultRegistry = NewRegistry(map[Domain]map[uint]string{
	Status:          statusNames,
	Mechanism:       mechanismNames,
	UserType:        userTypeNames,
	Attribute:       attributeNames,
	ObjectClass:     objectClassNames,
	KeyType:         keyTypeNames,
	SessionState:    sessionStateNames,
	CertificateType: certificateTypeNames,
})

// Default returns the registry of PKCS#11 v2.20 codes.
func Default() *Registry {
	return defaultRegistry
}

// Name returns the symbolic name of code, if known.
func (r *Registry) Name(d Domain, code uint) (string, bool) {
	name, ok := r.tables[d][code]
	return name, ok
}

// Lookup returns the symbolic name of code, or "unknown(0x…)" keeping the raw value.
func (r *Registry) Lookup(d Domain, code uint) string {
	if name, ok := r.Name(d, code); ok {
		return name
	}
	return fmt.Sprintf("unknown(0x%X)", code)
}

// Code resolves a symbolic name, with or without the domain prefix, or a numeric literal.
func (r *Registry) Code(d Domain, s string) (uint, error) {
	name := strings.ToUpper(s)
	if code, ok := r.reverse[d][name]; ok {
		return code, nil
	}
	if code, ok := r.reverse[d][d.Prefix()+name]; ok {
		return code, nil
	}
	code, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown %s code %q", d, s)
	}
	return uint(code), nil
}

// Entry is one code of a domain.
type Entry struct {
	Code uint
	Name string
}

// Entries lists the domain's codes in ascending numeric order.
func (r *Registry) Entries(d Domain) []Entry {
	t := r.tables[d]
	entries := make([]Entry, 0, len(t))
	for code, name := range t {
		entries = append(entries, Entry{Code: code, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Code < entries[j].Code })
	return entries
}

// Lookup resolves code in the default registry.
func Lookup(d Domain, code uint) string {
	return defaultRegistry.Lookup(d, code)
}

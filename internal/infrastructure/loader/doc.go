// Package loader binds a PKCS#11 shared library at runtime without cgo.
//
// The library is opened with dlopen, C_GetFunctionList is resolved and called, and the
// function table is copied. Calls go straight to the table slots; slot i is the
// operation with operation.ID i.
package loader

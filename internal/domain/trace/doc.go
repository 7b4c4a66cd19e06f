// Package trace defines the records emitted around every intercepted PKCS#11 call and the
// contracts of the components that write and persist them.
package trace

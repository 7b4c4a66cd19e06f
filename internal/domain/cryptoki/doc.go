// Package cryptoki defines the PKCS#11 (Cryptoki) calling surface mirrored by the spy:
// handle and record types, the status codes relayed from the wrapped module, and the
// Module interface implemented by the dynamically loaded backend, the tracing proxy and test fakes.
package cryptoki

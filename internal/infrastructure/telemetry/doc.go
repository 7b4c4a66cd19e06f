// Package telemetry provides call hooks exporting intercepted PKCS#11 calls as
// Prometheus metrics and OpenTelemetry spans.
package telemetry

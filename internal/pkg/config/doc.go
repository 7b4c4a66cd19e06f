// Package config provides functionality for loading and managing the spy configuration.
//
// Settings are read from an optional YAML file, decoded into typed settings structs,
// overridden by the PKCS11SPY* environment variables and validated before use.
package config

package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Telemetry exporter constants
const (
	TelemetryExporterNone   = "none"
	TelemetryExporterStdout = "stdout"
)

// MetricsSettings controls the Prometheus endpoint. An empty address disables it, port 0
// lets the system pick one.
type MetricsSettings struct {
	Address string `mapstructure:"address" validate:"omitempty,listen_addr"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// Validate checks that all fields in MetricsSettings are valid
func (s *MetricsSettings) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("listen_addr", validateListenAddr); err != nil {
		return fmt.Errorf("failed to register listen_addr validation: %w", err)
	}

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MetricsSettings: %w", err)
	}
	return nil
}

// validateListenAddr accepts host:port with an optional host and a port in 0-65535.
func validateListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}
	_, err = strconv.ParseUint(port, 10, 16)
	return err == nil
}

// TelemetrySettings selects the OpenTelemetry span exporter
type TelemetrySettings struct {
	Exporter    string `mapstructure:"exporter" validate:"required,oneof=none stdout"`
	ServiceName string `mapstructure:"service_name" validate:"required"`
}

// Validate checks that all fields in TelemetrySettings are valid
func (s *TelemetrySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for TelemetrySettings: %w", err)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultModule is loaded when neither PKCS11SPY nor the config file names a module
const DefaultModule = "opensc-pkcs11.so"

// Trace output destinations and formats
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"

	TraceFormatText = "text"
	TraceFormatJSON = "json"
)

// SpySettings selects the wrapped module and where its trace goes
type SpySettings struct {
	Module string `mapstructure:"module" validate:"required"`
	Output string `mapstructure:"output" validate:"required"`
}

// Validate checks that all fields in SpySettings are valid
func (s *SpySettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for SpySettings: %w", err)
	}
	return nil
}

// TraceSettings holds the rendering and rotation settings of the trace sink
type TraceSettings struct {
	Format     string `mapstructure:"format" validate:"required,oneof=text json"`
	MaxDump    int    `mapstructure:"max_dump" validate:"min=0,max=1048576"`
	MaxSize    int    `mapstructure:"max_size" validate:"min=0,max=1024"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0,max=100"`
	MaxAge     int    `mapstructure:"max_age" validate:"min=0,max=365"`
	Compress   bool   `mapstructure:"compress"`
	// Record persists every call event to the configured database.
	Record bool `mapstructure:"record"`
}

// Validate checks that all fields in TraceSettings are valid
func (s *TraceSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for TraceSettings: %w", err)
	}
	return nil
}

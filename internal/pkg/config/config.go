package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables recognized by the spy
const (
	EnvModule = "PKCS11SPY"
	EnvOutput = "PKCS11SPY_OUTPUT"
	EnvConfig = "PKCS11SPY_CONFIG"
)

// Config aggregates all spy settings
type Config struct {
	Spy       SpySettings       `mapstructure:"spy"`
	Trace     TraceSettings     `mapstructure:"trace"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Database  DatabaseSettings  `mapstructure:"database"`
	Metrics   MetricsSettings   `mapstructure:"metrics"`
	Telemetry TelemetrySettings `mapstructure:"telemetry"`
}

// Default returns the settings used when no config file is present
func Default() *Config {
	return &Config{
		Spy: SpySettings{
			Module: DefaultModule,
			Output: OutputStderr,
		},
		Trace: TraceSettings{
			Format:     TraceFormatText,
			MaxDump:    512,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Logger: LoggerSettings{
			LogLevel: LogLevelWarning,
			LogType:  LogTypeConsole,
		},
		Database: DatabaseSettings{
			Type: SqliteDbType,
			DSN:  "pkcs11-spy.db",
		},
		Metrics: MetricsSettings{
			Path: "/metrics",
		},
		Telemetry: TelemetrySettings{
			Exporter:    TelemetryExporterNone,
			ServiceName: "pkcs11-spy",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies the environment overrides
// and validates the result. An empty path falls back to PKCS11SPY_CONFIG; when that is
// unset too only defaults and environment apply.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getenv(EnvConfig)
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides the module and output from PKCS11SPY and PKCS11SPY_OUTPUT
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvModule); v != "" {
		c.Spy.Module = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Spy.Output = v
	}
}

// Validate checks every settings block. Database settings are only checked when
// recording is enabled.
func (c *Config) Validate() error {
	errs := []error{
		c.Spy.Validate(),
		c.Trace.Validate(),
		c.Logger.Validate(),
		c.Metrics.Validate(),
		c.Telemetry.Validate(),
	}
	if c.Trace.Record {
		errs = append(errs, c.Database.Validate())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/app"
	"github.com/MGTheTrain/pkcs11-spy/internal/domain/cryptoki"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/formatter"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/loader"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/persistence"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/telemetry"
	"github.com/MGTheTrain/pkcs11-spy/internal/infrastructure/tracesink"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 5 * time.Second

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configPath  string
	module      string
	output      string
	format      string
	logLevel    string
	metricsAddr string
	otelStdout  bool
	record      bool
}

// SpyCommandsHandler holds the resolved configuration shared by all sub-commands
type SpyCommandsHandler struct {
	flags  globalFlags
	loader cryptoki.Loader
	config *config.Config
	logger logger.Logger
}

// NewSpyCommandsHandler creates a handler loading real modules from disk
func NewSpyCommandsHandler() *SpyCommandsHandler {
	return &SpyCommandsHandler{}
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// loadConfig reads the config file and environment, then applies the command-line overrides.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.module != "" {
		cfg.Spy.Module = f.module
	}
	if f.output != "" {
		cfg.Spy.Output = f.output
	}
	if f.format != "" {
		cfg.Trace.Format = f.format
	}
	if f.logLevel != "" {
		cfg.Logger.LogLevel = f.logLevel
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Address = f.metricsAddr
	}
	if f.otelStdout {
		cfg.Telemetry.Exporter = config.TelemetryExporterStdout
	}
	if f.record {
		cfg.Trace.Record = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup resolves configuration and logger before any sub-command runs.
func (h *SpyCommandsHandler) setup(_ *cobra.Command, _ []string) error {
	cfg, err := h.flags.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	h.config = cfg
	h.logger = loggerInstance
	if h.loader == nil {
		h.loader = loader.New(loggerInstance)
	}
	return nil
}

// openDB connects to the configured database and migrates the event schema.
func (h *SpyCommandsHandler) openDB() (*gorm.DB, error) {
	db, err := persistence.NewDBConnection(h.config.Database)
	if err != nil {
		return nil, err
	}
	if err := persistence.Migrate(db); err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}
	return db, nil
}

// spySession is a spy together with the backends it reports to.
type spySession struct {
	spy      *app.Spy
	shutdown []func(context.Context) error
}

// Close releases the spy first, then its backends in reverse order of creation.
func (s *spySession) Close() error {
	errs := []error{s.spy.Close()}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for i := len(s.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, s.shutdown[i](ctx))
	}
	return errors.Join(errs...)
}

// newSpy builds a spy from the resolved configuration: trace sink, optional event
// recorder, Prometheus endpoint and OpenTelemetry exporter.
func (h *SpyCommandsHandler) newSpy(cmd *cobra.Command) (_ *spySession, err error) {
	session := &spySession{}
	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			for i := len(session.shutdown) - 1; i >= 0; i-- {
				_ = session.shutdown[i](ctx)
			}
		}
	}()

	var sinkOpts []tracesink.Option
	if h.config.Trace.Record {
		db, err := h.openDB()
		if err != nil {
			return nil, fmt.Errorf("failed to open event database: %w", err)
		}
		session.shutdown = append(session.shutdown, func(context.Context) error { return persistence.CloseDB(db) })

		repo, err := persistence.NewGormCallEventRepository(db, h.logger)
		if err != nil {
			return nil, err
		}
		sinkOpts = append(sinkOpts, tracesink.WithRecorder(repo))
	}

	var hooks []app.Hook
	if h.config.Metrics.Address != "" {
		hook := telemetry.NewPrometheusHook()
		server, err := telemetry.StartMetricsServer(&h.config.Metrics, hook, h.logger)
		if err != nil {
			return nil, err
		}
		session.shutdown = append(session.shutdown, server.Shutdown)
		hooks = append(hooks, hook)
		fmt.Fprintf(cmd.ErrOrStderr(), "Serving metrics on http://%s%s\n", server.Addr(), h.config.Metrics.Path)
	}

	tp, err := telemetry.NewTracerProvider(&h.config.Telemetry, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if tp != nil {
		session.shutdown = append(session.shutdown, func(ctx context.Context) error {
			return telemetry.ShutdownTracerProvider(ctx, tp)
		})
		otelCfg := telemetry.DefaultOtelConfig()
		otelCfg.TracerProvider = tp
		otelCfg.ServiceName = h.config.Telemetry.ServiceName
		hooks = append(hooks, telemetry.NewOtelHook(otelCfg))
	}

	sink, err := tracesink.Open(h.config.Spy, h.config.Trace, h.logger, sinkOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace sink: %w", err)
	}

	spy, err := app.New(h.loader, h.config.Spy.Module, sink,
		app.WithFormatter(formatter.New(formatter.WithMaxDump(h.config.Trace.MaxDump))),
		app.WithHooks(hooks...),
		app.WithLogger(h.logger),
	)
	if err != nil {
		_ = sink.Close()
		return nil, err
	}

	session.spy = spy
	return session, nil
}

// InitSpyCommands registers the persistent flags and every sub-command on rootCmd
func InitSpyCommands(rootCmd *cobra.Command) error {
	return initSpyCommands(rootCmd, NewSpyCommandsHandler())
}

func initSpyCommands(rootCmd *cobra.Command, handler *SpyCommandsHandler) error {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&handler.flags.configPath, "config", "", "Path of the YAML config file (default $"+config.EnvConfig+")")
	flags.StringVar(&handler.flags.module, "module", "", "PKCS#11 module to load (overrides $"+config.EnvModule+")")
	flags.StringVar(&handler.flags.output, "output", "", "Trace destination: stderr, stdout or a file path (overrides $"+config.EnvOutput+")")
	flags.StringVar(&handler.flags.format, "format", "", "Trace format: text or json")
	flags.StringVar(&handler.flags.logLevel, "log-level", "", "Diagnostic log level: debug, info, warning, error or critical")
	flags.StringVar(&handler.flags.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on host:port")
	flags.BoolVar(&handler.flags.otelStdout, "otel-stdout", false, "Export one OpenTelemetry span per call to stderr")
	flags.BoolVar(&handler.flags.record, "record", false, "Persist every call event to the configured database")

	rootCmd.PersistentPreRunE = handler.setup
	rootCmd.SilenceUsage = true

	initOperationsCommands(rootCmd, handler)
	initLookupCommands(rootCmd, handler)
	initProbeCommands(rootCmd, handler)
	initEventsCommands(rootCmd, handler)
	return nil
}

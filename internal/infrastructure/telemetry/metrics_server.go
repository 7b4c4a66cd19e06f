package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

// MetricsServer exposes a PrometheusHook over HTTP.
type MetricsServer struct {
	server   *http.Server
	listener net.Listener
	logger   logger.Logger
}

// StartMetricsServer listens on settings.Address and serves the hook's metrics on
// settings.Path in the background.
func StartMetricsServer(settings *config.MetricsSettings, hook *PrometheusHook, log logger.Logger) (*MetricsServer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if settings.Address == "" {
		return nil, errors.New("metrics address is required")
	}

	listener, err := net.Listen("tcp", settings.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", settings.Address, err)
	}

	mux := http.NewServeMux()
	mux.Handle(settings.Path, hook.Handler())

	s := &MetricsServer{
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: listener,
		logger:   log,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped: ", err)
		}
	}()
	s.logger.Info("serving metrics on ", listener.Addr().String(), settings.Path)
	return s, nil
}

// Addr returns the address the server listens on.
func (s *MetricsServer) Addr() string {
	return s.listener.Addr().String()
}

// Shutdown stops the server, waiting for in-flight scrapes.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down metrics server: %w", err)
	}
	return nil
}

package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultShutdownTimeout = 5 * time.Second

// ServerOpt configures the metrics server.
type ServerOpt func(*Server)

// WithShutdownTimeout bounds the time Serve waits for open requests on shutdown.
func WithShutdownTimeout(timeout time.Duration) ServerOpt {
	return func(s *Server) {
		s.shutdownTimeout = timeout
	}
}

// Server exposes the default prometheus registry on /metrics.
type Server struct {
	logger          *zap.Logger
	listener        net.Listener
	server          *http.Server
	shutdownTimeout time.Duration
}

// NewServer listens on the address right away, so that the bound address is known
// before Serve is called. Use ":0" to pick a free port.
func NewServer(logger *zap.Logger, address string, opts ...ServerOpt) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &Server{
		logger:   logger,
		listener: listener,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(srv)
	}
	return srv, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve blocks until the context is canceled.
func (s *Server) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.server.Serve(s.listener)
	}()
	s.logger.Info("serving metrics", zap.Stringer("address", s.Addr()))
	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

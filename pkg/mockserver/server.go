package mockserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/pact-foundation/pact-mock-server/pkg/logging"
	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// defaultShutdownGrace is the window Shutdown waits for in-flight requests
// to drain before closing the connections still open (spec.md §4.3:
// "default 10s").
const defaultShutdownGrace = 10 * time.Second

// Server hosts the interactions of a single pact.PactDocument behind an
// HTTP listener, mirroring the wire behavior a real provider would exhibit
// for the duration of a consumer test.
type Server struct {
	log           *slog.Logger
	maxBodyBytes  int64
	shutdownGrace time.Duration

	mu       sync.Mutex
	listener net.Listener
	http     *http.Server
	handler  *handler
	running  bool
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithLogger sets the operational logger used for startup, shutdown, and
// per-request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxBodyBytes overrides the inbound request body size ceiling.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithShutdownGrace overrides the drain window Shutdown waits for
// in-flight requests before closing the connections still open.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownGrace = d
		}
	}
}

// New constructs a Server for doc. It does not start listening; call Start.
func New(doc *pact.PactDocument, opts ...Option) *Server {
	s := &Server{
		log:           logging.Nop(),
		maxBodyBytes:  defaultMaxBodyBytes,
		shutdownGrace: defaultShutdownGrace,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = newHandler(doc, s.log, s.maxBodyBytes)
	return s
}

// Start binds a listener and begins serving. A port of 0 requests an
// ephemeral port from the kernel, matching the "start(pact, port?)"
// contract's default behavior.
func (s *Server) Start(port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("mock server already running")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return fmt.Errorf("mockserver: listen: %w", err)
	}

	s.listener = listener
	s.http = &http.Server{Handler: s.handler}

	go func() {
		if err := s.http.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("mock server error", "error", err)
		}
	}()

	s.running = true
	s.log.Info("mock server started", "addr", listener.Addr().String())
	return nil
}

// URL returns the http://host:port base URL the system under test should
// target, usable once Start has returned successfully.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// Shutdown halts accepting new connections, drains in-flight requests up
// to the configured grace window, and returns the accumulated
// VerificationReport.
func (s *Server) Shutdown() (*VerificationReport, error) {
	s.mu.Lock()
	httpServer := s.http
	report := s.handler.Report()
	running := s.running
	grace := s.shutdownGrace
	s.mu.Unlock()

	if !running {
		return report, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	err := httpServer.Shutdown(ctx)
	if err != nil {
		_ = httpServer.Close()
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if err != nil {
		s.log.Error("mock server shutdown error", "error", err)
		return report, fmt.Errorf("mockserver: shutdown: %w", err)
	}
	s.log.Info("mock server stopped")
	return report, nil
}

// Report returns the in-progress VerificationReport without shutting the
// server down, useful for assertions mid-test.
func (s *Server) Report() *VerificationReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.Report()
}

// findFreePort finds a free port starting from startPort, checking up to
// 100 successive ports before falling back to an OS-assigned one.
func findFreePort(startPort int) int {
	for port := startPort; port < startPort+100; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
		if err == nil {
			_ = listener.Close()
			return port
		}
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return startPort
	}
	defer func() { _ = listener.Close() }()
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return startPort
	}
	return tcpAddr.Port
}

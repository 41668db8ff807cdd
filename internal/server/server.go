package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ErrServerClosed is returned by Run after Shutdown.
var ErrServerClosed = http.ErrServerClosed

const (
	defaultPort       = "8080"
	maxHeaderBytes    = 1 << 20 // 1 MB
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
)

// Server owns the API listener. Run and Shutdown may be called from
// different goroutines.
type Server struct {
	mu     sync.Mutex
	srv    *http.Server
	closed bool
}

// Run listens on port ("8080", ":8080" or "host:8080") until Shutdown.
// /ws streams are long-lived, so there is no write timeout.
func (s *Server) Run(port string, handler http.Handler) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrServerClosed
	}
	s.srv = &http.Server{
		Addr:              normalizeAddr(port),
		Handler:           handler,
		MaxHeaderBytes:    maxHeaderBytes,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	srv := s.srv
	s.mu.Unlock()

	return srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires. A later Run returns
// ErrServerClosed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func normalizeAddr(port string) string {
	switch {
	case port == "":
		return ":" + defaultPort
	case strings.Contains(port, ":"):
		return port
	default:
		return ":" + port
	}
}

package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
)

const (
	healthPath = "/health"
	healthBody = "OK"

	// greetingBody is returned for every path other than /health.
	// There is deliberately no 404 branch.
	greetingBody = "Hello from C Service (Low-level tasks)"
)

// Server owns the bound TCP listener and the HTTP server behind it.
// At most one listener is live per Server; Shutdown releases it and is
// safe to call more than once, or on a server that never listened.
type Server struct {
	addr     string
	listener net.Listener
	server   *http.Server
	logger   *slog.Logger
}

// NewServer creates a server that will bind addr (e.g. ":5000").
func NewServer(addr string) *Server {
	s := &Server{
		addr:   addr,
		logger: slog.With("component", "api"),
	}
	s.server = &http.Server{Handler: http.HandlerFunc(s.handle)}
	return s
}

// handle dispatches on exact path equality. Anything that is not
// literally "/health" gets the greeting — including "/Health",
// "/health/" and "//health". A ServeMux is avoided on purpose: its
// path cleaning would redirect such paths instead of falling through.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	body := greetingBody
	if r.URL.Path == healthPath {
		body = healthBody
	}

	s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		// The client sees a dropped connection; other requests are unaffected.
		s.logger.Debug("writing response", "path", r.URL.Path, "error", err)
	}
}

// Listen binds the TCP listener. A bind failure (port in use,
// insufficient privilege) is returned to the caller; nothing is left
// half-initialized.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.logger.Info("listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound address, or the configured address if the
// listener is not yet bound. Useful when listening on port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve runs the accept loop on the bound listener. It blocks until
// Shutdown is called (returning http.ErrServerClosed) or the listener
// fails. Listen must have succeeded first.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	return s.server.Serve(s.listener)
}

// Shutdown stops accepting connections and releases the listener,
// giving in-flight requests until ctx expires to finish. Calling it on
// a server that never listened, or a second time, is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.listener == nil {
		return nil
	}

	err := s.server.Shutdown(ctx)

	// Serve may never have run, in which case the listener is not yet
	// registered with the http.Server and must be closed here.
	if cerr := s.listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
		err = cerr
	}
	return err
}

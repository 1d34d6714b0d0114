package server

import (
	"context"
	"net/http"
)

// httpServer is the seam between Run and net/http so tests can substitute
// a server that never binds a port. The router itself is held by Server, so
// the seam only covers the listener lifecycle.
type httpServer interface {
	ListenAndServe() error
	Shutdown(context.Context) error
	Addr() string
}

// netHTTPServer adapts *http.Server to the httpServer seam.
type netHTTPServer struct {
	srv *http.Server
}

func (s netHTTPServer) ListenAndServe() error              { return s.srv.ListenAndServe() }
func (s netHTTPServer) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
func (s netHTTPServer) Addr() string                       { return s.srv.Addr }

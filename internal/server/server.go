// package server hosts the loopback HTTP endpoints used by CLI OAuth flows.
//
// Authentication commands start a short-lived [CallbackServer] on the
// configured redirect address, wait for the provider to redirect the user's
// browser back, and shut the server down once the token exchange settles.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Handler wraps the stdlib handler interface and names the routes it serves,
// so a handler can encapsulate its own route definitions.
type Handler interface {
	http.Handler
	Routes() []string
}

// CallbackServer is a temporary HTTP server for a single OAuth callback.
type CallbackServer struct {
	srv *http.Server
}

// NewCallbackServer creates a server on addr serving the given handlers.
func NewCallbackServer(addr string, handlers ...Handler) *CallbackServer {
	mux := http.NewServeMux()
	for _, handler := range handlers {
		for _, route := range handler.Routes() {
			mux.Handle(route, handler)
		}
	}

	return &CallbackServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start begins serving in a background goroutine. Listen failures surface on
// the returned channel; a clean shutdown sends nothing.
func (s *CallbackServer) Start() <-chan error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("callback server failed: %w", err)
		}
	}()

	return errCh
}

// Shutdown gracefully stops the server.
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

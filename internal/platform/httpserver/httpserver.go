// Package httpserver builds the ops HTTP server with shared defaults.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with timeouts suited to a small ops surface.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}

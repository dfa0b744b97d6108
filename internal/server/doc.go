// Package server manages HTTP server lifecycle: listening, serving and
// graceful shutdown.
package server

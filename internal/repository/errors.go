// Package repository provides database access for the fleet entities.
// Sentinel errors let handlers map failure scenarios to HTTP responses
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

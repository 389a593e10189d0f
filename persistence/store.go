// Package persistence provides the named-blob storage used by the settings and high-score stores
package persistence

import "errors"

// ErrNotFound is returned by Read when no blob exists under the name
var ErrNotFound = errors.New("persistence: not found")

// Store reads and writes whole named documents
// Implementations are used from the frame loop goroutine only
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
}

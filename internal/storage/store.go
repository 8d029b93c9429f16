// Package storage persists small string settings for the dial timer.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend selects the settings persistence format.
type Backend string

const (
	BackendYAML   Backend = "yaml"
	BackendSQLite Backend = "sqlite"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Open creates the store for backend inside dir, creating dir if needed.
func Open(backend Backend, dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	switch backend {
	case BackendYAML, "":
		return OpenYAML(filepath.Join(dir, settingsFileName))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, databaseFileName))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

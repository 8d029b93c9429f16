package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// YAMLStore keeps settings in a flat YAML mapping. Every Set rewrites the file.
type YAMLStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenYAML loads path. A missing file yields an empty store.
func OpenYAML(path string) (*YAMLStore, error) {
	store := &YAMLStore{path: path, values: make(map[string]string)}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &store.values); err != nil {
		return nil, fmt.Errorf("parse settings yaml: %w", err)
	}
	if store.values == nil {
		store.values = make(map[string]string)
	}
	return store, nil
}

// Get returns the value stored under key.
func (store *YAMLStore) Get(key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok, nil
}

// Set stores value and flushes the file.
func (store *YAMLStore) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if current, ok := store.values[key]; ok && current == value {
		return nil
	}
	store.values[key] = value
	return store.flushLocked()
}

// Close is a no-op; the file is written on every Set.
func (store *YAMLStore) Close() error { return nil }

func (store *YAMLStore) flushLocked() error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(store.values)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	temporary := store.path + ".tmp"
	if err := os.WriteFile(temporary, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(temporary, store.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Nicolas0016/impostor/internal/models"
)

// SetupStore persists the last-used game setup so a device reopening
// the app starts from its previous configuration.
type SetupStore struct {
	path  string
	setup *models.GameSetup
	mu    sync.RWMutex
}

// NewSetupStore loads the saved setup from path if one exists.
func NewSetupStore(path string) (*SetupStore, error) {
	s := &SetupStore{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading setup: %w", err)
	}
	var setup models.GameSetup
	if err := json.Unmarshal(data, &setup); err != nil {
		return nil, fmt.Errorf("parsing setup: %w", err)
	}
	s.setup = &setup
	return s, nil
}

// Get returns the saved setup, or nil when none has been saved yet.
func (s *SetupStore) Get() *models.GameSetup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setup
}

// Set saves the setup and flushes it to disk.
func (s *SetupStore) Set(setup models.GameSetup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(setup, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding setup: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing setup: %w", err)
	}
	s.setup = &setup
	return nil
}

package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the settings file created under the data directory.
const FileName = "settings.json"

// Store loads and saves settings per user. Load returns Default for a user
// with nothing saved.
type Store interface {
	Load(ctx context.Context, userID string) (Settings, error)
	Save(ctx context.Context, userID string, s Settings) error
}

// MemoryStore keeps settings in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	settings map[string]Settings
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: make(map[string]Settings)}
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, userID string) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settings[userID]; ok {
		return s.clone(), nil
	}
	return Default(), nil
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, userID string, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[userID] = s.clone()
	return nil
}

// FileStore keeps every user's settings in one JSON file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a FileStore writing FileName under dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, FileName)}, nil
}

func (f *FileStore) read() (map[string]Settings, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	all := map[string]Settings{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", f.path, err)
	}
	return all, nil
}

// Load implements Store.
func (f *FileStore) Load(ctx context.Context, userID string) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return Settings{}, err
	}
	s, ok := all[userID]
	if !ok {
		return Default(), nil
	}
	if s.Saved == nil {
		s.Saved = []NamedTheme{}
	}
	return s, nil
}

// Save implements Store.
func (f *FileStore) Save(ctx context.Context, userID string, s Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return err
	}
	all[userID] = s.clone()

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	log.Printf("[theme] saved settings for %s", userID)
	return nil
}

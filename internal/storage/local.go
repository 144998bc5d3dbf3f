package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

// LocalFileName is the file holding all saved resumes in local mode.
const LocalFileName = "savedResumes.json"

// LocalStore keeps saved resumes in a single JSON file. Writes replace the
// file atomically, so a failed save leaves the previous contents intact.
type LocalStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewLocalStore creates the data directory if needed and returns a store
// backed by dir/savedResumes.json.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &LocalStore{
		path: filepath.Join(dir, LocalFileName),
		now:  time.Now,
	}, nil
}

// Path returns the backing file.
func (s *LocalStore) Path() string {
	return s.path
}

func (s *LocalStore) load() ([]types.SavedResume, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []types.SavedResume{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var all []types.SavedResume
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	for i := range all {
		if all[i].Document == nil {
			all[i].Document = resume.New()
		} else {
			resume.Normalize(all[i].Document)
		}
	}
	return all, nil
}

func (s *LocalStore) write(all []types.SavedResume) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode saved resumes: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".savedResumes-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Save implements Store.
func (s *LocalStore) Save(ctx context.Context, userID string, doc *types.ResumeDocument, name string) (*types.SavedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	rec, err := newRecord(userID, doc, name, now)
	if err != nil {
		return nil, err
	}
	// Two saves in the same millisecond would share an id.
	for containsID(all, rec.ID) {
		now = now.Add(time.Millisecond)
		rec.ID = resumeID(userID, now)
	}

	if err := s.write(append(all, *rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func containsID(all []types.SavedResume, id string) bool {
	for _, r := range all {
		if r.ID == id {
			return true
		}
	}
	return false
}

// List implements Store.
func (s *LocalStore) List(ctx context.Context, userID string) ([]types.SavedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}

	out := []types.SavedResume{}
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get implements Store.
func (s *LocalStore) Get(ctx context.Context, id string) (*types.SavedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// Delete implements Store.
func (s *LocalStore) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	for i, r := range all {
		if r.ID == id && r.UserID == userID {
			return s.write(append(all[:i:i], all[i+1:]...))
		}
	}
	return ErrNotFound
}

// Close implements Store.
func (s *LocalStore) Close() error {
	return nil
}

// Package storage persists named resume snapshots and, with PostgreSQL,
// registered users. Without a database it falls back to a local JSON file.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

// ErrNotFound is returned when a saved resume does not exist or belongs to
// another user.
var ErrNotFound = errors.New("saved resume not found")

// Store persists resume snapshots per user.
type Store interface {
	// Save stores a snapshot of doc under name and returns the record.
	Save(ctx context.Context, userID string, doc *types.ResumeDocument, name string) (*types.SavedResume, error)
	// List returns the user's saved resumes, oldest first.
	List(ctx context.Context, userID string) ([]types.SavedResume, error)
	// Get returns a saved resume by id.
	Get(ctx context.Context, id string) (*types.SavedResume, error)
	// Delete removes one of the user's saved resumes.
	Delete(ctx context.Context, userID, id string) error
	Close() error
}

// DefaultResumeName is used when a resume is saved without a name.
const DefaultResumeName = "My CV"

// Open returns a PostgresStore when cfg has a database URL and a LocalStore
// under cfg.DataDir otherwise.
func Open(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	if cfg.LocalMode() {
		log.Printf("[storage] DATABASE_URL not set, using local store in %s", cfg.DataDir)
		return NewLocalStore(cfg.DataDir)
	}

	store, err := Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// resumeID builds the id of a snapshot: the owner and the save time in
// milliseconds.
func resumeID(userID string, at time.Time) string {
	return userID + "_" + strconv.FormatInt(at.UnixMilli(), 10)
}

// newRecord prepares the record for a save. The document is cloned so that
// later edits by the caller never reach the stored value.
func newRecord(userID string, doc *types.ResumeDocument, name string, now time.Time) (*types.SavedResume, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if doc == nil {
		return nil, fmt.Errorf("document is required")
	}
	if name == "" {
		name = DefaultResumeName
	}
	now = now.UTC()
	return &types.SavedResume{
		ID:        resumeID(userID, now),
		UserID:    userID,
		Name:      name,
		Document:  resume.Clone(doc),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

// ErrEmailTaken is returned by CreateUser for a registered email.
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS resumes (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS resumes_user_created_idx ON resumes (user_id, created_at);
`

// PostgresStore wraps a PostgreSQL connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// UserRecord is a registered user including the password hash.
type UserRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// User returns the public view of the record.
func (u *UserRecord) User() *types.User {
	return &types.User{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, now: time.Now}, nil
}

// EnsureSchema creates the tables if they do not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, userID string, doc *types.ResumeDocument, name string) (*types.SavedResume, error) {
	rec, err := newRecord(userID, doc, name, s.now())
	if err != nil {
		return nil, err
	}

	jsonBytes, err := json.Marshal(rec.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resumes (id, user_id, name, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		rec.ID, rec.UserID, rec.Name, jsonBytes, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return rec, nil
}

func scanResume(row pgx.Row) (*types.SavedResume, error) {
	var rec types.SavedResume
	var content []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &content, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	doc, err := resume.DecodeBytes(content)
	if err != nil {
		return nil, fmt.Errorf("stored resume %s is invalid: %w", rec.ID, err)
	}
	rec.Document = doc
	return &rec, nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, userID string) ([]types.SavedResume, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, document, created_at, updated_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	out := []types.SavedResume{}
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return out, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, id string) (*types.SavedResume, error) {
	rec, err := scanResume(s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, document, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return rec, nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, userID, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateUser inserts a user with an already hashed password.
func (s *PostgresStore) CreateUser(ctx context.Context, name, email, passwordHash string) (*UserRecord, error) {
	rec := UserRecord{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		rec.ID, rec.Name, rec.Email, rec.PasswordHash,
	).Scan(&rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &rec, nil
}

func (s *PostgresStore) getUserWhere(ctx context.Context, clause string, arg string) (*UserRecord, error) {
	var rec UserRecord
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE `+clause,
		arg,
	).Scan(&rec.ID, &rec.Name, &rec.Email, &rec.PasswordHash, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &rec, nil
}

// GetUser returns the user with id, or nil when there is none.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*UserRecord, error) {
	return s.getUserWhere(ctx, "id = $1", id)
}

// GetUserByEmail returns the user registered with email, or nil when there is none.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, "email = $1", email)
}

// CheckEmailExists reports whether email is registered.
func (s *PostgresStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

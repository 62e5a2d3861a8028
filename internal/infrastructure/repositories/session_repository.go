// Package repositories holds the client-local persistence adapters.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AllStackDev1/oja-client/domain"
)

// sessionNamespace is the fixed key the session row lives under. The store
// holds at most one session per namespace; a save overwrites it.
const sessionNamespace = "oja.auth"

// SessionRepositoryImpl implements domain.SessionStore on a local SQLite
// file so the session survives a full process restart.
type SessionRepositoryImpl struct {
	db        *sql.DB
	writeLock sync.Mutex // the driver does not support concurrent writes
}

// NewSessionRepository opens (creating if needed) the session database at
// path.
func NewSessionRepository(path string) (*SessionRepositoryImpl, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping session db: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			namespace  TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`); err != nil {
		return nil, fmt.Errorf("create session schema: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SessionRepositoryImpl{db: db}, nil
}

// Save implements domain.SessionStore.
func (r *SessionRepositoryImpl) Save(ctx context.Context, session *domain.Session) error {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (namespace, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, sessionNamespace, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load implements domain.SessionStore.
func (r *SessionRepositoryImpl) Load(ctx context.Context) (*domain.Session, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		"SELECT payload FROM sessions WHERE namespace = ?", sessionNamespace,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Clear implements domain.SessionStore.
func (r *SessionRepositoryImpl) Clear(ctx context.Context) error {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE namespace = ?", sessionNamespace,
	); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *SessionRepositoryImpl) Close() error {
	return r.db.Close()
}

var _ domain.SessionStore = (*SessionRepositoryImpl)(nil)

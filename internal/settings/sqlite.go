// Package settings persists the folder selection, the connected account and
// the set of uploaded identifiers in a local SQLite database.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

const (
	keyFolder  = "folder"
	keyAccount = "account"
)

// Upload is one row of the upload history.
type Upload struct {
	Identifier string
	RemoteID   string
	UploadedAt time.Time
}

// Store is a SQLite-backed settings store. Every write is committed with
// synchronous=FULL before the call returns.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path.
// Pass ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create dir for %s: %w", path, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings db %s: %w", path, err)
	}
	// A single connection keeps pragmas and :memory: databases consistent.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA synchronous = FULL`,
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS uploaded (
			identifier TEXT PRIMARY KEY,
			remote_id TEXT NOT NULL,
			uploaded_at INTEGER NOT NULL
		)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize settings db %s: %w", path, err)
		}
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) Folder(ctx context.Context) (string, error) {
	return s.get(ctx, keyFolder)
}

func (s *Store) SetFolder(ctx context.Context, folder string) error {
	return s.set(ctx, keyFolder, folder)
}

func (s *Store) Account(ctx context.Context) (string, error) {
	return s.get(ctx, keyAccount)
}

func (s *Store) SetAccount(ctx context.Context, account string) error {
	return s.set(ctx, keyAccount, account)
}

func (s *Store) ClearAccount(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, keyAccount); err != nil {
		return fmt.Errorf("failed to clear account: %w", err)
	}
	return nil
}

// UploadedIdentifiers returns every recorded identifier.
func (s *Store) UploadedIdentifiers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT identifier FROM uploaded`)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded identifiers: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddUploaded records identifier. Adding an identifier that is already
// present keeps the original row.
func (s *Store) AddUploaded(ctx context.Context, identifier, remoteID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO uploaded (identifier, remote_id, uploaded_at) VALUES (?, ?, ?)`,
		identifier, remoteID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record upload of %s: %w", identifier, err)
	}
	return nil
}

// UploadHistory returns the recorded uploads, most recent first.
func (s *Store) UploadHistory(ctx context.Context) ([]Upload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT identifier, remote_id, uploaded_at FROM uploaded ORDER BY uploaded_at DESC, identifier`)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload history: %w", err)
	}
	defer rows.Close()

	var result []Upload
	for rows.Next() {
		var u Upload
		var unix int64
		if err := rows.Scan(&u.Identifier, &u.RemoteID, &unix); err != nil {
			return nil, err
		}
		u.UploadedAt = time.Unix(unix, 0)
		result = append(result, u)
	}
	return result, rows.Err()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package credstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jeranaias/authcode-tui/internal/model"
)

const (
	dbFileName  = "credentials.db"
	keyFileName = "store.key"
)

// Store is the sqlite-backed credential store. Safe for concurrent use.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	box *cipherBox
}

// DefaultDir returns the store directory (~/.authcode).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".authcode"), nil
}

// Open opens the store in the default directory, creating it on first use.
func Open() (*Store, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the store in the given directory. Used directly by tests.
func OpenAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	box, err := loadCipherBox(filepath.Join(dir, keyFileName))
	if err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential database: %w", err)
	}
	// Single connection: the store is tiny and sqlite write contention is
	// not worth managing.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed metadata: %w", err)
	}

	s := &Store{db: db, box: box}
	if err := s.ensureInstallID(); err != nil {
		db.Close()
		return nil, err
	}
	if err := os.Chmod(dbPath, 0600); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to restrict database permissions: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// =============================================================================
// LOGIN STATE
// =============================================================================

// Load returns the persisted credentials and session. Unset values come back
// as empty strings; callers check Credentials.IsComplete and Session.Valid.
func (s *Store) Load() (model.Credentials, model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, err := s.get(KeyUsername)
	if err != nil {
		return model.Credentials{}, model.Session{}, err
	}
	encrypted, err := s.get(KeyPassword)
	if err != nil {
		return model.Credentials{}, model.Session{}, err
	}
	password, err := s.box.DecryptString(encrypted)
	if err != nil {
		return model.Credentials{}, model.Session{}, fmt.Errorf("failed to decrypt password: %w", err)
	}
	token, err := s.get(KeySession)
	if err != nil {
		return model.Credentials{}, model.Session{}, err
	}

	return model.Credentials{Username: username, Password: password},
		model.Session{Token: token}, nil
}

// SaveLogin persists the full login state after a successful activation.
func (s *Store) SaveLogin(creds model.Credentials, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := s.box.EncryptString(creds.Password)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for key, value := range map[string]string{
		KeyUsername: creds.Username,
		KeyPassword: encrypted,
		KeySession:  session.Token,
	} {
		if err := setTx(tx, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ClearSession removes only the session token, keeping username and password
// to prefill the next login. Used when the server reports the session
// expired.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM credentials WHERE key = ?`, KeySession)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Clear removes all three values. This is the logged-out state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM credentials WHERE key IN (?, ?, ?)`,
		KeyUsername, KeyPassword, KeySession)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// =============================================================================
// INSTALL IDENTITY
// =============================================================================

// InstallID returns the stable identifier generated when the store was first
// created. Shown by the status command to tell installs apart.
func (s *Store) InstallID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var id string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = 'install_id'`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to read install id: %w", err)
	}
	return id, nil
}

func (s *Store) ensureInstallID() error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO metadata (key, value) VALUES ('install_id', ?)`,
		uuid.New().String())
	if err != nil {
		return fmt.Errorf("failed to initialize install id: %w", err)
	}
	return nil
}

// =============================================================================
// KEY-VALUE HELPERS
// =============================================================================

// get returns the value for key, or "" when unset.
func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func setTx(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO credentials (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package credstore persists the login state: username, password, and
// session token. Values survive process restarts; an explicit logout clears
// them. The password is encrypted at rest.
package credstore

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the credential store
const Schema = `
-- Metadata table for schema version and install identity
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Credentials table: opaque string values keyed by name.
-- Absence of a row means the value is unset.
CREATE TABLE IF NOT EXISTS credentials (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL  -- Unix timestamp
) WITHOUT ROWID;
`

// InitMetadata seeds the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// Credential keys. The three together form the login state: all set means
// resumable, all clear means logged out.
const (
	KeyUsername = "username"
	KeyPassword = "password"
	KeySession  = "session"
)

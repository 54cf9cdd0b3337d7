// Package storage is the cache-provider adapter: it persists a
// computed chunk set keyed by a content fingerprint of the analyzed
// file set. Because analysis and indexing are deterministic, a cache
// hit reproduces exactly what a fresh run would compute.
package storage

import (
	"database/sql"
	"fmt"
)

const createMetaTable = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

const createChunksTable = `
CREATE TABLE IF NOT EXISTS chunks (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	text        TEXT NOT NULL,
	file        TEXT NOT NULL,
	entity      TEXT NOT NULL DEFAULT '',
	entity_kind TEXT NOT NULL DEFAULT '',
	start_line  INTEGER NOT NULL DEFAULT 0,
	end_line    INTEGER NOT NULL DEFAULT 0,
	part        INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL
)`

const createEntitiesTable = `
CREATE TABLE IF NOT EXISTS entities (
	file            TEXT NOT NULL,
	kind            TEXT NOT NULL,
	name            TEXT NOT NULL,
	signature       TEXT NOT NULL DEFAULT '',
	start_line      INTEGER NOT NULL,
	end_line        INTEGER NOT NULL,
	depth           INTEGER NOT NULL,
	cyclomatic      INTEGER NOT NULL,
	line_count      INTEGER NOT NULL,
	maintainability REAL NOT NULL
)`

// createSchema creates all cache tables in one transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []struct {
		name string
		ddl  string
	}{
		{"meta", createMetaTable},
		{"chunks", createChunksTable},
		{"entities", createEntitiesTable},
	}
	for _, table := range tables {
		if _, err := tx.Exec(table.ddl); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.name, err)
		}
	}

	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_chunks_position ON chunks(position)`); err != nil {
		return fmt.Errorf("failed to create chunk index: %w", err)
	}
	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_entities_file ON entities(file)`); err != nil {
		return fmt.Errorf("failed to create entity index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	return nil
}

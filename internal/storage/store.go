package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/askrepo/askrepo/internal/analyzer"
	"github.com/askrepo/askrepo/internal/chunk"
	"github.com/askrepo/askrepo/internal/lang"
)

const fingerprintKey = "fingerprint"

// Store is a sqlite-backed analysis cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveChunks replaces the cached chunk set wholesale, mirroring the
// index's all-or-nothing rebuild contract. The fingerprint keys the
// file-set content this chunk set was computed from.
func (s *Store) SaveChunks(fingerprint string, chunks []chunk.DocumentChunk) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chunks`); err != nil {
		return fmt.Errorf("failed to clear chunk cache: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (id, kind, text, file, entity, entity_kind, start_line, end_line, part, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chunks {
		p := c.Provenance
		if _, err := stmt.Exec(c.ID, string(c.Kind), c.Text, p.File, p.Entity, string(p.EntityKind), p.StartLine, p.EndLine, p.Part, i); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, fingerprintKey, fingerprint); err != nil {
		return fmt.Errorf("failed to record fingerprint: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chunk cache: %w", err)
	}
	return nil
}

// LoadChunks returns the cached chunk set if its fingerprint matches,
// in original build order. ok is false on any mismatch or empty cache.
func (s *Store) LoadChunks(fingerprint string) (chunks []chunk.DocumentChunk, ok bool, err error) {
	var stored string
	row := s.db.QueryRow(`SELECT value FROM meta WHERE key = ?`, fingerprintKey)
	if err := row.Scan(&stored); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read fingerprint: %w", err)
	}
	if stored != fingerprint {
		return nil, false, nil
	}

	rows, err := s.db.Query(`
		SELECT id, kind, text, file, entity, entity_kind, start_line, end_line, part
		FROM chunks ORDER BY position`)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read chunk cache: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c chunk.DocumentChunk
		var kind, entityKind string
		if err := rows.Scan(&c.ID, &kind, &c.Text, &c.Provenance.File, &c.Provenance.Entity,
			&entityKind, &c.Provenance.StartLine, &c.Provenance.EndLine, &c.Provenance.Part); err != nil {
			return nil, false, fmt.Errorf("failed to scan chunk row: %w", err)
		}
		c.Kind = chunk.Kind(kind)
		c.Provenance.EntityKind = lang.EntityKind(entityKind)
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("failed to iterate chunk cache: %w", err)
	}
	if len(chunks) == 0 {
		return nil, false, nil
	}
	return chunks, true, nil
}

// SaveEntities replaces the cached entity summaries. Metrics is
// parallel to entities, as produced by the analyzer.
func (s *Store) SaveEntities(entities []analyzer.CodeEntity, metrics []analyzer.ComplexityMetric) error {
	if len(entities) != len(metrics) {
		return fmt.Errorf("entity/metric length mismatch: %d vs %d", len(entities), len(metrics))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entities`); err != nil {
		return fmt.Errorf("failed to clear entity cache: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entities (file, kind, name, signature, start_line, end_line, depth, cyclomatic, line_count, maintainability)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare entity insert: %w", err)
	}
	defer stmt.Close()

	for i, ent := range entities {
		m := metrics[i]
		if _, err := stmt.Exec(ent.File, string(ent.Kind), ent.Name, ent.Signature,
			ent.StartLine, ent.EndLine, ent.Depth, m.Cyclomatic, m.LineCount, m.Maintainability); err != nil {
			return fmt.Errorf("failed to insert entity %s: %w", ent.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entity cache: %w", err)
	}
	return nil
}

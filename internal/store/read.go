package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no manifest matches the requested key.
var ErrNotFound = errors.New("manifest not found")

// StoredManifest is one catalog row. IR holds the canonical JSON exactly
// as it was hashed; callers that only display or ship the IR never need
// to re-parse it.
type StoredManifest struct {
	Hash      string `json:"hash"`
	Name      string `json:"name"`
	IRVersion string `json:"ir_version"`
	IR        []byte `json:"-"`
	CreatedAt string `json:"created_at"`
}

// GetManifest returns the catalog row for a content hash.
func (s *Store) GetManifest(ctx context.Context, hash string) (*StoredManifest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, name, ir_version, ir_json, created_at
		FROM manifests
		WHERE hash = ?
	`, hash)

	m, err := scanManifest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("get manifest: %w", err)
	}
	return m, nil
}

// GetLatestByName returns the most recently saved manifest under name.
// Ties on created_at break on hash for deterministic results.
func (s *Store) GetLatestByName(ctx context.Context, name string) (*StoredManifest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT hash, name, ir_version, ir_json, created_at
		FROM manifests
		WHERE name = ?
		ORDER BY created_at DESC, hash COLLATE BINARY DESC
		LIMIT 1
	`, name)

	m, err := scanManifest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get manifest by name: %w", err)
	}
	return m, nil
}

// ListManifests returns every catalog row with deterministic ordering:
// ORDER BY name, created_at, hash COLLATE BINARY.
func (s *Store) ListManifests(ctx context.Context) ([]StoredManifest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, name, ir_version, ir_json, created_at
		FROM manifests
		ORDER BY name ASC, created_at ASC, hash COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list manifests: %w", err)
	}
	defer rows.Close()

	var manifests []StoredManifest
	for rows.Next() {
		m, err := scanManifest(rows)
		if err != nil {
			return nil, fmt.Errorf("list manifests: %w", err)
		}
		manifests = append(manifests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list manifests: %w", err)
	}
	return manifests, nil
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanManifest(row rowScanner) (*StoredManifest, error) {
	var m StoredManifest
	var irJSON string
	if err := row.Scan(&m.Hash, &m.Name, &m.IRVersion, &irJSON, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.IR = []byte(irJSON)
	return &m, nil
}

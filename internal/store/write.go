package store

import (
	"context"
	"fmt"

	"github.com/roach88/fml/internal/ir"
)

// SaveManifest inserts a compiled manifest into the catalog under the
// given name and returns its content-addressed hash. Uses ON
// CONFLICT(hash) DO NOTHING for idempotency: saving the same compiled
// manifest twice is a silent no-op, whatever name it was saved under the
// first time.
func (s *Store) SaveManifest(ctx context.Context, name string, m *ir.FeatureManifest) (string, error) {
	canonical, err := m.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("save manifest: %w", err)
	}

	hash, err := ir.ManifestHash(m)
	if err != nil {
		return "", fmt.Errorf("save manifest: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO manifests (hash, name, ir_version, ir_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		hash,
		name,
		ir.IRVersion,
		string(canonical),
	)
	if err != nil {
		return "", fmt.Errorf("save manifest: %w", err)
	}

	return hash, nil
}

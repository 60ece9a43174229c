package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainManifest is the domain prefix for manifest content hashing. The
// version suffix enables future algorithm migration.
const DomainManifest = "fml/manifest/v1"

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain || 0x00 || data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ManifestHash computes the content-addressed hash of a compiled manifest
// over its canonical JSON. Lowering is deterministic, so the same source
// document always hashes to the same value across runs and hosts.
func ManifestHash(m *FeatureManifest) (string, error) {
	canonical, err := m.CanonicalJSON()
	if err != nil {
		return "", fmt.Errorf("ManifestHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainManifest, canonical), nil
}

// MustManifestHash is like ManifestHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustManifestHash(m *FeatureManifest) string {
	hash, err := ManifestHash(m)
	if err != nil {
		panic(err)
	}
	return hash
}

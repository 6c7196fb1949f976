package core

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Meta describes a stored artifact revision. It is computed by the store on
// every save and returned by Stat. Values are snapshots; mutating a returned
// Meta never affects the store.
type Meta struct {
	RunID     string    `json:"run_id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	SizeBytes int64     `json:"size_bytes"`
	SHA256    string    `json:"sha256"`
	Created   time.Time `json:"created"`
}

// ArtifactStore defines the interface for artifact persistence. Implementations
// must be thread-safe and scope artifacts by run identifier. Short method
// names (Save/Get/Stat/List/Delete) mirror other store interfaces for consistency.
//
// Contract:
//   - Save overwrites an existing (runID, name) pair; each save produces a
//     fresh Version
//   - Get/Stat/Delete of an absent artifact return artifact.ErrNotFound
//   - Returned byte slices are copies safe for caller mutation
type ArtifactStore interface {
	Save(runID, name string, data []byte) (Meta, error)
	Get(runID, name string) ([]byte, error)
	Stat(runID, name string) (Meta, error)
	List(runID string) ([]string, error)
	Delete(runID, name string) error
}

// NewMeta builds the Meta record for a fresh artifact revision, assigning a
// new Version and computing size and checksum from the payload.
func NewMeta(runID, name string, data []byte) Meta {
	return Meta{
		RunID:     runID,
		Name:      name,
		Version:   NewVersionID(),
		SizeBytes: int64(len(data)),
		SHA256:    Checksum(data),
		Created:   time.Now().UTC(),
	}
}

// NewVersionID generates a new unique identifier for artifact revisions.
//
// This function creates a UUID-based unique identifier that can be used
// for version tracking and correlation throughout the framework.
//
// Returns a string representation of a new UUID.
func NewVersionID() string { return uuid.NewString() }

// Checksum returns the hex-encoded SHA-256 digest of the payload.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

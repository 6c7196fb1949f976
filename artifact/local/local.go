// Package local implements a filesystem backed core.ArtifactStore.
//
// Artifacts live beneath a validated root directory using the layout
// <root>/<runID>/<name>, with descriptive metadata kept in a parallel
// <root>/.meta tree. All writes go through an atomic write-temp-then-rename
// sequence, so concurrent readers (including other processes) never observe
// partially written artifacts.
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/hupe1980/artifactmesh/artifact"
	"github.com/hupe1980/artifactmesh/core"
	"github.com/hupe1980/artifactmesh/internal/util"
)

// metaDir is the dot-prefixed directory holding Meta sidecar files. Dot
// prefixes are reserved (see util.ValidateKey) so it can never collide with
// a run directory.
const metaDir = ".meta"

// Store is a durable ArtifactStore persisting artifacts on the local
// filesystem. It is safe for concurrent use; atomicity of individual saves is
// delegated to rename(2) via renameio.
type Store struct {
	root string
}

// New validates the configuration, materializes the root directory and
// returns the store. The configuration's path is normalized by validation;
// inspect Root for the effective location.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact root: %w", err)
	}
	return &Store{root: cfg.Path}, nil
}

// Root returns the absolute directory the store persists artifacts beneath.
func (s *Store) Root() string { return s.root }

// Save stores (or overwrites) the artifact bytes for the given run and name.
// The payload is staged to a hidden temp file and renamed into place, and the
// computed Meta (fresh version id, size, checksum) is persisted alongside.
func (s *Store) Save(runID, name string, data []byte) (core.Meta, error) {
	if err := validateKeys(runID, name); err != nil {
		return core.Meta{}, err
	}
	runDir := filepath.Join(s.root, runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return core.Meta{}, fmt.Errorf("create run directory: %w", err)
	}
	meta := core.NewMeta(runID, name, data)
	if err := renameio.WriteFile(filepath.Join(runDir, name), data, 0o644); err != nil {
		return core.Meta{}, fmt.Errorf("write artifact: %w", err)
	}
	if err := s.writeMeta(meta); err != nil {
		return core.Meta{}, err
	}
	return meta, nil
}

// Get returns the stored artifact bytes or artifact.ErrNotFound.
func (s *Store) Get(runID, name string) ([]byte, error) {
	if err := validateKeys(runID, name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.root, runID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, artifact.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// Stat returns the Meta recorded at the latest save. For files placed into
// the store by an external producer (no sidecar present) a Meta is
// synthesized from the file itself; such records carry an empty Version.
func (s *Store) Stat(runID, name string) (core.Meta, error) {
	if err := validateKeys(runID, name); err != nil {
		return core.Meta{}, err
	}
	raw, err := os.ReadFile(s.metaPath(runID, name))
	if err == nil {
		var meta core.Meta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return core.Meta{}, fmt.Errorf("decode artifact metadata: %w", err)
		}
		return meta, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return core.Meta{}, fmt.Errorf("read artifact metadata: %w", err)
	}
	return s.synthesizeMeta(runID, name)
}

// List returns the artifact names stored for the run. An unknown run yields
// an empty slice, not an error.
func (s *Store) List(runID string) ([]string, error) {
	if err := util.ValidateKey("run_id", runID); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.root, runID))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue // store internals and in-flight temp files
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Delete removes the artifact and its metadata or returns artifact.ErrNotFound.
func (s *Store) Delete(runID, name string) error {
	if err := validateKeys(runID, name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, runID, name))
	if errors.Is(err, fs.ErrNotExist) {
		return artifact.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	// Sidecar may be absent for externally produced files.
	_ = os.Remove(s.metaPath(runID, name))
	return nil
}

func (s *Store) writeMeta(meta core.Meta) error {
	dir := filepath.Join(s.root, metaDir, meta.RunID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create metadata directory: %w", err)
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode artifact metadata: %w", err)
	}
	if err := renameio.WriteFile(s.metaPath(meta.RunID, meta.Name), raw, 0o644); err != nil {
		return fmt.Errorf("write artifact metadata: %w", err)
	}
	return nil
}

func (s *Store) metaPath(runID, name string) string {
	return filepath.Join(s.root, metaDir, runID, name+".json")
}

func (s *Store) synthesizeMeta(runID, name string) (core.Meta, error) {
	path := filepath.Join(s.root, runID, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.Meta{}, artifact.ErrNotFound
	}
	if err != nil {
		return core.Meta{}, fmt.Errorf("stat artifact: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Meta{}, fmt.Errorf("read artifact: %w", err)
	}
	return core.Meta{
		RunID:     runID,
		Name:      name,
		SizeBytes: info.Size(),
		SHA256:    core.Checksum(data),
		Created:   info.ModTime().UTC(),
	}, nil
}

// validateKeys guards every operation against path traversal; run and
// artifact identifiers must each stay a single path element.
func validateKeys(runID, name string) error {
	if err := util.ValidateKey("run_id", runID); err != nil {
		return err
	}
	return util.ValidateKey("name", name)
}

package artifact

import (
	"sync"

	"github.com/hupe1980/artifactmesh/core"
)

// record pairs stored bytes with the Meta computed at save time.
type record struct {
	data []byte
	meta core.Meta
}

// InMemoryStore is a trivial in‑process ArtifactStore implementation useful
// for tests, examples and single‑process prototypes. It keeps all artifacts in
// a nested map guarded by an RWMutex. Data is copied on save / retrieval to
// avoid accidental external mutation of internal buffers.
//
// Layout: runID -> name -> record
//
// This implementation is intentionally minimal; it does not enforce retention
// limits, size quotas, or eviction. For production, prefer a durable
// implementation (e.g. the local filesystem store or an object store) that
// can survive process restarts.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[string]record // runID -> name -> record
}

// NewInMemoryStore returns an empty in‑memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string]map[string]record)}
}

// Save stores (or overwrites) the artifact bytes for the given run and name.
// The input slice is copied before storage. A fresh Meta with a new version
// id is computed and returned.
func (a *InMemoryStore) Save(runID, name string, data []byte) (core.Meta, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.artifacts[runID]; !exists {
		a.artifacts[runID] = make(map[string]record)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	meta := core.NewMeta(runID, name, cp)
	a.artifacts[runID][name] = record{data: cp, meta: meta}
	return meta, nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (a *InMemoryStore) Get(runID, name string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, err := a.lookup(runID, name)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, len(rec.data))
	copy(cp, rec.data)
	return cp, nil
}

// Stat returns the Meta recorded at the latest save or ErrNotFound.
func (a *InMemoryStore) Stat(runID, name string) (core.Meta, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	rec, err := a.lookup(runID, name)
	if err != nil {
		return core.Meta{}, err
	}
	return rec.meta, nil
}

// List returns the artifact names stored for the run. The slice is
// a snapshot and safe for caller mutation.
func (a *InMemoryStore) List(runID string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.artifacts[runID]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names, nil
}

// Delete removes the artifact if present or returns ErrNotFound.
func (a *InMemoryStore) Delete(runID, name string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, ok := a.artifacts[runID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[name]; !ok {
		return ErrNotFound
	}
	delete(m, name)
	return nil
}

// lookup resolves a record; caller must hold at least the read lock.
func (a *InMemoryStore) lookup(runID, name string) (record, error) {
	m, ok := a.artifacts[runID]
	if !ok {
		return record{}, ErrNotFound
	}
	rec, ok := m[name]
	if !ok {
		return record{}, ErrNotFound
	}
	return rec, nil
}

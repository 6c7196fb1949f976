// Package artifactmesh provides a high-level façade over the core
// ArtifactStore abstraction enabling rapid wiring of artifact persistence
// into pipeline tooling. Most applications interact with this package by:
//  1. Creating an ArtifactMesh via New() (optionally overriding the default in‑memory store)
//  2. Saving and retrieving run-scoped artifacts through the façade
//  3. Supplying a durable backend (local filesystem, object store) for production
//
// The façade delegates persistence to the configured core.ArtifactStore while
// keeping setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply the local
// filesystem store (or another durable backend) and a structured logger.
package artifactmesh

import (
	"time"

	"github.com/hupe1980/artifactmesh/artifact"
	"github.com/hupe1980/artifactmesh/artifact/local"
	"github.com/hupe1980/artifactmesh/core"
	"github.com/hupe1980/artifactmesh/logging"
)

// Options configures the ArtifactMesh instance.
type Options struct {
	// Store is the persistence backend (defaults to an in-memory implementation).
	Store core.ArtifactStore

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ArtifactMesh is the high-level façade aggregating the configured store and logger.
type ArtifactMesh struct {
	opts   Options
	store  core.ArtifactStore
	logger logging.Logger
}

// New creates a new ArtifactMesh instance with optional overrides. An unset
// store is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *ArtifactMesh {
	opts := Options{
		Store:  artifact.NewInMemoryStore(),
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Store == nil {
		opts.Store = artifact.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &ArtifactMesh{opts: opts, store: opts.Store, logger: opts.Logger}
}

// Open is a convenience constructor backing the mesh with a local filesystem
// store rooted at path. The path is validated the same way local.New does;
// construction fails with a validation error for empty or remote paths.
func Open(path string, optFns ...func(o *Options)) (*ArtifactMesh, error) {
	store, err := local.New(local.Config{Path: path})
	if err != nil {
		return nil, err
	}
	fns := append([]func(o *Options){func(o *Options) { o.Store = store }}, optFns...)
	return New(fns...), nil
}

// Store returns the underlying artifact store for direct access (e.g. to
// reach backend specific features like local.Store.Watch).
func (m *ArtifactMesh) Store() core.ArtifactStore { return m.store }

// Save persists an artifact for the given run, returning its Meta record.
func (m *ArtifactMesh) Save(runID, name string, data []byte) (core.Meta, error) {
	start := time.Now()
	meta, err := m.store.Save(runID, name, data)
	m.logOp("save", runID, name, int64(len(data)), time.Since(start), err)
	return meta, err
}

// Get retrieves the artifact bytes for the given run and name.
func (m *ArtifactMesh) Get(runID, name string) ([]byte, error) {
	start := time.Now()
	data, err := m.store.Get(runID, name)
	m.logOp("get", runID, name, int64(len(data)), time.Since(start), err)
	return data, err
}

// Stat returns the Meta record for the given run and name.
func (m *ArtifactMesh) Stat(runID, name string) (core.Meta, error) {
	start := time.Now()
	meta, err := m.store.Stat(runID, name)
	m.logOp("stat", runID, name, meta.SizeBytes, time.Since(start), err)
	return meta, err
}

// List returns the artifact names stored for the run.
func (m *ArtifactMesh) List(runID string) ([]string, error) {
	start := time.Now()
	names, err := m.store.List(runID)
	m.logOp("list", runID, "", int64(len(names)), time.Since(start), err)
	return names, err
}

// Delete removes the artifact for the given run and name.
func (m *ArtifactMesh) Delete(runID, name string) error {
	start := time.Now()
	err := m.store.Delete(runID, name)
	m.logOp("delete", runID, name, 0, time.Since(start), err)
	return err
}

// logOp emits one line per store operation. Messages are printf-formatted;
// logging.Logger implementations receive the final string (see
// ArtifactMeshLogger.log).
func (m *ArtifactMesh) logOp(op, runID, name string, size int64, dur time.Duration, err error) {
	if err != nil {
		m.logger.Error("store %s failed run_id=%s artifact=%s: %v", op, runID, name, err)
		return
	}
	m.logger.Debug("store %s completed run_id=%s artifact=%s size_bytes=%d duration=%s", op, runID, name, size, dur)
}

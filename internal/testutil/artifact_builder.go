package testutil

import (
	"github.com/hupe1980/artifactmesh/core"
)

// ArtifactBuilder helps seed stores with fixture artifacts using fluent
// chaining for tests.
// Example:
//
//	metas, err := NewArtifactBuilder("run-1").Text("report.txt", "ok").Data("model.bin", raw).SaveTo(store)
type ArtifactBuilder struct {
	runID string
	names []string
	data  map[string][]byte
}

// NewArtifactBuilder creates a new builder for artifacts scoped to the given run.
// Use chainable methods (Data, Text) then call SaveTo.
func NewArtifactBuilder(runID string) *ArtifactBuilder {
	return &ArtifactBuilder{runID: runID, data: map[string][]byte{}}
}

// Data adds (or overwrites) a binary fixture artifact (chainable).
func (b *ArtifactBuilder) Data(name string, data []byte) *ArtifactBuilder {
	if _, exists := b.data[name]; !exists {
		b.names = append(b.names, name)
	}
	b.data[name] = data
	return b
}

// Text adds a text fixture artifact (chainable).
func (b *ArtifactBuilder) Text(name, text string) *ArtifactBuilder {
	return b.Data(name, []byte(text))
}

// SaveTo persists all fixtures into the store in insertion order and returns
// the resulting Meta records. It stops at the first error.
func (b *ArtifactBuilder) SaveTo(store core.ArtifactStore) ([]core.Meta, error) {
	metas := make([]core.Meta, 0, len(b.names))
	for _, name := range b.names {
		meta, err := store.Save(b.runID, name, b.data[name])
		if err != nil {
			return metas, err
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// Package config loads artifact store configuration from YAML documents and
// constructs the configured backend. It keeps the file surface deliberately
// small: a single "store" block selecting the backend type plus its options.
//
// Example document:
//
//	store:
//	  type: local
//	  path: /var/lib/artifactmesh
//
// Unknown fields are rejected so typos surface at load time instead of being
// silently ignored.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/artifactmesh/artifact"
	"github.com/hupe1980/artifactmesh/artifact/local"
	"github.com/hupe1980/artifactmesh/core"
)

// Supported store backend types.
const (
	StoreTypeLocal  = "local"
	StoreTypeMemory = "memory"
)

// StoreConfig selects and parameterizes a store backend.
type StoreConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path,omitempty"` // required for the local backend
}

// File is the root of an ArtifactMesh YAML configuration document.
type File struct {
	Store StoreConfig `yaml:"store"`
}

// Parse decodes a YAML document. Unknown fields are an error.
func Parse(raw []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty configuration document")
		}
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return &f, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration file: %w", err)
	}
	return Parse(raw)
}

// BuildStore constructs the configured ArtifactStore backend. Validation
// errors from the backend (e.g. an unusable local path) are returned as-is so
// callers can inspect them with errors.As.
func (f *File) BuildStore() (core.ArtifactStore, error) {
	switch f.Store.Type {
	case StoreTypeLocal:
		return local.New(local.Config{Path: f.Store.Path})
	case StoreTypeMemory:
		return artifact.NewInMemoryStore(), nil
	case "":
		return nil, fmt.Errorf("store type must be set (one of %q, %q)", StoreTypeLocal, StoreTypeMemory)
	default:
		return nil, fmt.Errorf("unknown store type %q", f.Store.Type)
	}
}

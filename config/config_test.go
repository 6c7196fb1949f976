package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/artifactmesh/artifact"
	"github.com/hupe1980/artifactmesh/artifact/local"
)

func TestParse_LocalStore(t *testing.T) {
	f, err := Parse([]byte("store:\n  type: local\n  path: /var/lib/artifactmesh\n"))
	require.NoError(t, err)
	assert.Equal(t, StoreTypeLocal, f.Store.Type)
	assert.Equal(t, "/var/lib/artifactmesh", f.Store.Path)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("store:\n  type: local\n  bucket: nope\n"))
	require.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse([]byte(""))
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestBuildStore_Local(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	f := &File{Store: StoreConfig{Type: StoreTypeLocal, Path: dir}}
	store, err := f.BuildStore()
	require.NoError(t, err)

	ls, ok := store.(*local.Store)
	require.True(t, ok)
	assert.Equal(t, filepath.Clean(dir), ls.Root())
	_, err = os.Stat(ls.Root())
	assert.NoError(t, err)
}

func TestBuildStore_LocalInvalidPath(t *testing.T) {
	f := &File{Store: StoreConfig{Type: StoreTypeLocal, Path: "gs://bucket/artifacts"}}
	_, err := f.BuildStore()
	require.Error(t, err)

	var vErr *local.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestBuildStore_Memory(t *testing.T) {
	f := &File{Store: StoreConfig{Type: StoreTypeMemory}}
	store, err := f.BuildStore()
	require.NoError(t, err)
	_, ok := store.(*artifact.InMemoryStore)
	assert.True(t, ok)
}

func TestBuildStore_UnknownType(t *testing.T) {
	for _, typ := range []string{"", "gcs"} {
		f := &File{Store: StoreConfig{Type: typ}}
		_, err := f.BuildStore()
		require.Error(t, err, typ)
	}
}

func TestLoadAndBuild_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "artifactmesh.yaml")
	doc := "store:\n  type: local\n  path: " + filepath.Join(dir, "artifacts") + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	f, err := Load(cfgPath)
	require.NoError(t, err)
	store, err := f.BuildStore()
	require.NoError(t, err)

	meta, err := store.Save("run-1", "report.txt", []byte("ok"))
	require.NoError(t, err)
	assert.NotEmpty(t, meta.Version)
}

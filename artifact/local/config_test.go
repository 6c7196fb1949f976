package local

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate_ValidAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Path: dir}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, filepath.Clean(dir), cfg.Path)
}

func TestConfigValidate_PreservesCleanAbsolutePath(t *testing.T) {
	// Validation must not touch the filesystem or rewrite an already
	// clean absolute path.
	cfg := Config{Path: "/var/lib/artifactmesh"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/var/lib/artifactmesh", cfg.Path)
}

func TestConfigValidate_RelativePathResolvesAbsolute(t *testing.T) {
	cfg := Config{Path: "artifacts/store"}
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.Path))
	assert.Equal(t, "store", filepath.Base(cfg.Path))
}

func TestConfigValidate_EmptyPath(t *testing.T) {
	for _, path := range []string{"", "   "} {
		cfg := Config{Path: path}
		err := cfg.Validate()
		require.Error(t, err)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "path", vErr.Field)
	}
}

func TestConfigValidate_RejectsRemotePrefixes(t *testing.T) {
	cases := map[string]string{
		"gs://bucket/artifacts":     "gs://",
		"s3://bucket/artifacts":     "s3://",
		"az://container/artifacts":  "az://",
		"hdfs://namenode/artifacts": "hdfs://",
	}
	for path, prefix := range cases {
		cfg := Config{Path: path}
		err := cfg.Validate()
		require.Error(t, err, path)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), path)
		assert.Equal(t, "path", vErr.Field)
		assert.Contains(t, vErr.Message, prefix)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{Path: "gs://bucket/artifacts"})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
}

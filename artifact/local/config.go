package local

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hupe1980/artifactmesh/internal/util"
)

// ValidationError is the error type returned for unusable configuration values.
type ValidationError = util.ValidationError

// Config configures a Store. The single Path field denotes the local
// filesystem directory all artifacts are persisted beneath.
type Config struct {
	Path string `json:"path" yaml:"path"`
}

// Validate checks that Path denotes a usable local filesystem path and
// normalizes it in place. Validation fails with a *ValidationError when the
// path is empty or carries a remote URL prefix (gs://, s3://, hdfs://, ...);
// remote locations belong to object-store backends, never to this one.
// Relative paths are resolved against the working directory so the store is
// anchored at a concrete absolute directory; already clean absolute paths are
// preserved byte-for-byte.
func (c *Config) Validate() error {
	path := strings.TrimSpace(c.Path)
	if path == "" {
		return &util.ValidationError{Field: "path", Value: c.Path, Message: "path must not be empty"}
	}
	if prefix, ok := util.RemotePrefix(path); ok {
		return &util.ValidationError{
			Field:   "path",
			Value:   c.Path,
			Message: fmt.Sprintf("remote path prefix %q is not supported by the local artifact store", prefix),
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &util.ValidationError{
			Field:   "path",
			Value:   c.Path,
			Message: fmt.Sprintf("cannot resolve to an absolute path: %v", err),
		}
	}
	c.Path = filepath.Clean(abs)
	return nil
}

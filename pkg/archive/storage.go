package archive

import (
	"context"
	"io"
	"strings"
)

// Object describes a stored artifact.
type Object struct {
	// Path is the storage key relative to the backend root.
	Path string

	// Size is the object size in bytes.
	Size int64

	// ContentType is the MIME type recorded at write time.
	ContentType string
}

// Storage persists operational artifacts such as dead letter exports and
// generated reports. Implementations must be safe for concurrent use.
type Storage interface {
	// Put writes the object at path, replacing any previous content.
	Put(ctx context.Context, path, contentType string, body io.Reader) (*Object, error)

	// Get reads the object at path.
	Get(ctx context.Context, path string) ([]byte, error)

	// List returns the objects whose path starts with prefix, ordered by
	// path. An empty prefix lists everything.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Delete removes the object at path.
	Delete(ctx context.Context, path string) error

	// Exists reports whether an object is stored at path.
	Exists(ctx context.Context, path string) bool

	// URL returns the public URL of the object at path.
	URL(path string) string
}

// cleanPath normalizes a storage key and rejects traversal attempts.
// Keys are always relative: the leading slash is dropped.
func cleanPath(path string) (string, error) {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return "", ErrInvalidPath
	}
	if strings.Contains(path, "..") || strings.Contains(path, "\x00") {
		return "", ErrInvalidPath
	}
	return path, nil
}

package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// LocalStorage implements Storage on the local filesystem. All operations
// are confined to baseDir to prevent path traversal, and writes go through
// a temp file plus rename so readers never observe a partial object.
type LocalStorage struct {
	baseDir string // absolute root, every object lives below it
	baseURL string // prefix for URL(), e.g. "/archives/"
}

// NewLocalStorage creates a filesystem-backed archive rooted at baseDir.
// The directory is created if it does not exist. baseURL is used for
// generating public URLs and may be empty when objects are never served.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if err := os.MkdirAll(absBaseDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &LocalStorage{
		baseDir: absBaseDir,
		baseURL: baseURL,
	}, nil
}

// resolve maps a storage key to an absolute path and verifies it stays
// inside baseDir.
func (s *LocalStorage) resolve(path string) (string, error) {
	key, err := cleanPath(path)
	if err != nil {
		return "", err
	}

	abs := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if abs != s.baseDir && !strings.HasPrefix(abs, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return abs, nil
}

// Put writes the object at path. Parent directories are created as needed.
func (s *LocalStorage) Put(ctx context.Context, path, contentType string, body io.Reader) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), ".archive-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteObject, err)
	}

	size, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteObject, err)
	}

	if err := os.Rename(tmp.Name(), abs); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteObject, err)
	}

	key, _ := cleanPath(path)
	return &Object{
		Path:        key,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// Get reads the object at path.
func (s *LocalStorage) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadObject, err)
	}
	return data, nil
}

// List walks baseDir and returns the objects under prefix ordered by path.
func (s *LocalStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if prefix != "" {
		if _, err := cleanPath(prefix); err != nil {
			return nil, err
		}
		prefix = strings.TrimPrefix(prefix, "/")
	}

	var objects []Object
	err := filepath.WalkDir(s.baseDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objects = append(objects, Object{Path: key, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToListObjects, err)
	}

	slices.SortFunc(objects, func(a, b Object) int { return strings.Compare(a.Path, b.Path) })
	return objects, nil
}

// Delete removes the object at path.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, path)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteObject, err)
	}
	return nil
}

// Exists reports whether an object is stored at path.
func (s *LocalStorage) Exists(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}

	abs, err := s.resolve(path)
	if err != nil {
		return false
	}

	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// URL returns the public URL for an object.
func (s *LocalStorage) URL(path string) string {
	path = strings.TrimPrefix(path, "/")
	return s.baseURL + path
}

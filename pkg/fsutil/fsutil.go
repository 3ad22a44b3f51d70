// Package fsutil reads and writes note files safely: writes are atomic
// and a save is refused when the file changed on disk since it was read.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrIsDirectory indicates the path names a directory.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrConflict indicates the file changed on disk after it was read.
	ErrConflict = errors.New("file changed on disk")
)

// Stamp records the state of a file when it was read.
type Stamp struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// Read returns the content of path and a Stamp describing it.
func Read(ctx context.Context, path string) ([]byte, Stamp, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stamp{}, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Stamp{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, Stamp{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, Stamp{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, Stamp{}, fmt.Errorf("read %s: %w", path, err)
	}

	return content, Stamp{
		Path:    path,
		Mode:    stat.Mode().Perm(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Stale reports whether the file no longer matches s. A deleted file is
// stale. Size and modification time are compared first; the content hash
// settles the case where both are unchanged.
func (s Stamp) Stale(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check stale: %w", err)
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

// Replace writes content over the file described by s, refusing with
// ErrConflict when the file is stale. It returns the stamp of the new
// content.
func Replace(ctx context.Context, s Stamp, content []byte) (Stamp, error) {
	stale, err := s.Stale(ctx)
	if err != nil {
		return Stamp{}, err
	}
	if stale {
		return Stamp{}, fmt.Errorf("%w: %s", ErrConflict, s.Path)
	}

	if err := WriteAtomic(ctx, s.Path, content, s.Mode); err != nil {
		return Stamp{}, err
	}

	_, next, err := Read(ctx, s.Path)
	return next, err
}

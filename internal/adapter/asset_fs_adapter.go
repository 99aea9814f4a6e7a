// Package adapter contains the filesystem and persistence adapters used by the scan pipeline.
package adapter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/djherbis/times"

	m "assethub.dev/pkg/assethub/internal/model"
)

// AssetFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning the packaging share. It hides direct `os` access so
// the scan logic can be tested against failing filesystems.
//
//nolint:interfacebloat // A richer interface keeps scan logic decoupled from os/fs.
type AssetFSAdapter interface {
	// ListDirs returns the names of the immediate sub-directories of root, sorted.
	ListDirs(root m.Path) ([]string, error)

	// Walk traverses root recursively. Errors on entries below root are passed to
	// fn, which decides whether the walk continues.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// FileTimes returns the modification, access and creation times of a file.
	FileTimes(path m.Path) (FileTimes, error)

	// CopyFile copies src to dst and carries over the source modification time.
	CopyFile(src, dst m.Path) error

	// RelPath returns the relative path from base to target.
	RelPath(base, target m.Path) (m.Path, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// FileTimes carries the timestamps the temporal analysis works from.
type FileTimes struct {
	Modified time.Time
	Accessed time.Time
	// Created is the birth time when the filesystem records one, else the inode change time.
	Created *time.Time
}

// LocalAssetFSAdapter implements AssetFSAdapter on the local disk.
type LocalAssetFSAdapter struct{}

// NewLocalAssetFSAdapter constructs a LocalAssetFSAdapter instance ready to
// be wired into the workflow.
func NewLocalAssetFSAdapter() *LocalAssetFSAdapter {
	return &LocalAssetFSAdapter{}
}

// ListDirs returns the sorted names of the directories directly under root.
func (a *LocalAssetFSAdapter) ListDirs(root m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(root))
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	sort.Strings(dirs)

	return dirs, nil
}

// Walk iterates over every entry under root.
func (a *LocalAssetFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		return fn(path, info, err)
	})
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalAssetFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// FileTimes reads the platform timestamps of path.
func (a *LocalAssetFSAdapter) FileTimes(path m.Path) (FileTimes, error) {
	ts, err := times.Stat(string(path))
	if err != nil {
		return FileTimes{}, err
	}

	result := FileTimes{
		Modified: ts.ModTime(),
		Accessed: ts.AccessTime(),
	}

	switch {
	case ts.HasBirthTime():
		created := ts.BirthTime()
		result.Created = &created
	case ts.HasChangeTime():
		created := ts.ChangeTime()
		result.Created = &created
	}

	return result, nil
}

// CopyFile copies a single file, preserving its modification time.
func (a *LocalAssetFSAdapter) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fmt.Errorf("copy %s: is a directory", src)
	}

	// #nosec G304 - src is the index file managed by this tool
	sourceFile, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(string(dst)), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is a backup path derived from the index path
	destFile, err := os.OpenFile(string(dst), os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		_ = os.Remove(string(dst))

		return err
	}

	if err := destFile.Close(); err != nil {
		return err
	}

	return os.Chtimes(string(dst), time.Now(), info.ModTime())
}

// RelPath returns the relative path from base to target.
func (a *LocalAssetFSAdapter) RelPath(base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// IsNotExist reports whether err says a path is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

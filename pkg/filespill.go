// Package pkg provides utilities shared by assethub commands.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSpillDir is used when NewFileSpill is given no directory.
var DefaultSpillDir = filepath.Join(os.TempDir(), "assethub-spill")

// FileSpill is an append-only, disk-backed list of items of type T. It keeps
// per-file analysis of large directories out of memory until it is summarised.
type FileSpill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
	// Remove closes the spill and deletes its backing file.
	Remove() error
}

type fileSpill[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
	closed  bool
}

// NewFileSpill creates a spill file in dir, or in DefaultSpillDir when dir is empty.
func NewFileSpill[T any](dir string) (FileSpill[T], error) {
	if dir == "" {
		dir = DefaultSpillDir
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Error("failed to create spill directory", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "spill-*.gob")
	if err != nil {
		slog.Error("failed to create spill file", "path", dir, "error", err)
		return nil, fmt.Errorf("failed to create spill file: %w", err)
	}

	slog.Debug("created filespill", "path", file.Name())

	return &fileSpill[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

func (f *fileSpill[T]) Path() string {
	return f.path
}

func (f *fileSpill[T]) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.length
}

func (f *fileSpill[T]) Append(item T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return errors.New("append to closed filespill")
	}

	if err := f.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", f.path, "index", f.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	f.length++

	return nil
}

func (f *fileSpill[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := f.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Get decodes items from the start of the file up to index.
func (f *fileSpill[T]) Get(index uint64) (T, error) {
	var found T

	if index >= f.Len() {
		return found, fmt.Errorf("index %d out of bounds (length %d)", index, f.Len())
	}

	errStop := errors.New("stop")

	err := f.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			return errStop
		}

		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		var zero T
		return zero, err
	}

	return found, nil
}

// Range streams every item in append order. Iteration stops at the first
// callback error, which is returned.
func (f *fileSpill[T]) Range(fn func(index uint64, item T) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// #nosec G304 - path was created by NewFileSpill
	file, err := os.Open(f.path)
	if err != nil {
		slog.Error("failed to open filespill", "path", f.path, "error", err)
		return fmt.Errorf("failed to open file: %w", err)
	}

	defer func() { _ = file.Close() }()

	decoder := gob.NewDecoder(file)

	for i := uint64(0); i < f.length; i++ {
		// gob leaves absent fields untouched, so every record decodes into a fresh value.
		var item T
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode item", "path", f.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

func (f *fileSpill[T]) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	f.closed = true

	if err := f.file.Close(); err != nil {
		slog.Error("failed to close filespill", "path", f.path, "error", err)
		return err
	}

	slog.Debug("closed filespill", "path", f.path, "length", f.length)

	return nil
}

func (f *fileSpill[T]) Remove() error {
	closeErr := f.Close()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(closeErr, err)
	}

	return closeErr
}

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	m "assethub.dev/pkg/assethub/internal/model"
)

const (
	// BackupDirName is the directory, next to the index, that holds previous versions.
	BackupDirName = "backups"

	backupPrefix     = "assets_index_"
	backupSuffix     = ".json"
	backupTimeLayout = "20060102_150405"

	// DefaultBackupRetention is how many backups survive a save.
	DefaultBackupRetention = 5
)

var (
	// ErrIndexNotFound is returned by Load when no index exists at the path yet.
	ErrIndexNotFound = errors.New("asset index not found")
	// ErrMalformedIndex is returned by Load when the file exists but cannot be trusted.
	ErrMalformedIndex = errors.New("malformed asset index")
)

// IndexStore persists asset indexes.
type IndexStore interface {
	// Save writes index to path, backing up the file it replaces. It returns the
	// backup path, empty when there was nothing to back up.
	Save(ctx context.Context, index *m.AssetIndex, path m.Path) (m.Path, error)

	// Load reads the index at path.
	Load(ctx context.Context, path m.Path) (*m.AssetIndex, error)

	// Backups lists the backups of the index at path, newest first.
	Backups(path m.Path) ([]m.Path, error)
}

// LocalIndexStore stores the index as indented JSON on the local disk.
type LocalIndexStore struct {
	fs   AssetFSAdapter
	keep int
	now  func() time.Time
}

// NewLocalIndexStore constructs a LocalIndexStore keeping at most keep backups.
// A keep below one falls back to DefaultBackupRetention, so a save always leaves
// the replaced index behind.
func NewLocalIndexStore(fs AssetFSAdapter, keep int) *LocalIndexStore {
	if keep < 1 {
		keep = DefaultBackupRetention
	}

	return &LocalIndexStore{fs: fs, keep: keep, now: time.Now}
}

type indexFile struct {
	Metadata *m.ScanMetadata            `json:"metadata"`
	Products map[string]*m.ProductInfo `json:"products"`
}

// Save backs up the existing file, writes the new index atomically and prunes old backups.
func (s *LocalIndexStore) Save(ctx context.Context, index *m.AssetIndex, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if index == nil {
		return "", errors.New("save index: nil index")
	}

	if err := index.Validate(); err != nil {
		return "", fmt.Errorf("save index: %w", err)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode index: %w", err)
	}

	backup, err := s.backup(path)
	if err != nil {
		slog.Error("failed to back up index", "path", path, "error", err)
		return "", fmt.Errorf("backup index: %w", err)
	}

	if err := writeAtomic(string(path), data); err != nil {
		slog.Error("failed to write index", "path", path, "error", err)
		return backup, fmt.Errorf("write index: %w", err)
	}

	slog.Info("asset index saved", "path", path, "products", index.Metadata.TotalProducts, "assets", index.Metadata.TotalAssets)

	if backup != "" {
		if err := s.prune(path); err != nil {
			slog.Warn("could not prune old backups", "path", path, "error", err)
		}
	}

	return backup, nil
}

// Load decodes the index at path. The returned error wraps ErrIndexNotFound or
// ErrMalformedIndex so callers can tell the two apart.
func (s *LocalIndexStore) Load(ctx context.Context, path m.Path) (*m.AssetIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is the configured index location
	data, err := os.ReadFile(string(path))
	if err != nil {
		if IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
		}

		return nil, fmt.Errorf("read index %s: %w", path, err)
	}

	var wire indexFile
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIndex, path, err)
	}

	if wire.Metadata == nil {
		return nil, fmt.Errorf("%w: %s: missing metadata", ErrMalformedIndex, path)
	}

	if wire.Products == nil {
		return nil, fmt.Errorf("%w: %s: missing products", ErrMalformedIndex, path)
	}

	index := &m.AssetIndex{Metadata: *wire.Metadata, Products: wire.Products}
	if err := index.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIndex, path, err)
	}

	return index, nil
}

// Backups returns the backup files of path, newest modification time first.
func (s *LocalIndexStore) Backups(path m.Path) ([]m.Path, error) {
	dir := backupDir(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	type backupFile struct {
		path    string
		modTime time.Time
	}

	files := make([]backupFile, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, err
		}

		files = append(files, backupFile{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].modTime.Equal(files[j].modTime) {
			return files[i].modTime.After(files[j].modTime)
		}

		return files[i].path > files[j].path
	})

	paths := make([]m.Path, 0, len(files))
	for _, f := range files {
		paths = append(paths, m.Path(f.path))
	}

	return paths, nil
}

func (s *LocalIndexStore) backup(path m.Path) (m.Path, error) {
	if _, err := s.fs.FileInfo(path); err != nil {
		if IsNotExist(err) {
			return "", nil
		}

		return "", err
	}

	dir := backupDir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", err
	}

	stamp := s.now().UTC().Format(backupTimeLayout)
	target := filepath.Join(dir, backupPrefix+stamp+backupSuffix)

	for n := 1; ; n++ {
		if _, err := os.Stat(target); IsNotExist(err) {
			break
		}

		target = filepath.Join(dir, fmt.Sprintf("%s%s_%d%s", backupPrefix, stamp, n, backupSuffix))
	}

	if err := s.fs.CopyFile(path, m.Path(target)); err != nil {
		return "", err
	}

	slog.Info("backed up existing index", "backup", target)

	return m.Path(target), nil
}

func (s *LocalIndexStore) prune(path m.Path) error {
	backups, err := s.Backups(path)
	if err != nil {
		return err
	}

	if len(backups) <= s.keep {
		return nil
	}

	var errs []error

	for _, old := range backups[s.keep:] {
		if err := os.Remove(string(old)); err != nil {
			errs = append(errs, err)
			continue
		}

		slog.Debug("removed old backup", "backup", old)
	}

	return errors.Join(errs...)
}

func backupDir(path m.Path) string {
	return filepath.Join(filepath.Dir(string(path)), BackupDirName)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()

		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()

		return err
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}

	return nil
}

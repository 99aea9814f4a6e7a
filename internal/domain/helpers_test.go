package domain

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"assethub.dev/pkg/assethub/internal/adapter"
	m "assethub.dev/pkg/assethub/internal/model"
)

var errInjected = errors.New("injected failure")

type fakeFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return f.size }
func (f fakeFileInfo) Mode() os.FileMode  { return 0o644 }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

type fakeStat struct {
	size     int64
	modified time.Time
}

// stubFS serves the local disk but can fake stat results and fail chosen paths.
type stubFS struct {
	*adapter.LocalAssetFSAdapter
	stats    map[string]fakeStat
	failList map[string]bool
	failStat map[string]bool
}

func newStubFS() *stubFS {
	return &stubFS{
		LocalAssetFSAdapter: adapter.NewLocalAssetFSAdapter(),
		stats:               map[string]fakeStat{},
		failList:            map[string]bool{},
		failStat:            map[string]bool{},
	}
}

func (s *stubFS) FileInfo(path m.Path) (os.FileInfo, error) {
	if s.failStat[string(path)] {
		return nil, errInjected
	}

	if st, ok := s.stats[string(path)]; ok {
		return fakeFileInfo{name: filepath.Base(string(path)), size: st.size, modTime: st.modified}, nil
	}

	return s.LocalAssetFSAdapter.FileInfo(path)
}

func (s *stubFS) FileTimes(path m.Path) (adapter.FileTimes, error) {
	if s.failStat[string(path)] {
		return adapter.FileTimes{}, errInjected
	}

	if st, ok := s.stats[string(path)]; ok {
		return adapter.FileTimes{Modified: st.modified, Accessed: st.modified}, nil
	}

	return s.LocalAssetFSAdapter.FileTimes(path)
}

func (s *stubFS) ListDirs(root m.Path) ([]string, error) {
	if s.failList[string(root)] {
		return nil, errInjected
	}

	return s.LocalAssetFSAdapter.ListDirs(root)
}

func (s *stubFS) Walk(root m.Path, fn adapter.FilepathWalkFunc) error {
	if s.failList[string(root)] {
		return fn(string(root), nil, errInjected)
	}

	return s.LocalAssetFSAdapter.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && info.IsDir() && path != string(root) && s.failList[path] {
			if cbErr := fn(path, nil, errInjected); cbErr != nil {
				return cbErr
			}

			return filepath.SkipDir
		}

		return fn(path, info, err)
	})
}

// writeFile creates path (and its parents) with size bytes and the given modification time.
func writeFile(t *testing.T, path string, size int, modified time.Time) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0o644))

	if !modified.IsZero() {
		require.NoError(t, os.Chtimes(path, modified, modified))
	}
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "assethub.dev/pkg/assethub/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Source.Base)
	assert.Equal(t, DefaultRoots(), cfg.Source.Roots)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultScanParallel, cfg.Scan.Parallel)
	assert.False(t, cfg.Scan.Temporal)
	assert.Equal(t, DefaultBackupsKeep, cfg.Backups.Keep)
	assert.Empty(t, cfg.Rules.File)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set(ScanParallelKey, 0)
	viper.Set(BackupsKeepKey, 2)
	viper.Set(OutputKey, "out.json")
	viper.Set(SourceRootsKey, []map[string]any{
		{"key": "only", "path": "/abs/only", "product_line": "Pet"},
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Scan.Parallel, "parallel is clamped to at least one worker")
	assert.Equal(t, 2, cfg.Backups.Keep)
	assert.Equal(t, "out.json", cfg.Output)
	require.Len(t, cfg.Source.Roots, 1)
	assert.Equal(t, RootConfig{Key: "only", Path: "/abs/only", ProductLine: "Pet"}, cfg.Source.Roots[0])
}

func TestLoad_RejectsBackupsKeepBelowOne(t *testing.T) {
	for _, keep := range []int{0, -3} {
		viper.Reset()
		t.Cleanup(viper.Reset)

		viper.Set(BackupsKeepKey, keep)

		_, err := Load()
		require.Error(t, err, "keep %d", keep)
		assert.Contains(t, err.Error(), BackupsKeepKey)
	}
}

func TestConfig_ScanRoots(t *testing.T) {
	cfg := Config{Source: SourceConfig{Base: "/share", Roots: DefaultRoots()}}

	t.Run("all roots in configured order", func(t *testing.T) {
		roots, err := cfg.ScanRoots(nil)
		require.NoError(t, err)
		require.Len(t, roots, 4)

		assert.Equal(t, "human_current", roots[0].Key)
		assert.Equal(t, m.Path(filepath.Join("/share", "Human/Current")), roots[0].Path)
		assert.Equal(t, m.ProductLineHuman, roots[0].ResolvedProductLine())
		assert.Equal(t, m.StatusCurrent, roots[0].ResolvedStatus())
		assert.Equal(t, m.ProductLinePet, roots[3].ResolvedProductLine())
		assert.Equal(t, m.StatusWorkInProgress, roots[3].ResolvedStatus())
	})

	t.Run("selected keys keep the requested order", func(t *testing.T) {
		roots, err := cfg.ScanRoots([]string{"pet_current", "human_wip"})
		require.NoError(t, err)
		require.Len(t, roots, 2)
		assert.Equal(t, "pet_current", roots[0].Key)
		assert.Equal(t, "human_wip", roots[1].Key)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := cfg.ScanRoots([]string{"nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("absolute root path is not joined", func(t *testing.T) {
		abs := Config{Source: SourceConfig{Base: "/share", Roots: []RootConfig{{Key: "x", Path: "/elsewhere"}}}}
		roots, err := abs.ScanRoots(nil)
		require.NoError(t, err)
		assert.Equal(t, m.Path("/elsewhere"), roots[0].Path)
	})
}

func TestSourceDescription(t *testing.T) {
	roots := []m.ScanRoot{{Path: "/a"}, {Path: "/b"}}
	assert.Equal(t, "/a, /b", SourceDescription(roots))
}
